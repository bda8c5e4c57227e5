// Package site runs one generation pass and writes its output tree.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/mplanchard/speedy/internal/config"
	"github.com/mplanchard/speedy/internal/markdown"
	"github.com/mplanchard/speedy/internal/model"
	"github.com/mplanchard/speedy/internal/posts"
	"github.com/mplanchard/speedy/internal/relations"
	"github.com/mplanchard/speedy/internal/render"
)

const postsDir = "posts"

// Fixed output names.
const (
	IndexFile    = "index.html"
	PostsFile    = "posts.html"
	TagsFile     = "tags.html"
	AboutFile    = "about.html"
	NotFoundFile = "notfound.html"
	AtomFile     = "atom.xml"
)

// ErrReservedPage is returned when a standalone page would overwrite a
// generated document.
var ErrReservedPage = errors.New("page name is reserved")

var reserved = map[string]bool{
	"index": true, "posts": true, "tags": true, "about": true, "notfound": true, "atom": true,
}

// Document is one rendered output file.
type Document struct {
	Path    string
	Content string
}

// Report summarizes a finished run.
type Report struct {
	Posts     int
	Tags      int
	Pages     int
	Documents int
	Output    string
}

// Generator runs the post pipeline: load, relate, render, write.
type Generator struct {
	cfg config.Config
	now func() time.Time
}

// NewGenerator returns a Generator for cfg using the wall clock.
func NewGenerator(cfg config.Config) *Generator {
	return &Generator{cfg: cfg, now: time.Now}
}

// WithClock overrides the clock used for the footer and empty-feed dates.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) templateFS() fs.FS {
	if dir := g.cfg.LayoutsDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			slog.Info("Using layouts directory", "path", dir)
			return os.DirFS(dir)
		}
	}
	return render.DefaultFS()
}

// Render loads and renders every document without touching the output
// directory.
func (g *Generator) Render() ([]Document, *Report, error) {
	set, err := render.LoadTemplateSet(g.templateFS())
	if err != nil {
		return nil, nil, err
	}

	md := markdown.New()
	coll, err := posts.Load(g.cfg.PostsDir, md, g.cfg.SiteURL())
	if err != nil {
		return nil, nil, err
	}
	index := relations.Build(coll.Posts())

	pages, err := LoadPages(g.cfg.PagesDir, md)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range pages {
		if reserved[p.Name] {
			return nil, nil, fmt.Errorf("%w: '%s' (%s)", ErrReservedPage, p.Name, p.SourcePath)
		}
	}

	r, err := render.New(set, render.Site{
		Title:    g.cfg.SiteTitle,
		BaseURL:  g.cfg.SiteURL(),
		LinkTags: g.cfg.LinkTags,
	}, coll, index, g.now())
	if err != nil {
		return nil, nil, err
	}

	docs, err := renderAll(r, coll, pages)
	if err != nil {
		return nil, nil, err
	}

	return docs, &Report{
		Posts:     coll.Len(),
		Tags:      index.Tags().Len(),
		Pages:     len(pages),
		Documents: len(docs),
		Output:    g.cfg.OutputDir,
	}, nil
}

func renderAll(r *render.Renderer, coll *posts.Collection, pages []model.Page) ([]Document, error) {
	fixed := []struct {
		path string
		fn   func() (string, error)
	}{
		{IndexFile, r.IndexPage},
		{PostsFile, r.PostsPage},
		{TagsFile, r.TagsPage},
		{AboutFile, r.AboutPage},
		{NotFoundFile, r.NotFoundPage},
		{AtomFile, r.AtomFeed},
	}

	docs := make([]Document, 0, len(fixed)+coll.Len()+len(pages))
	for _, f := range fixed {
		content, err := f.fn()
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Path: f.path, Content: content})
	}
	for i := 0; i < coll.Len(); i++ {
		content, err := r.PostPage(i)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Path: posts.Path(coll.At(i).Slug), Content: content})
	}
	for _, p := range pages {
		content, err := r.StaticPage(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Path: p.Name + ".html", Content: content})
	}
	return docs, nil
}

// Run renders everything, then writes the output tree. Nothing is written
// unless every document rendered.
func (g *Generator) Run() (*Report, error) {
	start := time.Now()
	docs, report, err := g.Render()
	if err != nil {
		return nil, err
	}

	w := NewWriter(g.cfg.OutputDir)
	if err := w.Prepare(); err != nil {
		return nil, err
	}
	if err := w.CopyAssets(g.cfg.AssetsDir); err != nil {
		return nil, fmt.Errorf("failed to copy assets: %w", err)
	}
	for _, d := range docs {
		if err := w.Write(d.Path, d.Content); err != nil {
			return nil, err
		}
		slog.Debug("Wrote document", "path", d.Path)
	}
	if err := w.PruneStale(); err != nil {
		return nil, err
	}

	slog.Info("Site generated",
		"output", report.Output,
		"posts", report.Posts,
		"tags", report.Tags,
		"pages", report.Pages,
		"documents", report.Documents,
		"duration", time.Since(start))
	return report, nil
}
