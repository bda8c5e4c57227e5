// Package posts loads a directory of post source files into an ordered,
// validated collection.
package posts

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/mplanchard/speedy/internal/header"
	"github.com/mplanchard/speedy/internal/model"
)

var (
	// ErrDuplicateSlug is returned when two source files declare the same slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrInvalidMetadata is returned when parsed metadata fails validation.
	ErrInvalidMetadata = errors.New("invalid post metadata")
)

// BodyRenderer converts a markdown body to HTML.
type BodyRenderer interface {
	Render(body string) string
}

// Collection is the ordered list of posts of one generation run, newest
// first by created date. Posts sharing a created date keep directory order.
type Collection struct {
	posts []model.Post
}

// Load reads every visible regular file in dir as a post. The first failing
// file aborts the load.
func Load(dir string, md BodyRenderer, baseURL string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts directory '%s': %w", dir, err)
	}

	var posts []model.Post
	seen := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if name == "" || strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(dir, name)
		post, err := loadFile(path, md, baseURL)
		if err != nil {
			return nil, err
		}

		if prev, dup := seen[post.Slug]; dup {
			return nil, fmt.Errorf("%w '%s': declared by '%s' and '%s'", ErrDuplicateSlug, post.Slug, prev, path)
		}
		seen[post.Slug] = path

		slog.Debug("Loaded post", "path", path, "slug", post.Slug)
		posts = append(posts, post)
	}

	return NewCollection(posts), nil
}

func loadFile(path string, md BodyRenderer, baseURL string) (model.Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to read post '%s': %w", path, err)
	}

	doc, err := header.Parse(string(raw))
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to parse post '%s': %w", path, err)
	}
	if err := Validate(doc.Meta); err != nil {
		return model.Post{}, fmt.Errorf("post '%s': %w", path, err)
	}

	return model.Post{
		PostMetadata: doc.Meta,
		Content:      template.HTML(md.Render(doc.Body)),
		URL:          PostURL(baseURL, doc.Meta.Slug),
		SourcePath:   path,
	}, nil
}

// Validate checks the fields the header parser cannot: a non-empty title and
// a URL-safe slug.
func Validate(meta model.PostMetadata) error {
	err := validation.ValidateStruct(&meta,
		validation.Field(&meta.Title, validation.Required),
		validation.Field(&meta.Slug, validation.Required, validation.By(validSlug)),
		validation.Field(&meta.Tags, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	return nil
}

func validSlug(value interface{}) error {
	s, _ := value.(string)
	if !slug.IsValid(s) {
		return errors.New("must be lowercase letters, digits and dashes")
	}
	return nil
}

// PostURL is the canonical absolute link of the post page. baseURL must not
// end in a slash.
func PostURL(baseURL, postSlug string) string {
	return baseURL + "/" + Path(postSlug)
}

// Path is the output path of a post page relative to the site root.
func Path(postSlug string) string {
	return "posts/" + postSlug + ".html"
}

// NewCollection sorts posts by created date, newest first, keeping the input
// order for equal dates.
func NewCollection(posts []model.Post) *Collection {
	sorted := make([]model.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Created.After(sorted[j].Created)
	})
	return &Collection{posts: sorted}
}

// Posts returns the ordered posts. The slice must not be modified.
func (c *Collection) Posts() []model.Post { return c.posts }

// Len returns the number of posts.
func (c *Collection) Len() int { return len(c.posts) }

// At returns the i-th post.
func (c *Collection) At(i int) *model.Post { return &c.posts[i] }

// LatestUpdate returns the greatest updated date, and false for an empty
// collection.
func (c *Collection) LatestUpdate() (time.Time, bool) {
	var latest time.Time
	for _, p := range c.posts {
		if p.Updated.After(latest) {
			latest = p.Updated
		}
	}
	return latest, len(c.posts) > 0
}
