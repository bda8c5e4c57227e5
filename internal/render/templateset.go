package render

import (
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.xml
var embedded embed.FS

// ErrMissingTemplate is returned when a template set lacks a required fragment.
var ErrMissingTemplate = errors.New("missing template")

// HTMLTemplates lists every fragment and page the html set must define.
var HTMLTemplates = []string{
	"head", "header", "footer-common", "footer-nav",
	"post-summary", "tag-link", "tag-posts", "index-content", "posts-content",
	"about", "generic", "index", "post", "notfound",
}

// FeedTemplates lists the templates the feed set must define.
var FeedTemplates = []string{"atom", "atom-entry"}

// TemplateSet is the parsed, read-only collection of templates for a run.
type TemplateSet struct {
	html *htmltemplate.Template
	feed *texttemplate.Template
}

// DefaultFS returns the templates shipped with the binary.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadTemplateSet parses *.html files as HTML templates and *.xml files as
// feed templates, then checks every required name is defined.
func LoadTemplateSet(fsys fs.FS) (*TemplateSet, error) {
	h, err := htmltemplate.New("site").ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html templates: %w", err)
	}
	f, err := texttemplate.New("feed").ParseFS(fsys, "*.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed templates: %w", err)
	}

	for _, name := range HTMLTemplates {
		if h.Lookup(name) == nil {
			return nil, fmt.Errorf("%w '%s'", ErrMissingTemplate, name)
		}
	}
	for _, name := range FeedTemplates {
		if f.Lookup(name) == nil {
			return nil, fmt.Errorf("%w '%s'", ErrMissingTemplate, name)
		}
	}

	return &TemplateSet{html: h, feed: f}, nil
}
