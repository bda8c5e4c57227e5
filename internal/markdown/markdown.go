// Package markdown converts post bodies to HTML.
package markdown

import (
	"bytes"
	"html"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts commonmark with tables, footnotes and strikethrough into
// HTML. Raw HTML in the source is passed through unescaped. A Renderer holds
// no per-call state and may be reused for every post of a run.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Footnote,
				extension.Strikethrough,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Render converts body to HTML. It never fails: if conversion errors the
// escaped source is returned inside a <pre> block.
func (r *Renderer) Render(body string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		slog.Warn("Markdown conversion failed, emitting source", "error", err)
		return "<pre>" + html.EscapeString(body) + "</pre>\n"
	}
	return buf.String()
}
