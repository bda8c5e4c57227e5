package model

import "html/template"

// Page is a standalone markdown page rendered inside the generic page chrome
// (pages/colophon.md becomes colophon.html).
type Page struct {
	Name       string
	Title      string
	Content    template.HTML
	SourcePath string
}
