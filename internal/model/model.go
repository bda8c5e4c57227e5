package model

import (
	"html/template"
	"time"
)

// PostMetadata is the typed form of a post's header block.
type PostMetadata struct {
	Title   string
	Slug    string
	Created time.Time
	Updated time.Time
	Tags    []string
	Summary string
}

// Post represents a single blog post: its metadata and rendered body.
// Posts are built once during collection load and not modified afterwards.
type Post struct {
	PostMetadata
	Content    template.HTML
	URL        string
	SourcePath string
}
