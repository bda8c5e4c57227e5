// Package header splits a post source file into its fixed-size metadata
// header and markdown body.
//
// Every header line has the form "key: value". Lines are decoded into a
// key/value map and fields are looked up by name, so header lines may appear
// in any order.
package header

import (
	"fmt"
	"strings"
	"time"

	"github.com/mplanchard/speedy/internal/model"
)

const (
	// HeaderLines is the number of lines making up the header block.
	HeaderLines = 6
	// DateLayout is the layout of the created and updated fields.
	DateLayout = "2006-01-02"
	// TagSeparator separates entries of the tags field.
	TagSeparator = ","
)

// Header keys.
const (
	KeyTitle   = "title"
	KeySlug    = "slug"
	KeyCreated = "created"
	KeyUpdated = "updated"
	KeyTags    = "tags"
	KeySummary = "summary"
)

// Document is a parsed post source file.
type Document struct {
	Meta model.PostMetadata
	Body string
}

// Parse splits text into header and body and decodes the header.
func Parse(text string) (Document, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	n := HeaderLines
	if len(lines) < n {
		n = len(lines)
	}

	meta, err := ParseMetadata(lines[:n])
	if err != nil {
		return Document{}, err
	}

	return Document{
		Meta: meta,
		Body: strings.Join(lines[n:], "\n"),
	}, nil
}

// ParseMetadata decodes header lines into PostMetadata. All six keys are
// required.
func ParseMetadata(lines []string) (model.PostMetadata, error) {
	fields, err := parseFields(lines)
	if err != nil {
		return model.PostMetadata{}, err
	}

	lookup := func(key string) (string, error) {
		v, ok := fields[key]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingHeaderField, key)
		}
		return v, nil
	}

	var meta model.PostMetadata
	if meta.Title, err = lookup(KeyTitle); err != nil {
		return model.PostMetadata{}, err
	}
	if meta.Slug, err = lookup(KeySlug); err != nil {
		return model.PostMetadata{}, err
	}

	created, err := lookup(KeyCreated)
	if err != nil {
		return model.PostMetadata{}, err
	}
	if meta.Created, err = ParseDate(created); err != nil {
		return model.PostMetadata{}, fmt.Errorf("%s: %w", KeyCreated, err)
	}

	updated, err := lookup(KeyUpdated)
	if err != nil {
		return model.PostMetadata{}, err
	}
	if meta.Updated, err = ParseDate(updated); err != nil {
		return model.PostMetadata{}, fmt.Errorf("%s: %w", KeyUpdated, err)
	}
	if meta.Updated.Before(meta.Created) {
		return model.PostMetadata{}, fmt.Errorf("%w: %s < %s", ErrUpdatedBeforeCreated, updated, created)
	}

	tags, err := lookup(KeyTags)
	if err != nil {
		return model.PostMetadata{}, err
	}
	if meta.Tags, err = ParseTags(tags); err != nil {
		return model.PostMetadata{}, fmt.Errorf("%s: %w", KeyTags, err)
	}

	if meta.Summary, err = lookup(KeySummary); err != nil {
		return model.PostMetadata{}, err
	}

	return meta, nil
}

func parseFields(lines []string) (map[string]string, error) {
	fields := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeaderLine, line)
		}
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHeaderField, key)
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// ParseTags splits a comma separated tag list, trimming every entry.
// Order and case are preserved.
func ParseTags(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedTags)
	}
	parts := strings.Split(s, TagSeparator)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			return nil, fmt.Errorf("%w: empty tag in %q", ErrMalformedTags, s)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Format renders meta and body back into post source form. The result
// parses to the same Document.
func Format(meta model.PostMetadata, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", KeyTitle, meta.Title)
	fmt.Fprintf(&b, "%s: %s\n", KeySlug, meta.Slug)
	fmt.Fprintf(&b, "%s: %s\n", KeyCreated, meta.Created.Format(DateLayout))
	fmt.Fprintf(&b, "%s: %s\n", KeyUpdated, meta.Updated.Format(DateLayout))
	fmt.Fprintf(&b, "%s: %s\n", KeyTags, strings.Join(meta.Tags, TagSeparator+" "))
	fmt.Fprintf(&b, "%s: %s\n", KeySummary, meta.Summary)
	b.WriteString(body)
	return b.String()
}
