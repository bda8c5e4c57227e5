package header

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mplanchard/speedy/internal/model"
)

const samplePost = `title: Hello: World
slug: hello-world
created: 2023-01-02
updated: 2023-02-03
tags: go, Static Sites ,blog
summary: A first post.

# Heading

Body text.`

func TestParse_KeyedHeader(t *testing.T) {
	doc, err := Parse(samplePost)
	require.NoError(t, err)

	assert.Equal(t, "Hello: World", doc.Meta.Title)
	assert.Equal(t, "hello-world", doc.Meta.Slug)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), doc.Meta.Created)
	assert.Equal(t, time.Date(2023, 2, 3, 0, 0, 0, 0, time.UTC), doc.Meta.Updated)
	assert.Equal(t, []string{"go", "Static Sites", "blog"}, doc.Meta.Tags)
	assert.Equal(t, "A first post.", doc.Meta.Summary)
	assert.Equal(t, "\n# Heading\n\nBody text.", doc.Body)
}

func TestParse_AnyLineOrder(t *testing.T) {
	text := "summary: s\ntags: a\nupdated: 2020-01-01\ncreated: 2020-01-01\nslug: x\ntitle: T\nbody"
	doc, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "T", doc.Meta.Title)
	assert.Equal(t, "x", doc.Meta.Slug)
	assert.Equal(t, "body", doc.Body)
}

func TestParse_CRLF(t *testing.T) {
	text := "title: T\r\nslug: s\r\ncreated: 2020-01-01\r\nupdated: 2020-01-01\r\ntags: a\r\nsummary: x\r\n\r\nbody"
	doc, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Meta.Summary)
	assert.Equal(t, "\nbody", doc.Body)
}

func TestFormat_RoundTrip(t *testing.T) {
	meta := model.PostMetadata{
		Title:   "Round trip",
		Slug:    "round-trip",
		Created: time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
		Updated: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
		Tags:    []string{"zeta", "Alpha", "mid"},
		Summary: "Keeps every field.",
	}
	body := "\nSome *markdown*.\n"

	doc, err := Parse(Format(meta, body))
	require.NoError(t, err)
	assert.Equal(t, meta, doc.Meta)
	assert.Equal(t, body, doc.Body)
}

func TestParse_Errors(t *testing.T) {
	valid := map[string]string{
		KeyTitle:   "title: T",
		KeySlug:    "slug: s",
		KeyCreated: "created: 2020-01-02",
		KeyUpdated: "updated: 2020-01-03",
		KeyTags:    "tags: a, b",
		KeySummary: "summary: x",
	}
	build := func(override map[string]string) string {
		out := ""
		for _, k := range []string{KeyTitle, KeySlug, KeyCreated, KeyUpdated, KeyTags, KeySummary} {
			line := valid[k]
			if v, ok := override[k]; ok {
				line = v
			}
			out += line + "\n"
		}
		return out + "body"
	}

	tests := []struct {
		name     string
		override map[string]string
		want     error
		contains string
	}{
		{"missing tags", map[string]string{KeyTags: "other: a"}, ErrMissingHeaderField, "tags"},
		{"missing title", map[string]string{KeyTitle: "name: T"}, ErrMissingHeaderField, "title"},
		{"bad created", map[string]string{KeyCreated: "created: 2020/01/02"}, ErrMalformedDate, "2020/01/02"},
		{"bad updated", map[string]string{KeyUpdated: "updated: yesterday"}, ErrMalformedDate, "yesterday"},
		{"no colon", map[string]string{KeySummary: "just text"}, ErrMalformedHeaderLine, "just text"},
		{"empty key", map[string]string{KeySummary: ": value"}, ErrMalformedHeaderLine, ": value"},
		{"duplicate", map[string]string{KeySummary: "title: again"}, ErrDuplicateHeaderField, "title"},
		{"empty tags", map[string]string{KeyTags: "tags:   "}, ErrMalformedTags, "empty"},
		{"empty tag entry", map[string]string{KeyTags: "tags: a,,b"}, ErrMalformedTags, "a,,b"},
		{"updated before created", map[string]string{KeyUpdated: "updated: 2019-12-31"}, ErrUpdatedBeforeCreated, "2019-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(build(tt.override))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_ValueErrorsNameTheField(t *testing.T) {
	const valid = "title: T\nslug: s\ncreated: 2020-01-02\nupdated: 2020-01-02\ntags: a\nsummary: S\n"
	tests := []struct {
		name   string
		from   string
		to     string
		want   error
		prefix string
	}{
		{"created", "created: 2020-01-02", "created: soon", ErrMalformedDate, "created: "},
		{"updated", "updated: 2020-01-02", "updated: 02/01/2020", ErrMalformedDate, "updated: "},
		{"tags", "tags: a", "tags: a, ,b", ErrMalformedTags, "tags: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.Replace(valid, tt.from, tt.to, 1))
			require.ErrorIs(t, err, tt.want)
			assert.True(t, strings.HasPrefix(err.Error(), tt.prefix), "got %v", err)
		})
	}
}

func TestParse_ShortFileReportsMissingField(t *testing.T) {
	_, err := Parse("title: T\nslug: s")
	require.ErrorIs(t, err, ErrMissingHeaderField)
	assert.Contains(t, err.Error(), "created")
}

func TestParseTags_PreservesCaseAndOrder(t *testing.T) {
	tags, err := ParseTags(" Go ,go,  rust")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "go", "rust"}, tags)
}
