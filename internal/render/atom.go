package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

type feedView struct {
	Title    string
	Link     string
	SelfLink string
	ID       string
	Updated  string
	Entries  string
}

type entryView struct {
	Title   string
	Link    string
	ID      string
	Updated string
	Summary string
}

// AtomFeed renders atom.xml with one entry per post. The feed's updated
// timestamp is the latest post update, or the generation day when there
// are no posts.
func (r *Renderer) AtomFeed() (string, error) {
	out, err := r.atomFeed()
	if err != nil {
		return "", fmt.Errorf("atom.xml: %w", err)
	}
	return out, nil
}

func (r *Renderer) atomFeed() (string, error) {
	updated, ok := r.coll.LatestUpdate()
	if !ok {
		updated = r.now
	}

	var entries strings.Builder
	for _, p := range r.posts {
		err := r.set.feed.ExecuteTemplate(&entries, "atom-entry", entryView{
			Title:   p.Title,
			Link:    p.URL,
			ID:      feedID(p.URL),
			Updated: p.Updated.UTC().Format(time.RFC3339),
			Summary: p.Summary,
		})
		if err != nil {
			return "", fmt.Errorf("failed to render feed entry '%s': %w", p.Slug, err)
		}
	}

	var buf bytes.Buffer
	err := r.set.feed.ExecuteTemplate(&buf, "atom", feedView{
		Title:    r.site.Title,
		Link:     r.site.BaseURL + "/",
		SelfLink: r.site.BaseURL + "/atom.xml",
		ID:       feedID(r.site.BaseURL + "/"),
		Updated:  updated.UTC().Format(time.RFC3339),
		Entries:  entries.String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render feed: %w", err)
	}
	return buf.String(), nil
}
