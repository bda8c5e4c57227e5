// Package relations derives previous/next navigation and tag groupings from
// an ordered post list. It stores indices into that list, never copies of
// posts.
package relations

import (
	"sort"

	"github.com/mplanchard/speedy/internal/model"
)

// Neighbors holds the slugs adjacent to a post. An empty string means there
// is no neighbor in that direction.
type Neighbors struct {
	Previous string // older post
	Next     string // newer post
}

// Index is the relationship view over a newest-first post list.
type Index struct {
	posts []model.Post
	tags  *TagMap
}

// Build derives the index. posts must already be sorted newest first and must
// outlive the index.
func Build(posts []model.Post) *Index {
	return &Index{posts: posts, tags: Group(posts)}
}

// Neighbors returns the older (i+1) and newer (i-1) slugs of the i-th post.
func (x *Index) Neighbors(i int) Neighbors {
	var n Neighbors
	if i+1 < len(x.posts) {
		n.Previous = x.posts[i+1].Slug
	}
	if i > 0 {
		n.Next = x.posts[i-1].Slug
	}
	return n
}

// Tags returns the tag map.
func (x *Index) Tags() *TagMap { return x.tags }

// TagPosts resolves the posts carrying tag, in collection order.
func (x *Index) TagPosts(tag string) []*model.Post {
	idx := x.tags.Posts(tag)
	out := make([]*model.Post, 0, len(idx))
	for _, i := range idx {
		out = append(out, &x.posts[i])
	}
	return out
}

// TagMap groups post indices by tag. Tags match exactly: "Go" and "go" are
// different tags.
type TagMap struct {
	names   []string
	buckets map[string][]int
}

// Group builds a TagMap by walking posts in order, so every bucket keeps
// collection order.
func Group(posts []model.Post) *TagMap {
	m := &TagMap{buckets: make(map[string][]int)}
	for i := range posts {
		for _, tag := range posts[i].Tags {
			bucket, ok := m.buckets[tag]
			if !ok {
				m.names = append(m.names, tag)
			}
			// a post listing the same tag twice is counted once
			if len(bucket) > 0 && bucket[len(bucket)-1] == i {
				continue
			}
			m.buckets[tag] = append(bucket, i)
		}
	}
	sort.Strings(m.names)
	return m
}

// Names returns every tag in lexicographic order.
func (m *TagMap) Names() []string { return m.names }

// Posts returns the indices of the posts carrying tag.
func (m *TagMap) Posts(tag string) []int { return m.buckets[tag] }

// Len returns the number of distinct tags.
func (m *TagMap) Len() int { return len(m.names) }
