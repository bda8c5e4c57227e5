// Package render turns posts and their relationships into HTML pages and an
// Atom feed by composing the fragments of a TemplateSet.
package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mplanchard/speedy/internal/model"
	"github.com/mplanchard/speedy/internal/posts"
	"github.com/mplanchard/speedy/internal/relations"
)

const (
	// IndexSize is the number of summaries on the front page.
	IndexSize = 10

	displayLayout = "January 2, 2006"
	footerLayout  = "2006-01-02"
)

// Site carries the site-wide values templates interpolate. BaseURL has no
// trailing slash.
type Site struct {
	Title    string
	BaseURL  string
	LinkTags bool
}

// Renderer renders every document of one generation run. The header and
// footer-common fragments are rendered once in New and reused by every page.
type Renderer struct {
	set    *TemplateSet
	site   Site
	coll   *posts.Collection
	posts  []model.Post
	index  *relations.Index
	now    time.Time
	header htmltemplate.HTML
	footer htmltemplate.HTML
}

// New builds a Renderer for coll and its index. Only the UTC day of now is
// used, as the footer date and as the feed date of an empty collection.
func New(set *TemplateSet, site Site, coll *posts.Collection, index *relations.Index, now time.Time) (*Renderer, error) {
	r := &Renderer{
		set:   set,
		site:  site,
		coll:  coll,
		posts: coll.Posts(),
		index: index,
		now:   now.UTC().Truncate(24 * time.Hour),
	}

	var err error
	if r.header, err = r.fragment("header", struct{ SiteTitle string }{site.Title}); err != nil {
		return nil, err
	}
	if r.footer, err = r.fragment("footer-common", struct{ Date string }{r.now.Format(footerLayout)}); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) fragment(name string, data any) (htmltemplate.HTML, error) {
	var buf bytes.Buffer
	if err := r.set.html.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render fragment '%s': %w", name, err)
	}
	return htmltemplate.HTML(buf.String()), nil
}

type pageView struct {
	Head    htmltemplate.HTML
	Header  htmltemplate.HTML
	Content htmltemplate.HTML
	Footer  htmltemplate.HTML
}

// Head renders the <head> element for a page titled title.
func (r *Renderer) Head(title string) (htmltemplate.HTML, error) {
	return r.fragment("head", struct{ Title, SiteTitle string }{title, r.site.Title})
}

// FooterCommon returns the shared footer rendered in New.
func (r *Renderer) FooterCommon() htmltemplate.HTML { return r.footer }

// FooterNav renders previous/next links. It is empty when n has neither.
func (r *Renderer) FooterNav(n relations.Neighbors) (htmltemplate.HTML, error) {
	return r.fragment("footer-nav", n)
}

// GenericPage wraps inner in the shared page chrome.
func (r *Renderer) GenericPage(title string, inner htmltemplate.HTML) (string, error) {
	return r.page("generic", title, inner)
}

func (r *Renderer) page(name, title string, inner htmltemplate.HTML) (string, error) {
	head, err := r.Head(title)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	view := pageView{Head: head, Header: r.header, Content: inner, Footer: r.footer}
	if err := r.set.html.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("failed to render page '%s': %w", name, err)
	}
	return buf.String(), nil
}

type summaryView struct {
	Title    string
	Href     string
	Date     string
	Datetime string
	Summary  string
}

func (r *Renderer) summaries(posts []*model.Post) (htmltemplate.HTML, error) {
	var b strings.Builder
	for _, p := range posts {
		s, err := r.fragment("post-summary", summaryView{
			Title:    p.Title,
			Href:     "/posts/" + p.Slug + ".html",
			Date:     p.Created.Format(displayLayout),
			Datetime: p.Created.Format(footerLayout),
			Summary:  p.Summary,
		})
		if err != nil {
			return "", err
		}
		b.WriteString(string(s))
	}
	return htmltemplate.HTML(b.String()), nil
}

func (r *Renderer) postRefs(n int) []*model.Post {
	if n > len(r.posts) {
		n = len(r.posts)
	}
	refs := make([]*model.Post, n)
	for i := range refs {
		refs[i] = &r.posts[i]
	}
	return refs
}

// IndexPage renders the front page with the IndexSize most recent posts.
func (r *Renderer) IndexPage() (string, error) {
	out, err := r.indexPage()
	if err != nil {
		return "", fmt.Errorf("index.html: %w", err)
	}
	return out, nil
}

func (r *Renderer) indexPage() (string, error) {
	sums, err := r.summaries(r.postRefs(IndexSize))
	if err != nil {
		return "", err
	}
	content, err := r.fragment("index-content", struct{ Summaries htmltemplate.HTML }{sums})
	if err != nil {
		return "", err
	}
	return r.page("index", r.site.Title, content)
}

// PostsPage lists every post.
func (r *Renderer) PostsPage() (string, error) {
	sums, err := r.summaries(r.postRefs(len(r.posts)))
	if err != nil {
		return "", fmt.Errorf("posts.html: %w", err)
	}
	content, err := r.fragment("posts-content", struct{ Summaries htmltemplate.HTML }{sums})
	if err != nil {
		return "", fmt.Errorf("posts.html: %w", err)
	}
	out, err := r.GenericPage("Posts", content)
	if err != nil {
		return "", fmt.Errorf("posts.html: %w", err)
	}
	return out, nil
}

type postView struct {
	pageView
	Post            *model.Post
	Tags            []htmltemplate.HTML
	Updated         string
	UpdatedDatetime string
	Nav             htmltemplate.HTML
}

// PostPage renders the i-th post with its tags and navigation.
func (r *Renderer) PostPage(i int) (string, error) {
	p := &r.posts[i]
	out, err := r.postPage(i, p)
	if err != nil {
		return "", fmt.Errorf("posts/%s.html: %w", p.Slug, err)
	}
	return out, nil
}

func (r *Renderer) postPage(i int, p *model.Post) (string, error) {
	head, err := r.Head(p.Title)
	if err != nil {
		return "", err
	}
	nav, err := r.FooterNav(r.index.Neighbors(i))
	if err != nil {
		return "", err
	}
	tags := make([]htmltemplate.HTML, 0, len(p.Tags))
	for _, tag := range p.Tags {
		link, err := r.fragment("tag-link", struct {
			Tag    string
			Anchor string
			Linked bool
		}{tag, TagAnchor(tag), r.site.LinkTags})
		if err != nil {
			return "", err
		}
		tags = append(tags, link)
	}

	view := postView{
		pageView:        pageView{Head: head, Header: r.header, Footer: r.footer},
		Post:            p,
		Tags:            tags,
		Updated:         p.Updated.Format(displayLayout),
		UpdatedDatetime: p.Updated.Format(footerLayout),
		Nav:             nav,
	}
	var buf bytes.Buffer
	if err := r.set.html.ExecuteTemplate(&buf, "post", view); err != nil {
		return "", fmt.Errorf("failed to render page 'post': %w", err)
	}
	return buf.String(), nil
}

// TagsPage renders one block per tag, tags in lexicographic order.
func (r *Renderer) TagsPage() (string, error) {
	var b strings.Builder
	for _, tag := range r.index.Tags().Names() {
		sums, err := r.summaries(r.index.TagPosts(tag))
		if err != nil {
			return "", fmt.Errorf("tags.html: %w", err)
		}
		block, err := r.fragment("tag-posts", struct {
			Tag       string
			Anchor    string
			Summaries htmltemplate.HTML
		}{tag, TagAnchor(tag), sums})
		if err != nil {
			return "", fmt.Errorf("tags.html: %w", err)
		}
		b.WriteString(string(block))
	}
	out, err := r.GenericPage("Tags", htmltemplate.HTML(b.String()))
	if err != nil {
		return "", fmt.Errorf("tags.html: %w", err)
	}
	return out, nil
}

// AboutPage renders the about fragment inside the generic chrome.
func (r *Renderer) AboutPage() (string, error) {
	return r.fixedPage("about.html", "about", "About")
}

// NotFoundPage renders the page served for missing paths.
func (r *Renderer) NotFoundPage() (string, error) {
	return r.fixedPage("notfound.html", "notfound", "Not Found")
}

func (r *Renderer) fixedPage(document, fragment, title string) (string, error) {
	inner, err := r.fragment(fragment, struct{ SiteTitle string }{r.site.Title})
	if err != nil {
		return "", fmt.Errorf("%s: %w", document, err)
	}
	out, err := r.GenericPage(title, inner)
	if err != nil {
		return "", fmt.Errorf("%s: %w", document, err)
	}
	return out, nil
}

// StaticPage renders a standalone markdown page inside the generic chrome.
func (r *Renderer) StaticPage(page model.Page) (string, error) {
	out, err := r.GenericPage(page.Title, page.Content)
	if err != nil {
		return "", fmt.Errorf("%s.html: %w", page.Name, err)
	}
	return out, nil
}

// TagAnchor maps a tag to an HTML id. Letters, digits and '-' are kept, every
// other byte becomes _XX, so distinct tags never share an anchor.
func TagAnchor(tag string) string {
	var b strings.Builder
	b.WriteString("tag-")
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02X", c)
		}
	}
	return b.String()
}

// feedID returns a stable urn:uuid for name.
func feedID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).URN()
}
