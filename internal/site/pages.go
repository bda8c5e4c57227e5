package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mplanchard/speedy/internal/model"
	"github.com/mplanchard/speedy/internal/posts"
)

// LoadPages reads every visible *.md file in dir as a standalone page. YAML
// front matter is optional; its title wins over one derived from the file
// name. A missing dir yields no pages.
func LoadPages(dir string, md posts.BodyRenderer) ([]model.Page, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pages directory '%s': %w", dir, err)
	}

	var pages []model.Page
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(name), ".md") {
			continue
		}
		path := filepath.Join(dir, name)
		page, err := loadPage(path, md)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func loadPage(path string, md posts.BodyRenderer) (model.Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Page{}, fmt.Errorf("failed to read page '%s': %w", path, err)
	}

	var matter struct {
		Title string `yaml:"title" toml:"title" json:"title"`
	}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &matter)
	if err != nil {
		return model.Page{}, fmt.Errorf("failed to parse front matter of '%s': %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title := matter.Title
	if title == "" {
		title = titleFromName(name)
	}

	return model.Page{
		Name:       name,
		Title:      title,
		Content:    template.HTML(md.Render(string(body))),
		SourcePath: path,
	}, nil
}

func titleFromName(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(words)
}
