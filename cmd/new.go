package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mplanchard/speedy/internal/header"
	"github.com/mplanchard/speedy/internal/model"
	"github.com/mplanchard/speedy/internal/posts"
)

var (
	newTitle   string
	newTags    string
	newSummary string
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:     "new <slug>",
	Aliases: []string{"add-post"},
	Short:   "Creates a post file with a filled-in header",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := newPost(appConfig.PostsDir, args[0], newTitle, newTags, newSummary, time.Now())
		if err != nil {
			return err
		}
		slog.Info("Created post", "path", path)
		return nil
	},
}

func newPost(dir, slug, title, tags, summary string, now time.Time) (string, error) {
	tagList, err := header.ParseTags(tags)
	if err != nil {
		return "", err
	}
	if title == "" {
		title = slug
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	meta := model.PostMetadata{
		Title:   title,
		Slug:    slug,
		Created: today,
		Updated: today,
		Tags:    tagList,
		Summary: summary,
	}
	if err := posts.Validate(meta); err != nil {
		return "", err
	}

	path := filepath.Join(dir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("post '%s' already exists", path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create posts directory '%s': %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(header.Format(meta, "\n")), 0o644); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return path, nil
}

func init() {
	newCmd.Flags().StringVar(&newTitle, "title", "", "post title (default is the slug)")
	newCmd.Flags().StringVar(&newTags, "tags", "misc", "comma separated tags")
	newCmd.Flags().StringVar(&newSummary, "summary", "", "one line summary")
	rootCmd.AddCommand(newCmd)
}
