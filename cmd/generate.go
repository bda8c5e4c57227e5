package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mplanchard/speedy/internal/config"
	"github.com/mplanchard/speedy/internal/site"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"build"},
	Short:   "Generates the static site from posts, pages and templates",
	Long: `The generate command loads every post in the posts directory, derives
previous/next links and tag listings, renders the index, posts, tags, about,
not-found and per-post pages plus the Atom feed, and writes them to the output
directory. Any error aborts the run before output is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runGenerate(appConfig)
		return err
	},
}

func runGenerate(cfg config.Config) (*site.Report, error) {
	slog.Info("Generating site", "posts", cfg.PostsDir, "output", cfg.OutputDir)
	return site.NewGenerator(cfg).Run()
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
