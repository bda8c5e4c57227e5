package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mplanchard/speedy/internal/publish"
)

var publishMessage string

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Commits the output directory and pushes it to the configured remote",
	Long: `The publish command treats the output directory as a git repository:
it stages every change, commits with the configured author when anything
changed, and pushes to the configured remote.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := appConfig.Publish
		msg := p.Message
		if publishMessage != "" {
			msg = publishMessage
		}
		_, err := publish.Publish(appConfig.OutputDir, publish.Options{
			Remote:      p.Remote,
			AuthorName:  p.AuthorName,
			AuthorEmail: p.AuthorEmail,
			Message:     msg,
		})
		return err
	},
}

func init() {
	publishCmd.Flags().StringVarP(&publishMessage, "message", "m", "", "commit message")
	rootCmd.AddCommand(publishCmd)
}
