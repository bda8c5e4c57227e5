package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mplanchard/speedy/internal/config"
	"github.com/mplanchard/speedy/internal/server"
)

var serveAddr string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"serve"},
	Short:   "Serves the generated site over HTTP",
	Long: `The run command serves the output directory as static files. It does not
generate anything; run generate first. Do not regenerate into the same
directory while it is being served.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		return runServe(cmd.Context(), cfg)
	},
}

func runServe(ctx context.Context, cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return server.New(cfg.Addr, cfg.OutputDir).ListenAndServe(ctx)
}

func init() {
	runCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (default is 127.0.0.1:8000)")
	rootCmd.AddCommand(runCmd)
}
