package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	apiURL     string
	authToken  string
	difficulty string
)

// Execute runs the CLI under a signal-aware context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envAPI := os.Getenv("PAGEQUIZ_API_URL")
	envToken := os.Getenv("PAGEQUIZ_TOKEN")

	cmd := &cobra.Command{
		Use:   "pagequiz",
		Short: "Turn any web page into a multiple-choice quiz",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", envAPI, "quiz service base URL")
	cmd.PersistentFlags().StringVar(&authToken, "token", envToken, "bearer token for authenticated calls")
	cmd.AddCommand(NewCreateCmd())
	cmd.AddCommand(NewTakeCmd())
	cmd.AddCommand(NewTopicsCmd())
	cmd.AddCommand(NewResultsCmd())
	cmd.AddCommand(NewListCmd())
	return cmd
}
