package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/itsharenotes/signup/internal/config"
	"github.com/itsharenotes/signup/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "signup",
		Short:         "Account sign-up service with email and SMS activation codes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newBootstrapCommand())
	return cmd
}

// loadConfig reads .env when present, then the environment.
func loadConfig() (*config.Config, error) {
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.Setup(os.Stderr, cfg.IsProduction(), cfg.LogLevel)
	if envErr != nil {
		slog.Debug("no .env file found, reading from environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
