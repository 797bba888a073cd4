package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/itsharenotes/signup/internal/infrastructure/dynamo"
	"github.com/spf13/cobra"
)

func newBootstrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the DynamoDB tables and enable TTL, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client, err := dynamo.NewClient(ctx, cfg)
			if err != nil {
				return fmt.Errorf("dynamodb client: %w", err)
			}
			if err := dynamo.Bootstrap(ctx, client, cfg.DynamoTables); err != nil {
				return err
			}
			slog.Info("tables ready", "accounts", cfg.DynamoTables.Accounts, "activation_tokens", cfg.DynamoTables.ActivationTokens)
			return nil
		},
	}
}
