package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/itsharenotes/signup/internal/application/delivery"
	"github.com/itsharenotes/signup/internal/config"
	"github.com/itsharenotes/signup/internal/infrastructure/dynamo"
	"github.com/itsharenotes/signup/internal/infrastructure/memory"
	"github.com/itsharenotes/signup/internal/infrastructure/smtp"
	"github.com/itsharenotes/signup/internal/infrastructure/sns"
	"github.com/itsharenotes/signup/internal/metrics"
	transporthttp "github.com/itsharenotes/signup/internal/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var skipBootstrap bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, !skipBootstrap)
		},
	}

	cmd.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, "Do not create DynamoDB tables on startup")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, bootstrap bool) error {
	deps, err := buildDeps(ctx, cfg, bootstrap)
	if err != nil {
		return err
	}

	router := transporthttp.NewRouter(cfg, deps)
	defer router.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func buildDeps(ctx context.Context, cfg *config.Config, bootstrap bool) (*transporthttp.Deps, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg, reg)

	deps := &transporthttp.Deps{Metrics: collector}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		slog.Warn("using in-memory stores; accounts are lost on restart")
		deps.AccountRepo = memory.NewAccountRepo()
		deps.ActivationRepo = memory.NewActivationRepo()
	default:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("dynamodb client: %w", err)
		}
		if bootstrap {
			if err := dynamo.Bootstrap(ctx, client, cfg.DynamoTables); err != nil {
				return nil, fmt.Errorf("bootstrap tables: %w", err)
			}
		}
		deps.AccountRepo = dynamo.NewAccountRepo(client, cfg.DynamoTables.Accounts)
		deps.ActivationRepo = dynamo.NewActivationRepo(client, cfg.DynamoTables.ActivationTokens)
	}

	// SNS sender is optional; phone activations fail with DELIVERY_FAILED without it.
	var smsSender sns.SMSSender
	if s, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = s
	} else {
		slog.Warn("SNS sender not available", "err", err)
	}

	deps.Gateway = delivery.NewGateway(delivery.GatewayDeps{
		Mailer:    smtp.NewMailer(cfg),
		SMSSender: smsSender,
		Timeout:   cfg.DeliveryTimeout,
		Metrics:   collector,
	})
	return deps, nil
}
