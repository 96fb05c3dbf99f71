package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/intake"
	intakehttp "github.com/aretw0/intake/pkg/adapters/http"
	"github.com/aretw0/intake/pkg/forms/catalog"
	"github.com/aretw0/intake/pkg/observability"
	"github.com/aretw0/intake/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the wizard session API, the one-shot /api/submit-form endpoint and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	bindFlag(serveCmd.Flags().Lookup("addr"), "server.addr")
}

func runServe(ctx context.Context) error {
	st, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cat := catalog.Default()
	deliverer, err := newDeliverer(cat)
	if err != nil {
		return err
	}

	opts := []session.Option{session.WithLogger(logger)}
	if st.locker != nil {
		opts = append(opts, session.WithLocker(st.locker))
	}
	sessions := session.NewManager(st.store, opts...)

	api, err := intakehttp.New(ctx, sessions, deliverer,
		intakehttp.WithLogger(logger),
		intakehttp.WithCatalog(cat),
		intakehttp.WithMetrics(observability.NewMetrics()),
		intakehttp.WithLifecycleHooks(observability.LoggingHooks(logger)),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting intake server", "addr", srv.Addr, "version", intake.Version, "mail_driver", cfg.Mail.Driver)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", cfg.Server.ShutdownTimeout, err)
		}
		logger.Info("Intake server stopped gracefully")
		return nil
	}
}
