package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lolijho/crm-grab-backend-sub000/internal/config"
	"github.com/lolijho/crm-grab-backend-sub000/internal/mockcrm"
)

// MockOptions holds flags for the mock command.
type MockOptions struct {
	*RootOptions
	Addr     string
	AutoSync bool
}

// NewMockCommand creates the mock command, which serves an in-memory CRM
// backend compatible with the acceptance suites.
func NewMockCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MockOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory CRM backend for local suite runs",
		Long: `Serve an in-memory CRM backend. The admin account, webhook secret and
port come from the usual configuration sources, so

  apicheck mock &
  apicheck run

works out of the box against http://localhost:8001.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveMock(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8001", "listen address")
	cmd.Flags().BoolVar(&opts.AutoSync, "auto-sync", true, "run the scheduled WooCommerce syncs")

	return cmd
}

func serveMock(cmd *cobra.Command, opts *MockOptions) error {
	cfg, err := config.Load(opts.Profile)
	if err != nil {
		return err
	}
	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	srv, err := mockcrm.New(mockcrm.Config{
		WebhookSecret: cfg.WebhookSecret,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}, log)
	if err != nil {
		return err
	}
	if opts.AutoSync {
		srv.StartAutoSync()
		defer srv.StopAutoSync()
	}

	httpSrv := &http.Server{
		Addr:              opts.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "🧪 mock CRM backend listening on %s\n", opts.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
