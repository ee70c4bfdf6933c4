package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wetigu/ai-playground/internal/errors"
	"github.com/wetigu/ai-playground/internal/mockapi"
)

type mockOptions struct {
	addr   string
	prefix string
	token  string
	seed   bool
}

func mockCmd(a *app) *cobra.Command {
	opts := mockOptions{}

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve an in-memory storefront backend",
		Long: `Serve an in-memory implementation of the storefront API.

Data lives only as long as the process. The default prefix matches the
default STOREFRONT_API_URL, so the other commands work against it
without extra configuration.

Examples:
  storefront mock
  storefront mock --addr :9000 --token secret --seed=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMock(cmd.Context(), a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8000", "Address to listen on")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "/api/v1", "Path prefix of the API routes")
	cmd.Flags().StringVar(&opts.token, "token", "", "Require this bearer token")
	cmd.Flags().BoolVar(&opts.seed, "seed", true, "Start with sample data")

	return cmd
}

// mockHandler mounts the backend under prefix and exposes /metrics.
func mockHandler(backend *mockapi.Server, prefix string) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	if prefix == "" || prefix == "/" {
		r.Mount("/", backend.Handler())
	} else {
		r.Mount(prefix, backend.Handler())
	}
	return r
}

func runMock(ctx context.Context, a *app, opts mockOptions) error {
	backendOpts := []mockapi.Option{mockapi.WithLogger(a.logger)}
	if opts.seed {
		backendOpts = append(backendOpts, mockapi.WithSeed())
	}
	if opts.token != "" {
		backendOpts = append(backendOpts, mockapi.WithToken(opts.token))
	}
	backend := mockapi.New(backendOpts...)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           mockHandler(backend, opts.prefix),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	products, orders, users := backend.Counts()
	a.success("Mock backend listening on http://%s%s", opts.addr, opts.prefix)
	a.info("%d products, %d orders, %d users", products, orders, users)

	select {
	case err := <-errCh:
		return errors.New("S141").Wrap(err)
	case <-ctx.Done():
	}

	a.info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.New("S141").Wrap(err)
	}
	return nil
}
