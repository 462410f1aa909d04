package system

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/habitus/internal/api"
	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/logger"
)

type ServeCmd struct {
	Listen          string        `help:"Address to listen on. Overrides the config file."`
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests on shutdown." default:"10s"`
}

func (c *ServeCmd) server(ctx *cli.Context) *http.Server {
	addr := c.Listen
	if addr == "" {
		addr = ctx.Listen
	}
	a := &api.API{Service: ctx.Service, Metrics: ctx.Metrics}
	return &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	srv := c.server(ctx)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting API server", "addr", srv.Addr)
		fmt.Printf("Serving habitus API on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
