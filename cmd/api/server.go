package main

import (
	"alvant-portal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

const shutdownTimeout = 5 * time.Second

// serve runs srv until it fails to listen or a signal arrives on quit.
// A listen failure is returned; a signal triggers a graceful shutdown.
func serve(srv *http.Server, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case sig := <-quit:
		logger.Log.Info("Shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
