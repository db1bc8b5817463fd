package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/config"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/engine"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/httpapi"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// shutdownTimeout bounds the drain of in-flight requests once a stop signal
// arrives.
const shutdownTimeout = 15 * time.Second

// Options carries the wired dependencies for the API server. The serve
// command builds them; tests can substitute any piece.
type Options struct {
	Config  *config.Config
	Log     *logger.Logger
	Service *engine.Service
}

// Run serves the engine API until ctx is cancelled, then shuts down
// gracefully. Plans are derived state and attempts are persisted before any
// response goes out, so a drained shutdown loses nothing.
func Run(ctx context.Context, opts Options) error {
	if opts.Config.Env == "prod" || opts.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + opts.Config.ServerPort,
		Handler:           httpapi.NewRouter(opts.Service, opts.Log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		opts.Log.Info("api server listening", "addr", srv.Addr, "env", opts.Config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
		opts.Log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("drain api server: %w", err)
	}
	opts.Log.Info("api server stopped")
	return nil
}
