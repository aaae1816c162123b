package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/windoze95/recipe-search/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests get to finish.
const ShutdownTimeout = 10 * time.Second

// Run serves handler on addr until ctx is done, then shuts down gracefully.
// Extra background tasks run alongside the server and receive a context that
// is cancelled when either the server stops or ctx is done.
func Run(ctx context.Context, addr string, handler http.Handler, tasks ...func(context.Context) error) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Get().Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Get().Info("shutting down server", zap.String("addr", addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	for _, task := range tasks {
		task := task
		g.Go(func() error { return task(gctx) })
	}

	return g.Wait()
}
