package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/yanqian/clima-assistant/internal/infra/config"
)

const shutdownTimeout = 10 * time.Second

// Resources collects the cleanup of clients opened while wiring the app.
type Resources struct {
	mu      sync.Mutex
	closers []closer
}

type closer struct {
	name string
	fn   func()
}

// NewResources returns an empty registry.
func NewResources() *Resources {
	return &Resources{}
}

// Add registers fn to run on shutdown. Closers run in reverse order.
func (r *Resources) Add(name string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, closer{name: name, fn: fn})
}

func (r *Resources) close(logger *slog.Logger) {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].fn()
		logger.Info("resource closed", "name", closers[i].name)
	}
}

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	resources *Resources
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, resources *Resources) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, resources: resources}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	defer a.resources.close(a.logger)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
