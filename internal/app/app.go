package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/evebuzz/evebuzz/internal/config"
	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/eventapi"
	"github.com/evebuzz/evebuzz/pkg/session"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var ErrNoToken = errors.New("api.token is not configured")

// Application wires configuration, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(cfg config.Application) (*Application, error) {
	clock := &utils.SystemClock{}
	client := eventapi.NewClient(cfg.Api.BaseUrl, cfg.Api.Timeout, clock)
	return newApplication(cfg, client, clock)
}

func newApplication(cfg config.Application, client eventapi.Client, clock utils.Clock) (*Application, error) {
	deps, err := BuildDependencies(cfg, client, clock)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	defer a.deps.Close()

	if err := a.refreshWithConfiguredToken(ctx); err != nil {
		if errors.Is(err, ErrNoToken) {
			log.Info("No api.token configured, events will load on the first refresh request")
		} else {
			log.Warnf("Startup refresh failed, serving without events: %v", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Report performs a single refresh with the configured token and writes the dashboard as CSV.
func (a *Application) Report(ctx context.Context, w io.Writer) error {
	defer a.deps.Close()

	if err := a.refreshWithConfiguredToken(ctx); err != nil {
		return err
	}
	dashboard, err := a.deps.AnalyticsService.GetDashboard(ctx)
	if err != nil {
		return err
	}
	csv, err := a.deps.DashboardRenderer.RenderDashboard(dashboard)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, csv); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (a *Application) refreshWithConfiguredToken(ctx context.Context) error {
	if a.cfg.Api.Token == "" {
		return ErrNoToken
	}
	_, err := a.deps.CatalogService.Refresh(ctx, session.Session{Token: a.cfg.Api.Token})
	return err
}
