package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/DrikC/bulls-and-cows/internal/auth"
	"github.com/DrikC/bulls-and-cows/internal/config"
	"github.com/DrikC/bulls-and-cows/internal/httpapi"
	"github.com/DrikC/bulls-and-cows/internal/store"
	"github.com/DrikC/bulls-and-cows/internal/wsplay"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	recorder store.Recorder
	live     *wsplay.Registry

	srv *http.Server
}

// New wires the server. The recorder is owned by the App from here on and
// released by Close.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	rec, err := OpenRecorder(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	return NewWithRecorder(cfg, log, rec), nil
}

func NewWithRecorder(cfg config.Config, log *slog.Logger, rec store.Recorder) *App {
	if log == nil {
		log = slog.Default()
	}

	authSvc := auth.NewService([]byte(cfg.Auth.Secret))
	live := wsplay.NewRegistry()
	ws := wsplay.NewHandler(cfg.GameOptions(), cfg.Game.Seed, authSvc, rec, live, log)

	router := httpapi.NewRouter(httpapi.Deps{
		Tokens:   authSvc,
		TokenTTL: cfg.Auth.TokenTTL,
		Recorder: rec,
		Live:     live,
		WS:       ws,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return &App{cfg: cfg, log: log, recorder: rec, live: live, srv: srv}
}

// Handler exposes the router, mostly for tests.
func (a *App) Handler() http.Handler { return a.srv.Handler }

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr, "store", a.cfg.Store.Backend)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down", "live_games", a.live.Len())
		// hijacked websocket connections are not tracked by Shutdown
		return a.srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *App) Close() error {
	if a.recorder == nil {
		return nil
	}
	err := a.recorder.Close()
	a.recorder = nil
	return err
}
