package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/DrikC/bulls-and-cows/internal/store"
)

// Deps is what the router needs. WS is mounted at /ws when set.
type Deps struct {
	Tokens interface {
		TokenSigner
		TokenVerifier
	}
	TokenTTL time.Duration
	Recorder store.Recorder
	Live     LiveGames
	WS       http.Handler
	Log      *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	h := &handlers{
		signer:   d.Tokens,
		verifier: d.Tokens,
		tokenTTL: d.TokenTTL,
		recorder: d.Recorder,
		live:     d.Live,
		log:      log,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/guest", h.guest)
		r.Get("/games/active", h.active)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(d.Tokens))
			r.Get("/stats", h.stats)
			r.Get("/history", h.history)
		})
	})

	if d.WS != nil {
		r.Handle("/ws", d.WS)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not_found", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}
