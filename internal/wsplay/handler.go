package wsplay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/DrikC/bulls-and-cows/internal/auth"
	"github.com/DrikC/bulls-and-cows/internal/game"
	"github.com/DrikC/bulls-and-cows/internal/session"
	"github.com/DrikC/bulls-and-cows/internal/store"
)

const recordTimeout = 5 * time.Second

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Handler plays one game per websocket connection.
type Handler struct {
	opts     game.Options
	seed     uint64
	auth     TokenVerifier
	recorder store.Recorder
	live     *Registry
	log      *slog.Logger

	upgrader websocket.Upgrader
}

// NewHandler builds the /ws endpoint. A zero seed gives every game its own
// clock-seeded generator; any other seed makes every game draw the same secret.
func NewHandler(opts game.Options, seed uint64, v TokenVerifier, rec store.Recorder, live *Registry, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if rec == nil {
		rec = store.NopRecorder{}
	}
	if live == nil {
		live = NewRegistry()
	}
	return &Handler{
		opts:     opts,
		seed:     seed,
		auth:     v,
		recorder: rec,
		live:     live,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := h.auth.Verify(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client.
		h.log.Debug("websocket upgrade failed", "err", err)
		return
	}
	conn := newConn(ws)
	defer func() {
		if err := conn.Close(); err != nil {
			h.log.Debug("websocket close", "err", err)
		}
	}()

	h.play(r.Context(), conn, claims.PlayerID)
}

func (h *Handler) play(ctx context.Context, conn *Conn, playerID string) {
	s := session.New(h.opts, game.NewRNG(h.seed), playerID, h.log)

	h.live.Add(Live{GameID: s.ID(), PlayerID: playerID, StartedAt: time.Now()})
	defer h.live.Remove(s.ID())

	res, err := s.Play(ctx, conn, conn)
	if err != nil {
		if !errors.Is(err, game.ErrInputClosed) && !errors.Is(err, context.Canceled) {
			h.log.Warn("websocket game failed", "game_id", s.ID(), "err", err)
		}
		return
	}

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := h.recorder.Record(rctx, res); err != nil {
		h.log.Error("record result", "game_id", res.ID, "err", err)
	}
}

func tokenFromRequest(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	if t, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(t)
	}
	return ""
}
