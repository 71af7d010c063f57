package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/DrikC/bulls-and-cows/internal/store"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

type TokenSigner interface {
	Sign(playerID string, ttl time.Duration) (string, error)
}

// LiveGames counts games in progress.
type LiveGames interface {
	Len() int
	Count(playerID string) int
}

type GuestResponse struct {
	PlayerID    string `json:"playerId"`
	AccessToken string `json:"accessToken"`
}

// ActiveResponse counts live games. Mine is only set for a caller that sent
// a bearer token.
type ActiveResponse struct {
	Active int  `json:"active"`
	Mine   *int `json:"mine,omitempty"`
}

type handlers struct {
	signer   TokenSigner
	verifier TokenVerifier
	tokenTTL time.Duration
	recorder store.Recorder
	live     LiveGames
	log      *slog.Logger
}

// guest hands out a fresh player identity and a token for it.
func (h *handlers) guest(w http.ResponseWriter, r *http.Request) {
	playerID := uuid.NewString()
	token, err := h.signer.Sign(playerID, h.tokenTTL)
	if err != nil {
		h.log.Error("sign guest token", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	writeJSON(w, http.StatusCreated, GuestResponse{PlayerID: playerID, AccessToken: token})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	playerID, ok := PlayerIDFromContext(r.Context())
	if !ok || playerID == "" {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing auth context")
		return
	}

	st, err := h.recorder.Stats(r.Context(), playerID)
	if err != nil {
		h.log.Error("load stats", "player_id", playerID, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// history lists the player's latest results, ?limit=N (1..50, default 10).
func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	playerID, ok := PlayerIDFromContext(r.Context())
	if !ok || playerID == "" {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing auth context")
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, r, http.StatusBadRequest, "bad_request", "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	results, err := h.recorder.Recent(r.Context(), playerID, limit)
	if err != nil {
		h.log.Error("load history", "player_id", playerID, "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal", "failed to load history")
		return
	}
	if results == nil {
		results = []store.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *handlers) active(w http.ResponseWriter, r *http.Request) {
	resp := ActiveResponse{Active: h.live.Len()}

	if token, ok := bearerToken(r); ok {
		claims, err := h.verifier.Verify(token)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		mine := h.live.Count(claims.PlayerID)
		resp.Mine = &mine
	}
	writeJSON(w, http.StatusOK, resp)
}
