package wsplay

import (
	"sync"
	"time"
)

// Live describes a game being played over a websocket.
type Live struct {
	GameID    string    `json:"gameId"`
	PlayerID  string    `json:"playerId"`
	StartedAt time.Time `json:"startedAt"`
}

// Registry tracks the games currently in progress.
type Registry struct {
	mu sync.Mutex
	m  map[string]Live
}

func NewRegistry() *Registry {
	return &Registry{
		m: make(map[string]Live),
	}
}

func (r *Registry) Add(l Live) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[l.GameID] = l
}

func (r *Registry) Remove(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, gameID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}

// Count reports how many live games the player has.
func (r *Registry) Count(playerID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.m {
		if l.PlayerID == playerID {
			n++
		}
	}
	return n
}
