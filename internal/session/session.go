package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/DrikC/bulls-and-cows/internal/game"
	"github.com/DrikC/bulls-and-cows/internal/store"
)

const (
	PhasePlaying = "playing"
	PhaseWon     = "won"
	PhaseLost    = "lost"
	PhaseAborted = "aborted"

	eventWin     = "win"
	eventExhaust = "exhaust"
	eventAbort   = "abort"
)

// Session plays a single game for one player. Play must be called once.
type Session struct {
	id       string
	playerID string
	opts     game.Options
	src      game.CharacterSource
	log      *slog.Logger
	now      func() time.Time

	phase *fsm.FSM
}

func New(opts game.Options, src game.CharacterSource, playerID string, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	log = log.With("game_id", id, "player_id", playerID)

	return &Session{
		id:       id,
		playerID: playerID,
		opts:     opts,
		src:      src,
		log:      log,
		now:      time.Now,
		phase:    newPhaseMachine(log),
	}
}

func (s *Session) ID() string { return s.id }

// Phase is one of PhasePlaying, PhaseWon, PhaseLost or PhaseAborted.
func (s *Session) Phase() string { return s.phase.Current() }

func newPhaseMachine(log *slog.Logger) *fsm.FSM {
	return fsm.NewFSM(
		PhasePlaying,
		fsm.Events{
			{Name: eventWin, Src: []string{PhasePlaying}, Dst: PhaseWon},
			{Name: eventExhaust, Src: []string{PhasePlaying}, Dst: PhaseLost},
			{Name: eventAbort, Src: []string{PhasePlaying}, Dst: PhaseAborted},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Debug("game phase changed", "from", e.Src, "to", e.Dst)
			},
		},
	)
}

// Play runs the game on w, reading attempts from lines: the board is shown,
// then each valid attempt is scored, recorded and the board shown again,
// until the secret is found or the attempts run out. A verdict line closes
// the game.
//
// If lines runs dry the game is abandoned and the error wraps
// game.ErrInputClosed. ctx is checked between attempts only; a pending read
// is not interrupted.
func (s *Session) Play(ctx context.Context, w io.Writer, lines game.LineSource) (store.Result, error) {
	startedAt := s.now()
	board := game.NewBoard(s.opts, s.src)

	s.log.Debug("game started",
		"code_length", s.opts.CodeLength,
		"max_attempts", s.opts.MaxAttempts,
	)

	if err := game.DisplayBoard(w, s.opts, board); err != nil {
		return store.Result{}, s.abort(ctx, fmt.Errorf("display board: %w", err))
	}

	for s.phase.Is(PhasePlaying) {
		if err := ctx.Err(); err != nil {
			return store.Result{}, s.abort(ctx, err)
		}

		attempt, err := game.AskAttempt(w, lines, s.opts, board)
		if err != nil {
			return store.Result{}, s.abort(ctx, fmt.Errorf("ask attempt: %w", err))
		}

		fb := game.CompareAttemptWithSecretCode(attempt, board.Secret())
		board.Record(attempt, fb)
		s.log.Debug("attempt scored",
			"attempt_no", board.AttemptCount(),
			"bulls", fb.Bulls,
			"cows", fb.Cows,
		)

		if err := game.DisplayBoard(w, s.opts, board); err != nil {
			return store.Result{}, s.abort(ctx, fmt.Errorf("display board: %w", err))
		}

		switch {
		case game.IsWin(s.opts, board):
			err = s.phase.Event(ctx, eventWin)
		case game.IsEndOfGame(s.opts, board):
			err = s.phase.Event(ctx, eventExhaust)
		}
		if err != nil {
			return store.Result{}, fmt.Errorf("phase transition: %w", err)
		}
	}

	won := s.phase.Is(PhaseWon)
	if err := writeVerdict(w, won, board.AttemptCount(), board.Secret()); err != nil {
		return store.Result{}, fmt.Errorf("write verdict: %w", err)
	}

	res := store.Result{
		ID:          s.id,
		PlayerID:    s.playerID,
		Won:         won,
		Attempts:    board.AttemptCount(),
		MaxAttempts: s.opts.MaxAttempts,
		CodeLength:  s.opts.CodeLength,
		Secret:      string(board.Secret()),
		StartedAt:   startedAt,
		FinishedAt:  s.now(),
	}
	s.log.Info("game finished", "won", res.Won, "attempts", res.Attempts)
	return res, nil
}

func (s *Session) abort(ctx context.Context, cause error) error {
	if err := s.phase.Event(context.WithoutCancel(ctx), eventAbort); err != nil {
		s.log.Warn("abort transition failed", "err", err)
	}
	s.log.Info("game abandoned", "reason", cause)
	return cause
}
