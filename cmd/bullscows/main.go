package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/DrikC/bulls-and-cows/internal/app"
	"github.com/DrikC/bulls-and-cows/internal/config"
	"github.com/DrikC/bulls-and-cows/internal/game"
	"github.com/DrikC/bulls-and-cows/internal/session"
	"github.com/DrikC/bulls-and-cows/internal/store"
)

const storeTimeout = 5 * time.Second

func main() {
	if err := run(context.Background(), os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "bullscows:", err)
		os.Exit(1)
	}
}

// run plays one game on in/out, records it and prints the player's totals.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := app.NewLogger(cfg, errOut)

	rec := openRecorder(ctx, cfg, log)
	defer func() {
		if err := rec.Close(); err != nil {
			log.Warn("close store", "err", err)
		}
	}()

	s := session.New(cfg.GameOptions(), game.NewRNG(cfg.Game.Seed), cfg.PlayerID, log)
	res, err := s.Play(ctx, out, game.NewReaderLineSource(in))
	if errors.Is(err, game.ErrInputClosed) {
		return nil
	}
	if err != nil {
		return err
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := rec.Record(sctx, res); err != nil {
		log.Warn("result not recorded", "err", err)
		return nil
	}
	st, err := rec.Stats(sctx, cfg.PlayerID)
	if err != nil {
		log.Warn("stats unavailable", "err", err)
		return nil
	}
	if _, isNop := rec.(store.NopRecorder); isNop {
		return nil
	}
	_, err = fmt.Fprintf(out, "Parties: %d | Victoires: %d | Defaites: %d\n", st.Games, st.Wins, st.Losses)
	return err
}

// openRecorder never fails: without a store the game is still playable.
func openRecorder(ctx context.Context, cfg config.Config, log *slog.Logger) store.Recorder {
	octx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rec, err := app.OpenRecorder(octx, cfg, log)
	if err != nil {
		log.Warn("results store unavailable, game will not be recorded",
			"backend", cfg.Store.Backend, "err", err)
		return store.NopRecorder{}
	}
	return rec
}
