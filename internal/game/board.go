package game

import "unicode/utf8"

// Code is a sequence of characters: either the secret or an attempt.
type Code string

// Len is the number of characters, not bytes.
func (c Code) Len() int { return utf8.RuneCountInString(string(c)) }

type Feedback struct {
	Bulls int `json:"bulls"`
	Cows  int `json:"cows"`
}

// AttemptRecord pairs a submitted attempt with its feedback.
type AttemptRecord struct {
	Attempt  Code     `json:"attempt"`
	Feedback Feedback `json:"feedback"`
}

// Board is the state of one game: the secret and the attempts so far, oldest
// first. The secret never changes; attempts are only ever appended.
type Board struct {
	secret   Code
	attempts []AttemptRecord
}

// NewBoard generates a secret of opts.CodeLength characters drawn from src.
func NewBoard(opts Options, src CharacterSource) *Board {
	secret := make([]rune, 0, opts.CodeLength)
	for i := 0; i < opts.CodeLength; i++ {
		secret = append(secret, src.RandomCharacter(opts.MinChar, opts.MaxChar))
	}
	return &Board{secret: Code(secret)}
}

// NewBoardWithSecret builds a board around a known secret.
func NewBoardWithSecret(secret Code) *Board {
	return &Board{secret: secret}
}

func (b *Board) Secret() Code { return b.secret }

// Attempts returns a copy of the history.
func (b *Board) Attempts() []AttemptRecord {
	return append([]AttemptRecord(nil), b.attempts...)
}

func (b *Board) AttemptCount() int { return len(b.attempts) }

// Record appends one scored attempt.
func (b *Board) Record(attempt Code, fb Feedback) {
	b.attempts = append(b.attempts, AttemptRecord{Attempt: attempt, Feedback: fb})
}

// LastAttempt returns the most recent record, if any.
func (b *Board) LastAttempt() (AttemptRecord, bool) {
	if len(b.attempts) == 0 {
		return AttemptRecord{}, false
	}
	return b.attempts[len(b.attempts)-1], true
}
