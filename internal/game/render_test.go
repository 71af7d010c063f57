package game

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, opts Options, b *Board) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, DisplayBoard(&buf, opts, b))
	return buf.String()
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestDisplayBoard_MaskedInProgress(t *testing.T) {
	opts := Options{CodeLength: 4, MinChar: 'A', MaxChar: 'F', MaxAttempts: 3}
	b := NewBoardWithSecret("ABCD")
	b.Record("ABDC", CompareAttemptWithSecretCode("ABDC", "ABCD"))

	want := lines(
		"-------------------------------------",
		"| SECRET   * * * * |              |",
		"-------------------------------------",
		"| ATTEMPTS         | BULLS | COWS |",
		" ------------------------------------",
		"| #03      . . . . |       |      |",
		"| #02      . . . . |       |      |",
		"| #01      A B D C |   2   |  2   |",
		"-------------------------------------",
	)
	assert.Equal(t, want, render(t, opts, b))
}

func TestDisplayBoard_RevealedOnWin(t *testing.T) {
	opts := Options{CodeLength: 4, MinChar: 'A', MaxChar: 'F', MaxAttempts: 3}
	b := NewBoardWithSecret("ABCD")
	b.Record("FFFF", CompareAttemptWithSecretCode("FFFF", "ABCD"))
	b.Record("ABCD", CompareAttemptWithSecretCode("ABCD", "ABCD"))

	want := lines(
		"-------------------------------------",
		"| SECRET   A B C D |              |",
		"-------------------------------------",
		"| ATTEMPTS         | BULLS | COWS |",
		" ------------------------------------",
		"| #03      . . . . |       |      |",
		"| #02      A B C D |   4   |  0   |",
		"| #01      F F F F |   0   |  0   |",
		"-------------------------------------",
	)
	assert.Equal(t, want, render(t, opts, b))
}

func TestDisplayBoard_RevealedWhenExhausted(t *testing.T) {
	opts := Options{CodeLength: 2, MinChar: '0', MaxChar: '9', MaxAttempts: 2}
	b := NewBoardWithSecret("12")
	b.Record("21", CompareAttemptWithSecretCode("21", "12"))
	b.Record("13", CompareAttemptWithSecretCode("13", "12"))

	out := render(t, opts, b)
	assert.Contains(t, out, "| SECRET   1 2 |              |\n")
	assert.Contains(t, out, "| #02      1 3 |   1   |  0   |\n")
	assert.Contains(t, out, "| #01      2 1 |   0   |  2   |\n")
}

func TestDisplayBoard_AlwaysMaxAttemptsRows(t *testing.T) {
	opts := DefaultOptions()
	b := NewBoard(opts, NewRNG(3))

	for n := 0; n <= opts.MaxAttempts; n++ {
		out := render(t, opts, b)
		assert.Equal(t, opts.MaxAttempts, strings.Count(out, "| #"), "after %d attempts", n)
		assert.Contains(t, out, "| #12      ")
		assert.Contains(t, out, "| #09      ")
		assert.Contains(t, out, "| #01      ")

		masked := "| SECRET   * * * * * |"
		if n < opts.MaxAttempts {
			assert.Contains(t, out, masked)
		} else {
			assert.NotContains(t, out, masked)
		}
		b.Record("ZZZZZ", CompareAttemptWithSecretCode("ZZZZZ", b.Secret()))
	}
}

func TestDisplayBoard_DoesNotMutate(t *testing.T) {
	opts := Options{CodeLength: 4, MinChar: 'A', MaxChar: 'F', MaxAttempts: 3}
	b := NewBoardWithSecret("ABCD")
	b.Record("ABDC", Feedback{Bulls: 2, Cows: 2})
	before := b.Attempts()

	first := render(t, opts, b)
	second := render(t, opts, b)

	assert.Equal(t, first, second)
	assert.Equal(t, before, b.Attempts())
	assert.Equal(t, Code("ABCD"), b.Secret())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("sink closed") }

func TestDisplayBoard_WriteError(t *testing.T) {
	err := DisplayBoard(failingWriter{}, DefaultOptions(), NewBoardWithSecret("ABCDE"))
	require.EqualError(t, err, "sink closed")
}
