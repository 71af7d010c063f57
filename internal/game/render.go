package game

import (
	"fmt"
	"io"
	"strings"
)

const (
	ruleLine      = "-------------------------------------\n"
	tableRuleLine = " ------------------------------------\n"
	emptyFeedback = "|       |      |\n"
)

// DisplayBoard writes the scoreboard to w. The secret stays masked until the
// game is won or out of attempts. One row is printed per allowed attempt,
// numbered from opts.MaxAttempts down to #01, #01 being the first attempt.
//
// The board is only read. The returned error comes from w.
func DisplayBoard(w io.Writer, opts Options, b *Board) error {
	var sb strings.Builder

	sb.WriteString(ruleLine)
	sb.WriteString("| SECRET   ")
	if IsWin(opts, b) || IsEndOfGame(opts, b) {
		writeSpaced(&sb, b.Secret())
	} else {
		sb.WriteString(strings.Repeat("* ", opts.CodeLength))
	}
	sb.WriteString("|              |\n")
	sb.WriteString(ruleLine)

	sb.WriteString("| ATTEMPTS ")
	sb.WriteString(strings.Repeat("  ", opts.CodeLength))
	sb.WriteString("| BULLS | COWS |\n")
	sb.WriteString(tableRuleLine)

	placeholder := strings.Repeat(". ", opts.CodeLength)
	attempts := b.attempts
	for i := opts.MaxAttempts; i > 0; i-- {
		fmt.Fprintf(&sb, "| #%02d      ", i)
		if len(attempts) < i {
			sb.WriteString(placeholder)
			sb.WriteString(emptyFeedback)
			continue
		}
		rec := attempts[i-1]
		writeSpaced(&sb, rec.Attempt)
		fmt.Fprintf(&sb, "|   %d   |  %d   |\n", rec.Feedback.Bulls, rec.Feedback.Cows)
	}

	sb.WriteString(ruleLine)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSpaced(sb *strings.Builder, c Code) {
	for _, ch := range string(c) {
		sb.WriteRune(ch)
		sb.WriteByte(' ')
	}
}
