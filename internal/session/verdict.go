package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/DrikC/bulls-and-cows/internal/game"
)

var (
	winColor  = lipgloss.Color("10")
	lossColor = lipgloss.Color("9")
)

// writeVerdict prints the closing line. Colours are only emitted when w is a
// terminal that supports them.
func writeVerdict(w io.Writer, won bool, attempts int, secret game.Code) error {
	r := lipgloss.NewRenderer(w)
	style := r.NewStyle().Bold(true)

	var msg string
	if won {
		word := "tentatives"
		if attempts == 1 {
			word = "tentative"
		}
		msg = fmt.Sprintf("Bravo ! Vous avez trouve le code secret en %d %s.", attempts, word)
		style = style.Foreground(winColor)
	} else {
		msg = fmt.Sprintf("Perdu ! Le code secret etait %s.", secret)
		style = style.Foreground(lossColor)
	}

	_, err := fmt.Fprintln(w, style.Render(msg))
	return err
}
