package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned by AskAttempt when the line source has no more
// lines to give.
var ErrInputClosed = errors.New("input closed")

const invalidAttemptMessage = "Votre supposition de code a une longueur incorrecte ou contient des caracteres non-autorises, veuillez reessayer\n"

// LineSource yields lines of player input without their terminator. It
// returns an error wrapping io.EOF once no more input will come.
type LineSource interface {
	ReadLine() (string, error)
}

// ReaderLineSource reads lines from any io.Reader. Lines have no length
// limit; the last line may lack its terminator.
type ReaderLineSource struct {
	r *bufio.Reader
}

func NewReaderLineSource(r io.Reader) *ReaderLineSource {
	return &ReaderLineSource{r: bufio.NewReader(r)}
}

func (s *ReaderLineSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// AskAttempt prompts for a code and keeps asking until ValidateAttempt
// accepts the line read. It blocks on lines as long as needed; the only way
// out without a valid attempt is an input error.
func AskAttempt(w io.Writer, lines LineSource, opts Options, _ *Board) (Code, error) {
	if err := writePrompt(w, opts); err != nil {
		return "", err
	}

	for {
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %w", ErrInputClosed, err)
		}
		if err != nil {
			return "", fmt.Errorf("read attempt: %w", err)
		}

		attempt := Code(line)
		if ValidateAttempt(opts, attempt) {
			return attempt, nil
		}

		if _, err := io.WriteString(w, invalidAttemptMessage); err != nil {
			return "", err
		}
		if err := writePrompt(w, opts); err != nil {
			return "", err
		}
	}
}

func writePrompt(w io.Writer, opts Options) error {
	_, err := fmt.Fprintf(w, "Rentrez un premier code (%d caracteres entre '%c' et '%c')\n",
		opts.CodeLength, opts.MinChar, opts.MaxChar)
	return err
}
