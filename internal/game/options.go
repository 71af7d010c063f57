package game

// Options describes one game. The values are fixed for the whole game and are
// expected to be validated by whoever builds them (see config.Validate).
type Options struct {
	CodeLength  int  // characters per code
	MinChar     rune // lowest allowed character, inclusive
	MaxChar     rune // highest allowed character, inclusive
	MaxAttempts int
}

// DefaultOptions: 5 characters between 'A' and 'H', 12 attempts.
func DefaultOptions() Options {
	return Options{
		CodeLength:  5,
		MinChar:     'A',
		MaxChar:     'H',
		MaxAttempts: 12,
	}
}
