package game

// IsEndOfGame reports whether every allowed attempt has been used, whatever
// the outcome.
func IsEndOfGame(opts Options, b *Board) bool {
	return b.AttemptCount() == opts.MaxAttempts
}

// IsWin reports whether the most recent attempt is exactly the secret.
func IsWin(_ Options, b *Board) bool {
	last, ok := b.LastAttempt()
	if !ok {
		return false
	}
	return last.Attempt == b.Secret()
}
