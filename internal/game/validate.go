package game

// ValidateAttempt reports whether attempt has the configured length and only
// contains characters from [opts.MinChar, opts.MaxChar].
func ValidateAttempt(opts Options, attempt Code) bool {
	if attempt.Len() != opts.CodeLength {
		return false
	}
	for _, ch := range string(attempt) {
		if ch < opts.MinChar || ch > opts.MaxChar {
			return false
		}
	}
	return true
}
