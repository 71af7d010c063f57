package game

// CompareAttemptWithSecretCode scores an attempt against the secret.
//
// Bulls are counted first, position by position. Then every attempt character
// that is not a bull consumes at most one remaining secret character equal to
// it, which counts as a cow. Positions are tracked with used markers, so the
// callers' codes are never touched and no character value is reserved.
func CompareAttemptWithSecretCode(attempt, secret Code) Feedback {
	a := []rune(string(attempt))
	s := []rune(string(secret))

	usedA := make([]bool, len(a))
	usedS := make([]bool, len(s))

	var fb Feedback

	// bulls
	for i := 0; i < min(len(a), len(s)); i++ {
		if a[i] == s[i] {
			fb.Bulls++
			usedA[i] = true
			usedS[i] = true
		}
	}

	// cows
	for i, ch := range a {
		if usedA[i] {
			continue
		}
		for j, sch := range s {
			if !usedS[j] && sch == ch {
				fb.Cows++
				usedS[j] = true
				break
			}
		}
	}

	return fb
}
