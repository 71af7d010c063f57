package game

import "testing"

func TestValidateAttempt(t *testing.T) {
	opts := Options{CodeLength: 4, MinChar: 'A', MaxChar: 'F', MaxAttempts: 10}

	cases := []struct {
		attempt Code
		ok      bool
	}{
		{"ABCD", true},
		{"AAAA", true},
		{"FFFF", true},
		{"ABC", false},
		{"ABCDE", false},
		{"", false},
		{"ABCG", false},
		{"abcd", false},
		{"AB D", false},
		{"@BCD", false},
		{"ABÉD", false},
	}
	for _, tc := range cases {
		if got := ValidateAttempt(opts, tc.attempt); got != tc.ok {
			t.Fatalf("ValidateAttempt(%q)=%v want %v", tc.attempt, got, tc.ok)
		}
	}
}

func TestValidateAttempt_CountsCharacters(t *testing.T) {
	opts := Options{CodeLength: 3, MinChar: 'α', MaxChar: 'ω', MaxAttempts: 1}
	if !ValidateAttempt(opts, "αβγ") {
		t.Fatalf("expected three greek letters to be valid")
	}
	if ValidateAttempt(opts, "αβ") {
		t.Fatalf("expected two greek letters (four bytes) to be rejected")
	}
}
