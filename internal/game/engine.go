// internal/game/engine.go
//
// Scoring for the daily puzzle.
// Responsibilities:
//   - Score guesses using the classic two-pass algorithm.
//   - Validate candidate words (length, alphabetic).
//
// Evaluate is pure: callers validate length and alphabet before calling it.
package game

// Evaluate scores guess against answer.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters by letter index.
//
// Pass 2:
//   - Walking left to right, mark a non-correct guess letter Present while
//     unmatched copies remain and decrement the count; otherwise Absent.
//
// This ensures correct behavior with repeated letters in both answer and guess.
func Evaluate(guess, answer string) []Verdict {
	n := len(guess)
	res := make([]Verdict, n)

	// Letter frequency for the non-correct positions (a–z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = VerdictCorrect
		} else if j := idx(answer[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == VerdictCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && counts[j] > 0 {
			res[i] = VerdictPresent
			counts[j]--
		} else {
			res[i] = VerdictAbsent
		}
	}
	return res
}

// AllCorrect returns true if every verdict is Correct.
func AllCorrect(v []Verdict) bool {
	if len(v) == 0 {
		return false
	}
	for _, x := range v {
		if x != VerdictCorrect {
			return false
		}
	}
	return true
}

// ValidWord reports whether s is exactly n lowercase letters a–z.
func ValidWord(s string, n int) bool {
	return len(s) == n && IsAlpha(s)
}

// IsAlpha checks that a string consists only of lowercase a–z.
func IsAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsLetter(s[i]) {
			return false
		}
	}
	return true
}

// IsLetter reports whether c is a lowercase ASCII letter.
func IsLetter(c byte) bool { return c >= 'a' && c <= 'z' }

// idx maps a lowercase ASCII letter to 0..25, anything else to -1.
func idx(c byte) int {
	if !IsLetter(c) {
		return -1
	}
	return int(c - 'a')
}
