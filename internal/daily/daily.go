// Package daily picks the day's answer and keeps finished-day results.
package daily

import (
	"strings"
	"time"
)

// FallbackAnswer is served when the answer list is empty.
const FallbackAnswer = "panel"

// DefaultEpoch is day zero of the answer rotation.
var DefaultEpoch = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// midnight truncates t to the start of its UTC calendar day.
func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns the whole UTC days from epoch to today; negative before the epoch.
func DaysSince(today, epoch time.Time) int {
	return int(midnight(today).Sub(midnight(epoch)) / day)
}

// WordIndex returns a deterministic index in [0, answersLen) for the date.
func WordIndex(today, epoch time.Time, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	i := DaysSince(today, epoch) % answersLen
	if i < 0 {
		i += answersLen
	}
	return i
}

// Selector chooses the day's answer from a fixed list.
type Selector struct {
	Epoch   time.Time
	Answers []string
}

// NewSelector returns a Selector over answers; a zero epoch means DefaultEpoch.
func NewSelector(epoch time.Time, answers []string) *Selector {
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	return &Selector{Epoch: epoch, Answers: answers}
}

// Answer returns the answer for today's UTC calendar day.
func (s *Selector) Answer(today time.Time) string {
	if len(s.Answers) == 0 {
		return FallbackAnswer
	}
	return strings.ToLower(s.Answers[WordIndex(today, s.Epoch, len(s.Answers))])
}

// SelectAnswer picks today's word from answers using DefaultEpoch.
func SelectAnswer(today time.Time, answers []string) string {
	return NewSelector(DefaultEpoch, answers).Answer(today)
}
