// internal/game/types.go
//
// Core type definitions for the daily puzzle engine.
// Defines:
//   - Verdict: per-letter result of a guess (correct/present/absent).
//   - GuessRecord: one submitted row and its verdicts.
//   - Ledger: power-up budget, revealed hints and eliminated letters.
//   - Record: one calendar day of progress (the persisted blob).
//   - Buffer: the in-progress row the player is typing into.

package game

// Verdict represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the answer at this position.
//   - "present": letter exists in the answer at another position.
//   - "absent":  no unmatched copy of the letter is left in the answer.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

// Status is the coarse lifecycle state of a day's game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Default game dimensions and budget.
const (
	DefaultRows     = 6
	DefaultCols     = 5
	DefaultPowerUps = 2
)

// GuessRecord is a submitted guess together with its verdicts.
type GuessRecord struct {
	Word     string    `json:"word"`
	Verdicts []Verdict `json:"verdicts"`
}

// Hint is a letter revealed by the Hint power-up.
type Hint struct {
	Row    int    `json:"row"`
	Pos    int    `json:"pos"`
	Letter string `json:"letter"`
}

// Ledger tracks power-up usage for the day.
type Ledger struct {
	Remaining  int      `json:"remainingUses"`
	Hints      []Hint   `json:"hints"`
	Eliminated []string `json:"eliminated"`
}

// NewLedger returns an unused ledger with the given budget.
func NewLedger(budget int) Ledger {
	return Ledger{
		Remaining:  budget,
		Hints:      []Hint{},
		Eliminated: []string{},
	}
}

// IsEliminated reports whether letter was removed by Skip.
func (l *Ledger) IsEliminated(letter byte) bool {
	for _, e := range l.Eliminated {
		if len(e) == 1 && e[0] == letter {
			return true
		}
	}
	return false
}

// Record holds one calendar day of progress for a player.
type Record struct {
	Answer     string        `json:"answer"`     // The day's solution (lowercase).
	Date       string        `json:"date"`       // UTC day key, YYYY-MM-DD.
	Guesses    []GuessRecord `json:"guesses"`    // Append-only history.
	CurrentRow int           `json:"currentRow"` // Index of the next empty row.
	Status     Status        `json:"status"`
	Powerups   Ledger        `json:"powerups"`
}

// NewRecord constructs a fresh in-progress record.
func NewRecord(date, answer string, budget int) *Record {
	return &Record{
		Answer:   answer,
		Date:     date,
		Guesses:  []GuessRecord{},
		Status:   StatusInProgress,
		Powerups: NewLedger(budget),
	}
}

// Finished reports whether the game no longer accepts moves.
func (r *Record) Finished() bool { return r.Status != StatusInProgress }

// CorrectPositions returns the set of positions marked correct in any prior guess.
func (r *Record) CorrectPositions() map[int]bool {
	out := make(map[int]bool)
	for _, g := range r.Guesses {
		for i, v := range g.Verdicts {
			if v == VerdictCorrect {
				out[i] = true
			}
		}
	}
	return out
}

// KnownLetters returns every letter that has received a verdict in a prior guess.
func (r *Record) KnownLetters() map[byte]bool {
	out := make(map[byte]bool)
	for _, g := range r.Guesses {
		for i := 0; i < len(g.Word); i++ {
			out[g.Word[i]] = true
		}
	}
	return out
}
