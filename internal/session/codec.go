package session

import (
	"encoding/json"

	"github.com/robalobadob/powerdle/internal/game"
)

// recordJSON mirrors game.Record with an optional ledger so that blobs
// written before power-ups existed still load.
type recordJSON struct {
	Answer     string             `json:"answer"`
	Date       string             `json:"date"`
	Guesses    []game.GuessRecord `json:"guesses"`
	CurrentRow int                `json:"currentRow"`
	Status     game.Status        `json:"status"`
	Powerups   *game.Ledger       `json:"powerups"`
}

// Decode parses a stored blob and checks it against today's date and answer.
// It reports false for a blob that is malformed, inconsistent or stale;
// the caller then starts a fresh record.
func (s *Store) Decode(blob []byte, date, answer string) (*game.Record, bool) {
	var raw recordJSON
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, false
	}
	if raw.Date != date || raw.Answer != answer {
		return nil, false
	}

	rec := &game.Record{
		Answer:     raw.Answer,
		Date:       raw.Date,
		Guesses:    raw.Guesses,
		CurrentRow: raw.CurrentRow,
		Status:     raw.Status,
	}
	if rec.Guesses == nil {
		rec.Guesses = []game.GuessRecord{}
	}
	if raw.Powerups != nil {
		rec.Powerups = *raw.Powerups
		if rec.Powerups.Hints == nil {
			rec.Powerups.Hints = []game.Hint{}
		}
		if rec.Powerups.Eliminated == nil {
			rec.Powerups.Eliminated = []string{}
		}
	} else {
		rec.Powerups = game.NewLedger(s.cfg.PowerUps)
	}

	if !s.consistent(rec) {
		return nil, false
	}
	return rec, true
}

// consistent checks the record invariants against the configured dimensions.
func (s *Store) consistent(rec *game.Record) bool {
	if len(rec.Answer) != s.cfg.Cols {
		return false
	}
	if rec.CurrentRow != len(rec.Guesses) || rec.CurrentRow > s.cfg.Rows {
		return false
	}

	won := false
	for i, g := range rec.Guesses {
		if !game.ValidWord(g.Word, s.cfg.Cols) || len(g.Verdicts) != s.cfg.Cols {
			return false
		}
		want := game.Evaluate(g.Word, rec.Answer)
		for j := range want {
			if g.Verdicts[j] != want[j] {
				return false
			}
		}
		if game.AllCorrect(want) {
			if i != len(rec.Guesses)-1 {
				return false
			}
			won = true
		}
	}

	switch rec.Status {
	case game.StatusWon:
		if !won {
			return false
		}
	case game.StatusLost:
		if won || rec.CurrentRow < s.cfg.Rows {
			return false
		}
	case game.StatusInProgress:
		if won || rec.CurrentRow >= s.cfg.Rows {
			return false
		}
	default:
		return false
	}

	led := rec.Powerups
	if led.Remaining < 0 || led.Remaining > s.cfg.PowerUps {
		return false
	}
	for _, h := range led.Hints {
		if h.Row < 0 || h.Row >= s.cfg.Rows || h.Pos < 0 || h.Pos >= s.cfg.Cols {
			return false
		}
		if len(h.Letter) != 1 || rec.Answer[h.Pos] != h.Letter[0] {
			return false
		}
	}
	for _, e := range led.Eliminated {
		if len(e) != 1 || !game.IsLetter(e[0]) {
			return false
		}
	}
	return true
}
