package session

import (
	"strings"

	"github.com/robalobadob/powerdle/internal/game"
)

// Game is one player's day: the persisted record plus the row being typed.
// A Game is not safe for concurrent use; its owner serialises calls.
type Game struct {
	Key     string       // storage key of the record
	Record  *game.Record // persisted progress
	Buffer  game.Buffer  // in-progress row, never persisted
	Unsaved bool         // last write failed; memory is authoritative
}

// newGame wraps rec with an empty buffer, then puts back the letters hinted
// on the current row since those were paid for.
func newGame(key string, rec *game.Record, cols int) *Game {
	g := &Game{Key: key, Record: rec, Buffer: game.NewBuffer(cols)}
	for _, h := range rec.Powerups.Hints {
		if h.Row == rec.CurrentRow && h.Pos >= 0 && h.Pos < cols && len(h.Letter) == 1 {
			g.Buffer.Put(h.Pos, h.Letter[0])
		}
	}
	return g
}

// Ledger returns a copy of the power-up ledger.
func (g *Game) Ledger() game.Ledger {
	l := g.Record.Powerups
	l.Hints = append([]game.Hint{}, l.Hints...)
	l.Eliminated = append([]string{}, l.Eliminated...)
	return l
}

// Type adds a letter to the buffer, like a key press.
// A full row ignores the key.
func (g *Game) Type(key string) error {
	if g.Record.Finished() {
		return game.ErrGameAlreadyOver
	}
	key = strings.ToLower(key)
	if len(key) != 1 || !game.IsLetter(key[0]) {
		return game.ErrInvalidLetter
	}
	if g.Record.Powerups.IsEliminated(key[0]) {
		return game.ErrLetterEliminated
	}
	g.Buffer.Append(key[0])
	return nil
}

// Backspace removes the right-most letter from the buffer.
func (g *Game) Backspace() error {
	if g.Record.Finished() {
		return game.ErrGameAlreadyOver
	}
	g.Buffer.Backspace()
	return nil
}

// Eliminated returns the first letter of word removed by Skip, if any.
func (g *Game) Eliminated(word string) (byte, bool) {
	for i := 0; i < len(word); i++ {
		if g.Record.Powerups.IsEliminated(word[i]) {
			return word[i], true
		}
	}
	return 0, false
}
