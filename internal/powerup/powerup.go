// internal/powerup/powerup.go
//
// Power-ups for the daily puzzle. All three draw from one daily budget.
//   - Hint: reveal the answer letter at one unsolved position of the current row.
//   - Skip: eliminate one letter that is not in the answer.
//   - Swap: exchange two filled cells of the current row.
//
// A use is consumed only when the power-up takes effect; "nothing to
// reveal/eliminate" outcomes leave the budget alone.
package powerup

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/powerdle/internal/game"
	"github.com/robalobadob/powerdle/internal/session"
)

// Rand picks an index in [0, n).
type Rand interface {
	IntN(n int) int
}

// Persister writes a game through to storage.
type Persister interface {
	Persist(ctx context.Context, g *session.Game) error
}

// Engine applies power-ups to a session.Game.
type Engine struct {
	store Persister
	rand  Rand
}

// New constructs an Engine. A nil r uses crypto/rand.
func New(store Persister, r Rand) *Engine {
	if r == nil {
		r = CryptoRand{}
	}
	return &Engine{store: store, rand: r}
}

// CryptoRand is a Rand backed by crypto/rand. Reader overrides rand.Reader.
type CryptoRand struct {
	Reader io.Reader
}

// IntN falls back to 0 when the reader fails, so a power-up still resolves.
func (c CryptoRand) IntN(n int) int {
	src := c.Reader
	if src == nil {
		src = rand.Reader
	}
	v, err := rand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		log.Warn().Err(err).Int("n", n).Msg("random pick failed, using index 0")
		return 0
	}
	return int(v.Int64())
}

// ready checks the preconditions shared by every power-up.
func ready(g *session.Game) error {
	if g.Record.Finished() {
		return game.ErrGameNotInProgress
	}
	if g.Record.Powerups.Remaining <= 0 {
		return game.ErrNoUsesLeft
	}
	return nil
}

// spend consumes one use and writes the record through.
func (e *Engine) spend(ctx context.Context, g *session.Game) error {
	g.Record.Powerups.Remaining--
	return e.store.Persist(ctx, g)
}

// HintPositions lists the current-row positions a hint may reveal.
// Excluded: positions correct in a prior guess, positions already hinted in
// this row, and positions where the buffer already holds the answer letter.
func HintPositions(g *session.Game) []int {
	rec := g.Record
	solved := rec.CorrectPositions()
	hinted := make(map[int]bool)
	for _, h := range rec.Powerups.Hints {
		if h.Row == rec.CurrentRow {
			hinted[h.Pos] = true
		}
	}
	var out []int
	for i := 0; i < len(rec.Answer) && i < len(g.Buffer); i++ {
		if solved[i] || hinted[i] || g.Buffer[i] == rec.Answer[i] {
			continue
		}
		out = append(out, i)
	}
	return out
}

// UseHint reveals one answer letter in the current row.
// The letter is written into the buffer, overwriting what was there.
func (e *Engine) UseHint(ctx context.Context, g *session.Game) (game.Hint, error) {
	if err := ready(g); err != nil {
		return game.Hint{}, err
	}
	cands := HintPositions(g)
	if len(cands) == 0 {
		return game.Hint{}, game.ErrNoEligiblePosition
	}

	rec := g.Record
	pos := cands[e.rand.IntN(len(cands))]
	h := game.Hint{Row: rec.CurrentRow, Pos: pos, Letter: string(rec.Answer[pos])}
	g.Buffer.Put(pos, rec.Answer[pos])
	rec.Powerups.Hints = append(rec.Powerups.Hints, h)

	log.Debug().Str("key", g.Key).Int("row", h.Row).Int("pos", h.Pos).Msg("hint used")
	return h, e.spend(ctx, g)
}

// SkipLetters lists the letters Skip may eliminate: not in the answer, not
// already eliminated, and never scored in a prior guess.
func SkipLetters(g *session.Game) []byte {
	rec := g.Record
	inAnswer := make(map[byte]bool)
	for i := 0; i < len(rec.Answer); i++ {
		inAnswer[rec.Answer[i]] = true
	}
	known := rec.KnownLetters()

	var out []byte
	for ch := byte('a'); ch <= 'z'; ch++ {
		if inAnswer[ch] || known[ch] || rec.Powerups.IsEliminated(ch) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// UseSkip eliminates one letter that is absent from the answer.
func (e *Engine) UseSkip(ctx context.Context, g *session.Game) (string, error) {
	if err := ready(g); err != nil {
		return "", err
	}
	cands := SkipLetters(g)
	if len(cands) == 0 {
		return "", game.ErrNoEligibleLetter
	}

	letter := string(cands[e.rand.IntN(len(cands))])
	g.Record.Powerups.Eliminated = append(g.Record.Powerups.Eliminated, letter)

	log.Debug().Str("key", g.Key).Str("letter", letter).Msg("skip used")
	return letter, e.spend(ctx, g)
}

// PrepareSwap checks that a swap can start: the game is running, a use is
// left and at least two cells of the current row hold letters.
func (e *Engine) PrepareSwap(g *session.Game) error {
	if err := ready(g); err != nil {
		return err
	}
	if g.Buffer.Filled() < 2 {
		return game.ErrInsufficientLetters
	}
	return nil
}

// ConfirmSwap exchanges the letters at positions a and b of the current row.
// Hints and eliminated letters are not touched.
func (e *Engine) ConfirmSwap(ctx context.Context, g *session.Game, a, b int) error {
	if err := e.PrepareSwap(g); err != nil {
		return err
	}
	n := len(g.Buffer)
	if a == b || a < 0 || b < 0 || a >= n || b >= n {
		return game.ErrInvalidSwap
	}
	if g.Buffer[a] == 0 || g.Buffer[b] == 0 {
		return game.ErrInvalidSwap
	}

	g.Buffer[a], g.Buffer[b] = g.Buffer[b], g.Buffer[a]

	log.Debug().Str("key", g.Key).Int("a", a).Int("b", b).Msg("swap used")
	return e.spend(ctx, g)
}
