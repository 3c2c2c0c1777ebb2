// internal/session/session.go
//
// Game State Store for the daily puzzle.
// Responsibilities:
//   - Load today's record from the KV store, or start a fresh one.
//   - Validate and apply guesses (length, word list), scoring each one.
//   - Track state transitions: in_progress → won/lost.
//   - Write the record through to the KV store after every mutation.
//
// A failed write never rolls back the in-memory record: the Game keeps
// working from memory and the next mutation tries the write again.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/powerdle/internal/daily"
	"github.com/robalobadob/powerdle/internal/game"
	"github.com/robalobadob/powerdle/internal/store"
	"github.com/robalobadob/powerdle/internal/words"
)

// StorageKey is the default key of the persisted record.
const StorageKey = "wordle_clone_state_v1"

// Config fixes the game dimensions and power-up budget.
type Config struct {
	Rows     int
	Cols     int
	PowerUps int
}

// DefaultConfig is the classic 6x5 board with two power-ups.
func DefaultConfig() Config {
	return Config{Rows: game.DefaultRows, Cols: game.DefaultCols, PowerUps: game.DefaultPowerUps}
}

// Store loads, mutates and persists day records.
type Store struct {
	kv       store.KV
	words    *words.List
	selector *daily.Selector
	cfg      Config
}

// New constructs a Store. Zero config fields fall back to DefaultConfig.
func New(kv store.KV, wl *words.List, sel *daily.Selector, cfg Config) *Store {
	def := DefaultConfig()
	if cfg.Rows <= 0 {
		cfg.Rows = def.Rows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = def.Cols
	}
	if cfg.PowerUps < 0 {
		cfg.PowerUps = def.PowerUps
	}
	return &Store{kv: kv, words: wl, selector: sel, cfg: cfg}
}

// Config returns the effective configuration.
func (s *Store) Config() Config { return s.cfg }

// Load returns today's game stored under key.
//
// A missing, unreadable, malformed or stale blob is replaced by a fresh
// record, which is persisted immediately. The returned Game is always
// usable; a non-nil error wraps game.ErrPersistenceWriteFailed.
func (s *Store) Load(ctx context.Context, key string, today time.Time) (*Game, error) {
	date := daily.DateKey(today)
	answer := s.selector.Answer(today)

	blob, err := s.kv.Get(ctx, key)
	switch {
	case err == nil:
		if rec, ok := s.Decode(blob, date, answer); ok {
			return newGame(key, rec, s.cfg.Cols), nil
		}
		log.Info().Str("key", key).Str("date", date).Msg("discarding stored record")
	case errors.Is(err, store.ErrNotFound):
	default:
		log.Warn().Err(err).Str("key", key).Msg("read stored record")
	}

	g := newGame(key, game.NewRecord(date, answer, s.cfg.PowerUps), s.cfg.Cols)
	return g, s.Persist(ctx, g)
}

// RecordGuess validates, scores and appends word to the game.
//
// Validation order: game over, length, word list. A rejected guess leaves
// the game untouched. On success the buffer is cleared and the record is
// persisted; a persistence error is returned alongside the applied guess.
func (s *Store) RecordGuess(ctx context.Context, g *Game, word string) (game.GuessRecord, error) {
	rec := g.Record
	if rec.Finished() {
		return game.GuessRecord{}, game.ErrGameAlreadyOver
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != s.cfg.Cols {
		return game.GuessRecord{}, game.ErrInvalidLength
	}
	if !game.IsAlpha(word) || !s.words.IsAllowed(word) {
		return game.GuessRecord{}, game.ErrNotInWordList
	}

	gr := game.GuessRecord{Word: word, Verdicts: game.Evaluate(word, rec.Answer)}
	rec.Guesses = append(rec.Guesses, gr)
	rec.CurrentRow = len(rec.Guesses)

	if game.AllCorrect(gr.Verdicts) {
		rec.Status = game.StatusWon
	} else if rec.CurrentRow >= s.cfg.Rows {
		rec.Status = game.StatusLost
	}
	g.Buffer.Clear()

	return gr, s.Persist(ctx, g)
}

// Submit records the buffer contents as the next guess.
func (s *Store) Submit(ctx context.Context, g *Game) (game.GuessRecord, error) {
	if g.Record.Finished() {
		return game.GuessRecord{}, game.ErrGameAlreadyOver
	}
	if !g.Buffer.Full() {
		return game.GuessRecord{}, game.ErrInvalidLength
	}
	return s.RecordGuess(ctx, g, g.Buffer.String())
}

// Persist writes the full record under the game's key.
func (s *Store) Persist(ctx context.Context, g *Game) error {
	blob, err := json.Marshal(g.Record)
	if err == nil {
		err = s.kv.Set(ctx, g.Key, blob)
	}
	if err != nil {
		g.Unsaved = true
		log.Warn().Err(err).Str("key", g.Key).Str("date", g.Record.Date).Msg("persist record")
		return fmt.Errorf("%w: %v", game.ErrPersistenceWriteFailed, err)
	}
	g.Unsaved = false
	return nil
}
