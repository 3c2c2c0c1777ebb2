// internal/httpserver/routes_game.go
//
// HTTP routes for today's game. Endpoints under /game:
//   - GET  /game              → current state (answer revealed once finished)
//   - POST /game/key          → one key press: a letter, "Enter" or "Backspace"
//   - POST /game/guess        → submit a whole word
//   - POST /game/hint         → reveal one letter of the current row
//   - POST /game/skip         → eliminate one absent letter
//   - POST /game/swap/prepare → check that a swap can start
//   - POST /game/swap         → swap two cells of the current row
// and GET /stats for the player's finished days.
//
// Each player has one game per UTC day. Games stay in memory between
// requests; the record is written through to the KV store after every change.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/powerdle/internal/daily"
	"github.com/robalobadob/powerdle/internal/game"
	"github.com/robalobadob/powerdle/internal/session"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Post("/key", s.handleKey)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Post("/skip", s.handleSkip)
		r.Post("/swap/prepare", s.handlePrepareSwap)
		r.Post("/swap", s.handleSwap)
	})
}

// gameView is the state a client needs to render the board.
type gameView struct {
	Date       string             `json:"date"`
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	Status     game.Status        `json:"status"`
	CurrentRow int                `json:"currentRow"`
	Guesses    []game.GuessRecord `json:"guesses"`
	Buffer     []string           `json:"buffer"`
	Powerups   game.Ledger        `json:"powerups"`
	Answer     string             `json:"answer,omitempty"`  // only once finished
	Guess      *game.GuessRecord  `json:"guess,omitempty"`   // the row just scored
	Hint       *game.Hint         `json:"hint,omitempty"`    // the hint just used
	Skipped    string             `json:"skipped,omitempty"` // the letter just eliminated
	Warning    string             `json:"warning,omitempty"` // persistence problem
}

func (s *Server) view(g *session.Game) gameView {
	cfg := s.sessions.Config()
	v := gameView{
		Date:       g.Record.Date,
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		Status:     g.Record.Status,
		CurrentRow: g.Record.CurrentRow,
		Guesses:    g.Record.Guesses,
		Buffer:     g.Buffer.Cells(),
		Powerups:   g.Ledger(),
	}
	if g.Record.Finished() {
		v.Answer = g.Record.Answer
	}
	return v
}

// play runs fn against the player's game under the server lock and writes
// the resulting view. A persistence failure is reported as a warning on an
// otherwise successful response.
func (s *Server) play(w http.ResponseWriter, r *http.Request, fn func(g *session.Game, v *gameView) error) {
	player := playerID(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	g, loadErr := s.gameFor(r, player)
	wasFinished := g.Record.Finished()

	var v gameView
	err := loadErr
	if fn != nil {
		err = fn(g, &v)
	}
	if err != nil && !errors.Is(err, game.ErrPersistenceWriteFailed) {
		writeEngineError(w, err)
		return
	}

	if !wasFinished && g.Record.Finished() {
		s.recordResult(r, player, g)
	}

	out := s.view(g)
	out.Guess, out.Hint, out.Skipped = v.Guess, v.Hint, v.Skipped
	if err != nil || g.Unsaved {
		out.Warning = game.ErrPersistenceWriteFailed.Error()
	}
	_ = json.NewEncoder(w).Encode(out)
}

// gameFor returns the player's game for today, loading it if needed.
// The error, if any, only reports a failed write of a fresh record.
func (s *Server) gameFor(r *http.Request, player string) (*session.Game, error) {
	now := s.now()
	today := daily.DateKey(now)
	if today != s.day {
		s.evictStale(today)
	}
	if g, ok := s.games[player]; ok && g.Record.Date == today {
		return g, nil
	}
	g, err := s.sessions.Load(r.Context(), s.opts.StorageKey+":"+player, now)
	s.makeRoom(player)
	s.games[player] = g
	return g, err
}

// evictStale drops games from earlier days. Called once per day rollover.
func (s *Server) evictStale(today string) {
	n := 0
	for id, g := range s.games {
		if g.Record.Date != today {
			delete(s.games, id)
			n++
		}
	}
	s.day = today
	if n > 0 {
		log.Info().Int("evicted", n).Str("date", today).Msg("dropped stale games")
	}
}

// makeRoom evicts one arbitrary game when the table is full. The record is
// already in the KV store, so an evicted player only loses unsubmitted letters
// that were typed rather than hinted.
func (s *Server) makeRoom(player string) {
	if _, ok := s.games[player]; ok || len(s.games) < s.opts.MaxGames {
		return
	}
	for id := range s.games {
		delete(s.games, id)
		return
	}
}

// recordResult stores a finished day in the results ledger (best effort).
func (s *Server) recordResult(r *http.Request, player string, g *session.Game) {
	res := daily.Result{
		PlayerID:     player,
		Date:         g.Record.Date,
		Answer:       g.Record.Answer,
		Guesses:      len(g.Record.Guesses),
		Won:          g.Record.Status == game.StatusWon,
		PowerupsUsed: s.sessions.Config().PowerUps - g.Record.Powerups.Remaining,
	}
	if err := s.results.Insert(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("player", player).Str("date", res.Date).Msg("insert result")
	}
}

// -----------------------------------------------------------------------------
// handlers

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, nil)
}

type keyReq struct {
	Key string `json:"key"`
}

// handleKey mirrors the on-screen keyboard: letters, Enter and Backspace.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	s.play(w, r, func(g *session.Game, v *gameView) error {
		switch strings.ToLower(req.Key) {
		case "enter":
			gr, err := s.sessions.Submit(r.Context(), g)
			if err == nil || errors.Is(err, game.ErrPersistenceWriteFailed) {
				v.Guess = &gr
			}
			return err
		case "backspace":
			return g.Backspace()
		default:
			return g.Type(req.Key)
		}
	})
}

type guessReq struct {
	Word string `json:"word"`
}

// handleGuess submits a whole word, bypassing the buffer.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	s.play(w, r, func(g *session.Game, v *gameView) error {
		word := strings.ToLower(strings.TrimSpace(req.Word))
		// Eliminated letters only matter once the word passes RecordGuess's own checks.
		if !g.Record.Finished() && len(word) == s.sessions.Config().Cols && game.IsAlpha(word) && s.words.IsAllowed(word) {
			if _, ok := g.Eliminated(word); ok {
				return game.ErrLetterEliminated
			}
		}
		gr, err := s.sessions.RecordGuess(r.Context(), g, word)
		if err == nil || errors.Is(err, game.ErrPersistenceWriteFailed) {
			v.Guess = &gr
		}
		return err
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, func(g *session.Game, v *gameView) error {
		h, err := s.powerups.UseHint(r.Context(), g)
		if err == nil || errors.Is(err, game.ErrPersistenceWriteFailed) {
			v.Hint = &h
		}
		return err
	})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, func(g *session.Game, v *gameView) error {
		letter, err := s.powerups.UseSkip(r.Context(), g)
		v.Skipped = letter
		return err
	})
}

func (s *Server) handlePrepareSwap(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, func(g *session.Game, v *gameView) error {
		return s.powerups.PrepareSwap(g)
	})
}

type swapReq struct {
	Positions []int `json:"positions"`
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	s.play(w, r, func(g *session.Game, v *gameView) error {
		if len(req.Positions) != 2 {
			return game.ErrInvalidSwap
		}
		return s.powerups.ConfirmSwap(r.Context(), g, req.Positions[0], req.Positions[1])
	})
}

// handleStats returns the player's personal statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	player := playerID(r.Context())
	st, err := daily.PlayerStats(r.Context(), s.results, player, s.now(), s.sessions.Config().Rows)
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "server_error", "could not load stats")
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// -----------------------------------------------------------------------------
// errors

// engineErrors maps engine errors to status codes and stable error codes.
var engineErrors = []struct {
	err    error
	status int
	code   string
}{
	{game.ErrInvalidLength, http.StatusBadRequest, "invalid_length"},
	{game.ErrNotInWordList, http.StatusBadRequest, "not_in_word_list"},
	{game.ErrInvalidLetter, http.StatusBadRequest, "invalid_letter"},
	{game.ErrLetterEliminated, http.StatusBadRequest, "letter_eliminated"},
	{game.ErrInvalidSwap, http.StatusBadRequest, "invalid_swap"},
	{game.ErrGameAlreadyOver, http.StatusConflict, "game_over"},
	{game.ErrNoUsesLeft, http.StatusConflict, "no_uses_left"},
	{game.ErrNoEligiblePosition, http.StatusConflict, "no_eligible_position"},
	{game.ErrNoEligibleLetter, http.StatusConflict, "no_eligible_letter"},
	{game.ErrInsufficientLetters, http.StatusConflict, "insufficient_letters"},
}

func writeEngineError(w http.ResponseWriter, err error) {
	for _, e := range engineErrors {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code, e.err.Error())
			return
		}
	}
	log.Error().Err(err).Msg("engine")
	writeError(w, http.StatusInternalServerError, "server_error", "internal error")
}
