package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/powerdle/internal/daily"
	"github.com/robalobadob/powerdle/internal/game"
	"github.com/robalobadob/powerdle/internal/powerup"
	"github.com/robalobadob/powerdle/internal/session"
	"github.com/robalobadob/powerdle/internal/store"
	"github.com/robalobadob/powerdle/internal/words"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

var testNow = time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	wl := words.New([]string{"crane"}, []string{"slate", "cable", "mound"}, 5)
	st := session.New(store.NewMemory(), wl, daily.NewSelector(daily.DefaultEpoch, wl.Answers()), session.DefaultConfig())
	return New(st, powerup.New(st, firstRand{}), daily.NewMemoryResults(), wl, Options{
		Secret: "test-secret",
		Now:    func() time.Time { return testNow },
	})
}

// client replays the player cookie between requests.
type client struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func (c *client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.srv.Handler().ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "wordle_player" {
			c.cookie = ck
		}
	}
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func (c *client) keys(keys ...string) {
	c.t.Helper()
	for _, k := range keys {
		code, body := c.do(http.MethodPost, "/game/key", `{"key":"`+k+`"}`)
		require.Equal(c.t, http.StatusOK, code, "key %s: %v", k, body)
	}
}

func TestGameFlow(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	code, body := c.do(http.MethodGet, "/game", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, c.cookie)
	assert.Equal(t, "in_progress", body["status"])
	assert.Equal(t, "2022-01-01", body["date"])
	assert.Equal(t, []any{"", "", "", "", ""}, body["buffer"])
	assert.NotContains(t, body, "answer")

	c.keys("s", "l", "a", "t")
	code, body = c.do(http.MethodPost, "/game/key", `{"key":"Enter"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_length", body["error"])

	c.keys("e")
	code, body = c.do(http.MethodPost, "/game/key", `{"key":"Enter"}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["currentRow"])
	assert.Equal(t, "slate", body["guess"].(map[string]any)["word"])

	code, body = c.do(http.MethodPost, "/game/guess", `{"word":"zzzzz"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "not_in_word_list", body["error"])

	code, body = c.do(http.MethodPost, "/game/guess", `{"word":"CRANE"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "won", body["status"])
	assert.Equal(t, "crane", body["answer"])

	code, body = c.do(http.MethodPost, "/game/hint", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "game_over", body["error"])

	code, body = c.do(http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["played"])
	assert.EqualValues(t, 1, body["wins"])
	assert.EqualValues(t, 1, body["currentStreak"])
	assert.Equal(t, []any{0.0, 1.0, 0.0, 0.0, 0.0, 0.0}, body["distribution"])
}

func TestPowerupsOverHTTP(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	code, body := c.do(http.MethodPost, "/game/skip", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "b", body["skipped"])

	code, body = c.do(http.MethodPost, "/game/key", `{"key":"b"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "letter_eliminated", body["error"])

	code, body = c.do(http.MethodPost, "/game/guess", `{"word":"cable"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "letter_eliminated", body["error"])

	code, body = c.do(http.MethodPost, "/game/swap/prepare", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "insufficient_letters", body["error"])

	c.keys("r", "c")
	code, _ = c.do(http.MethodPost, "/game/swap/prepare", "")
	require.Equal(t, http.StatusOK, code)

	code, body = c.do(http.MethodPost, "/game/swap", `{"positions":[0]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_swap", body["error"])

	code, body = c.do(http.MethodPost, "/game/swap", `{"positions":[0,1]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"c", "r", "", "", ""}, body["buffer"])
	led := body["powerups"].(map[string]any)
	assert.EqualValues(t, 0, led["remainingUses"])
	assert.Equal(t, []any{"b"}, led["eliminated"])

	code, body = c.do(http.MethodPost, "/game/hint", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "no_uses_left", body["error"])
}

func TestHintOverHTTP(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	code, body := c.do(http.MethodPost, "/game/hint", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"row": 0.0, "pos": 0.0, "letter": "c"}, body["hint"])
	assert.Equal(t, []any{"c", "", "", "", ""}, body["buffer"])
}

func TestPlayersAreSeparate(t *testing.T) {
	srv := newTestServer(t)
	alice := &client{t: t, srv: srv}
	bob := &client{t: t, srv: srv}

	alice.keys("s", "l")
	_, body := bob.do(http.MethodGet, "/game", "")
	assert.Equal(t, []any{"", "", "", "", ""}, body["buffer"])

	_, body = alice.do(http.MethodGet, "/game", "")
	assert.Equal(t, []any{"s", "l", "", "", ""}, body["buffer"])
	assert.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
}

func TestTamperedCookieStartsOver(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, srv: srv}
	c.keys("s")

	id, err := srv.parsePlayerToken(c.cookie.Value)
	require.NoError(t, err)

	forged := &client{t: t, srv: srv, cookie: &http.Cookie{Name: "wordle_player", Value: c.cookie.Value + "x"}}
	_, body := forged.do(http.MethodGet, "/game", "")
	assert.Equal(t, []any{"", "", "", "", ""}, body["buffer"])

	other, err := srv.parsePlayerToken(forged.cookie.Value)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestNewDayReplacesGame(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, srv: srv}
	_, _ = c.do(http.MethodPost, "/game/guess", `{"word":"slate"}`)

	testNowNext := testNow.Add(24 * time.Hour)
	srv.opts.Now = func() time.Time { return testNowNext }

	_, body := c.do(http.MethodGet, "/game", "")
	assert.Equal(t, "2022-01-02", body["date"])
	assert.EqualValues(t, 0, body["currentRow"])
	assert.EqualValues(t, game.DefaultPowerUps, body["powerups"].(map[string]any)["remainingUses"])
}

func TestNotFound(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	code, body := c.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", body["error"])
}

func TestGuessChecksLengthBeforeEliminated(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	code, body := c.do(http.MethodPost, "/game/skip", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "b", body["skipped"])

	tests := []struct {
		word string
		code string
	}{
		{word: "bq", code: "invalid_length"},
		{word: "bzzzz", code: "not_in_word_list"},
		{word: "cable", code: "letter_eliminated"},
	}
	for _, tt := range tests {
		code, body := c.do(http.MethodPost, "/game/guess", `{"word":"`+tt.word+`"}`)
		assert.Equal(t, http.StatusBadRequest, code, tt.word)
		assert.Equal(t, tt.code, body["error"], tt.word)
	}
}

func TestStaleGamesEvicted(t *testing.T) {
	srv := newTestServer(t)
	alice := &client{t: t, srv: srv}
	bob := &client{t: t, srv: srv}
	alice.keys("s")
	require.Len(t, srv.games, 1)

	next := testNow.Add(24 * time.Hour)
	srv.opts.Now = func() time.Time { return next }

	_, _ = bob.do(http.MethodGet, "/game", "")
	assert.Len(t, srv.games, 1, "yesterday's game is dropped")
	assert.Contains(t, srv.games, srv.mustPlayer(t, bob))
}

func TestGameTableBounded(t *testing.T) {
	srv := newTestServer(t)
	srv.opts.MaxGames = 1
	alice := &client{t: t, srv: srv}
	bob := &client{t: t, srv: srv}

	code, _ := alice.do(http.MethodPost, "/game/guess", `{"word":"slate"}`)
	require.Equal(t, http.StatusOK, code)
	_, _ = bob.do(http.MethodGet, "/game", "")
	assert.Len(t, srv.games, 1)

	_, body := alice.do(http.MethodGet, "/game", "")
	assert.EqualValues(t, 1, body["currentRow"], "evicted game reloads from the store")
	assert.Len(t, srv.games, 1)
}

func (s *Server) mustPlayer(t *testing.T, c *client) string {
	t.Helper()
	id, err := s.parsePlayerToken(c.cookie.Value)
	require.NoError(t, err)
	return id
}
