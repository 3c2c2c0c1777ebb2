// internal/httpserver/server.go
//
// HTTP server wiring for the daily puzzle.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (player cookie): mounted under /game, plus /stats.
//   - Holding each player's in-progress game between requests.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - Engine calls are serialised by one mutex, so each game is mutated by
//     a single request at a time.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/powerdle/internal/daily"
	"github.com/robalobadob/powerdle/internal/powerup"
	"github.com/robalobadob/powerdle/internal/session"
	"github.com/robalobadob/powerdle/internal/words"
)

// Options are the transport-level settings.
type Options struct {
	StorageKey   string           // prefix of each player's record key
	CookieName   string           // player cookie
	Secret       string           // HS256 key for the player cookie
	ClientOrigin string           // allowed CORS origin
	Secure       bool             // Secure/SameSite=None cookies
	Now          func() time.Time // clock; defaults to time.Now
	MaxGames     int              // cached games before eviction; defaults to DefaultMaxGames
}

// DefaultMaxGames bounds the in-memory game table.
const DefaultMaxGames = 10000

// Server bundles router, engine and the table of active games.
type Server struct {
	r        *chi.Mux
	sessions *session.Store
	powerups *powerup.Engine
	results  daily.Results
	words    *words.List
	opts     Options

	mu    sync.Mutex               // guards games, day and every engine call
	games map[string]*session.Game // active games keyed by player ID
	day   string                   // date key the table was last swept for
}

// New constructs a Server, installs middleware, and registers routes.
func New(sessions *session.Store, powerups *powerup.Engine, results daily.Results, wl *words.List, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StorageKey == "" {
		opts.StorageKey = session.StorageKey
	}
	if opts.MaxGames <= 0 {
		opts.MaxGames = DefaultMaxGames
	}
	if opts.CookieName == "" {
		opts.CookieName = "wordle_player"
	}
	s := &Server{
		r:        chi.NewRouter(),
		sessions: sessions,
		powerups: powerups,
		results:  results,
		words:    wl,
		opts:     opts,
		games:    make(map[string]*session.Game),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"powerdle","endpoints":["/health","GET /game","POST /game/key","POST /game/guess","POST /game/hint","POST /game/skip","POST /game/swap","GET /stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	// Game + stats: player cookie
	s.r.Group(func(r chi.Router) {
		r.Use(s.withPlayer)
		s.mountGame(r)
		r.Get("/stats", s.handleStats)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) now() time.Time { return s.opts.Now() }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}
