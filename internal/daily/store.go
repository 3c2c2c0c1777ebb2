package daily

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"
)

// Result is one player's finished day.
type Result struct {
	PlayerID     string `json:"playerId"`
	Date         string `json:"date"`
	Answer       string `json:"answer"`
	Guesses      int    `json:"guesses"`
	Won          bool   `json:"won"`
	PowerupsUsed int    `json:"powerupsUsed"`
}

// Results keeps finished days, at most one row per player and date.
type Results interface {
	// Insert records r; a second result for the same player and date is ignored.
	Insert(ctx context.Context, r Result) error
	// History returns the player's results ordered by date.
	History(ctx context.Context, playerID string) ([]Result, error)
}

// Store is the SQLite-backed Results implementation.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, answer, guesses, won, powerups_used)
VALUES(?,?,?,?,?,?)`, r.PlayerID, r.Date, r.Answer, r.Guesses, r.Won, r.PowerupsUsed,
	)
	return err
}

func (s *Store) History(ctx context.Context, playerID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, date, answer, guesses, won, powerups_used
FROM daily_results
WHERE player_id=?
ORDER BY date ASC`, playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.PlayerID, &r.Date, &r.Answer, &r.Guesses, &r.Won, &r.PowerupsUsed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MemoryResults keeps results in a map; used when no database is configured.
type MemoryResults struct {
	mu   sync.RWMutex
	rows map[string]map[string]Result // player -> date -> result
}

func NewMemoryResults() *MemoryResults {
	return &MemoryResults{rows: make(map[string]map[string]Result)}
}

func (m *MemoryResults) Insert(ctx context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	days, ok := m.rows[r.PlayerID]
	if !ok {
		days = make(map[string]Result)
		m.rows[r.PlayerID] = days
	}
	if _, dup := days[r.Date]; !dup {
		days[r.Date] = r
	}
	return nil
}

func (m *MemoryResults) History(ctx context.Context, playerID string) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Result, 0, len(m.rows[playerID]))
	for _, r := range m.rows[playerID] {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Stats summarises a player's history.
type Stats struct {
	Played        int   `json:"played"`
	Wins          int   `json:"wins"`
	WinPct        int   `json:"winPct"`
	CurrentStreak int   `json:"currentStreak"`
	MaxStreak     int   `json:"maxStreak"`
	Distribution  []int `json:"distribution"` // wins by guess count, index 0 = one guess
}

// Summarize computes Stats from date-ordered results.
// The current streak only counts if the latest win is today or yesterday.
func Summarize(results []Result, today time.Time, rows int) Stats {
	st := Stats{Distribution: make([]int, rows)}
	var (
		run     int
		prevDay time.Time
		lastWin time.Time
	)
	for _, r := range results {
		st.Played++
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		if !r.Won {
			run = 0
			prevDay = d
			continue
		}
		st.Wins++
		if r.Guesses >= 1 && r.Guesses <= rows {
			st.Distribution[r.Guesses-1]++
		}
		if run > 0 && d.Sub(prevDay) == day {
			run++
		} else {
			run = 1
		}
		if run > st.MaxStreak {
			st.MaxStreak = run
		}
		prevDay, lastWin = d, d
	}
	if st.Played > 0 {
		st.WinPct = st.Wins * 100 / st.Played
	}
	if !lastWin.IsZero() && lastWin.Equal(prevDay) && DaysSince(today, lastWin) <= 1 {
		st.CurrentStreak = run
	}
	return st
}

// PlayerStats loads a player's history and summarises it.
func PlayerStats(ctx context.Context, res Results, playerID string, today time.Time, rows int) (Stats, error) {
	hist, err := res.History(ctx, playerID)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(hist, today, rows), nil
}
