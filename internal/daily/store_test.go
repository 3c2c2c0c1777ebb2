package daily

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/powerdle/internal/store"
)

func exerciseResults(t *testing.T, res Results) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, res.Insert(ctx, Result{PlayerID: "p1", Date: "2024-03-02", Answer: "slate", Guesses: 6, Won: false}))
	require.NoError(t, res.Insert(ctx, Result{PlayerID: "p1", Date: "2024-03-01", Answer: "crane", Guesses: 3, Won: true, PowerupsUsed: 1}))
	require.NoError(t, res.Insert(ctx, Result{PlayerID: "p1", Date: "2024-03-01", Answer: "crane", Guesses: 6, Won: false}), "duplicate day is ignored")
	require.NoError(t, res.Insert(ctx, Result{PlayerID: "p2", Date: "2024-03-01", Answer: "crane", Guesses: 1, Won: true}))

	hist, err := res.History(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "2024-03-01", hist[0].Date)
	assert.True(t, hist[0].Won)
	assert.Equal(t, 3, hist[0].Guesses)
	assert.Equal(t, 1, hist[0].PowerupsUsed)
	assert.Equal(t, "2024-03-02", hist[1].Date)

	hist, err = res.History(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestMemoryResults(t *testing.T) {
	exerciseResults(t, NewMemoryResults())
}

func TestSQLiteResults(t *testing.T) {
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exerciseResults(t, NewStore(db))
}

func TestRedisResults(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	prefix := "test:" + t.Name() + ":"
	t.Cleanup(func() { client.Del(context.Background(), prefix+"p1", prefix+"p2") })

	exerciseResults(t, NewRedisResults(client, prefix))
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Date: "2024-03-01", Won: true, Guesses: 4},
		{Date: "2024-03-02", Won: true, Guesses: 3},
		{Date: "2024-03-03", Won: true, Guesses: 3},
		{Date: "2024-03-04", Won: false, Guesses: 6},
		{Date: "2024-03-06", Won: true, Guesses: 2},
		{Date: "2024-03-07", Won: true, Guesses: 5},
	}

	st := Summarize(results, date(2024, 3, 8), 6)
	assert.Equal(t, 6, st.Played)
	assert.Equal(t, 5, st.Wins)
	assert.Equal(t, 83, st.WinPct)
	assert.Equal(t, 3, st.MaxStreak)
	assert.Equal(t, 2, st.CurrentStreak)
	assert.Equal(t, []int{0, 1, 2, 1, 1, 0}, st.Distribution)

	st = Summarize(results, date(2024, 3, 10), 6)
	assert.Equal(t, 0, st.CurrentStreak, "streak lapses after a missed day")

	st = Summarize(results[:4], date(2024, 3, 4), 6)
	assert.Equal(t, 0, st.CurrentStreak, "a loss ends the streak")
	assert.Equal(t, 3, st.MaxStreak)

	st = Summarize(nil, date(2024, 3, 4), 6)
	assert.Equal(t, Stats{Distribution: make([]int, 6)}, st)
}
