package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "memory", c.StoreDriver)
	assert.Equal(t, 6, c.Rows)
	assert.Equal(t, 5, c.Cols)
	assert.Equal(t, 2, c.PowerUps)
	assert.Equal(t, 10000, c.MaxGames)
	assert.Equal(t, 48*time.Hour, c.RedisTTL)
	assert.Equal(t, "wordle_clone_state_v1", c.StorageKey)

	epoch, err := c.Epoch()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), epoch)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("GAME_POWERUPS", "3")
	t.Setenv("DAILY_EPOCH", "2024-06-01")

	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.Equal(t, 3, c.PowerUps)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "bad epoch", key: "DAILY_EPOCH", value: "yesterday"},
		{name: "bad driver", key: "STORE_DRIVER", value: "etcd"},
		{name: "zero rows", key: "GAME_ROWS", value: "0"},
		{name: "not a number", key: "GAME_COLS", value: "five"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
