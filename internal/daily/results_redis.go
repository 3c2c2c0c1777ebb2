package daily

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisResults keeps each player's results in one hash, field = date.
type RedisResults struct {
	client *redis.Client
	prefix string
}

func NewRedisResults(client *redis.Client, prefix string) *RedisResults {
	return &RedisResults{client: client, prefix: prefix}
}

func (r *RedisResults) Insert(ctx context.Context, res Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return r.client.HSetNX(ctx, r.prefix+res.PlayerID, res.Date, data).Err()
}

func (r *RedisResults) History(ctx context.Context, playerID string) ([]Result, error) {
	m, err := r.client.HGetAll(ctx, r.prefix+playerID).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(m))
	for _, v := range m {
		var res Result
		if err := json.Unmarshal([]byte(v), &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
