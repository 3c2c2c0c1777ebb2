package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/powerdle/internal/config"
	"github.com/robalobadob/powerdle/internal/daily"
	"github.com/robalobadob/powerdle/internal/httpserver"
	"github.com/robalobadob/powerdle/internal/powerup"
	"github.com/robalobadob/powerdle/internal/session"
	"github.com/robalobadob/powerdle/internal/store"
	"github.com/robalobadob/powerdle/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	wl, err := words.Load(cfg.AnswersFile, cfg.ValidFile, cfg.Cols)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	a, g := wl.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	kv, results, closeFn, err := openStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open storage")
	}
	defer closeFn()

	epoch, _ := cfg.Epoch()
	sessions := session.New(kv, wl, daily.NewSelector(epoch, wl.Answers()), session.Config{
		Rows:     cfg.Rows,
		Cols:     cfg.Cols,
		PowerUps: cfg.PowerUps,
	})
	srv := httpserver.New(sessions, powerup.New(sessions, nil), results, wl, httpserver.Options{
		StorageKey:   cfg.StorageKey,
		CookieName:   cfg.CookieName,
		Secret:       cfg.PlayerSecret,
		ClientOrigin: cfg.ClientOrigin,
		Secure:       cfg.Production,
		MaxGames:     cfg.MaxGames,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStorage builds the KV store and results ledger for the configured driver.
func openStorage(cfg config.Config) (store.KV, daily.Results, func(), error) {
	switch cfg.StoreDriver {
	case "sqlite":
		db, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewSQLite(db), daily.NewStore(db), func() { closeDB(db) }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		kv := store.NewRedis(client, "powerdle:state:", cfg.RedisTTL)
		return kv, daily.NewRedisResults(client, "powerdle:results:"), func() { _ = client.Close() }, nil
	default:
		return store.NewMemory(), daily.NewMemoryResults(), func() {}, nil
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}
