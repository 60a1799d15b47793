package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/config"
	"github.com/Nixie-Tech-LLC/darshan/internal/db"
	"github.com/Nixie-Tech-LLC/darshan/internal/directory"
	"github.com/Nixie-Tech-LLC/darshan/internal/redis"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

// InitDirectory loads the temple dataset once: the bundled records, or a SQL
// database seeded with them when it is empty.
func InitDirectory(cfg *config.Config) *directory.Directory {
	if cfg.DirectoryDriver == "" {
		log.Info().Msg("using builtin temple directory")
		return directory.Builtin()
	}

	conn, err := db.Init(cfg.DirectoryDriver, cfg.DirectoryDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := db.NewStore(conn)
	if cfg.DirectorySeed {
		if _, err := store.SeedTemples(ctx, directory.BuiltinTemples()); err != nil {
			log.Fatal().Err(err).Msg("seed temples")
		}
	}
	records, err := store.ListTemples(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load temples")
	}
	dir, err := directory.New(records)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid temple directory")
	}
	log.Info().Int("temples", dir.Len()).Str("driver", cfg.DirectoryDriver).Msg("loaded temple directory")
	return dir
}

// InitSessionStore selects redis when configured, memory otherwise. The
// returned cleanup closes whatever was opened.
func InitSessionStore(cfg *config.Config) (session.Store, func()) {
	if cfg.RedisAddress == "" {
		log.Info().Dur("ttl", cfg.SessionTTL).Msg("using in-memory session store")
		return session.NewMemoryStore(cfg.SessionTTL), func() {}
	}

	rdb := redis.NewClient(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	store := redis.NewSessionStore(rdb, cfg.SessionTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("address", cfg.RedisAddress).Msg("redis init")
	}
	log.Info().Str("address", cfg.RedisAddress).Msg("using redis session store")
	return store, func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis")
		}
	}
}
