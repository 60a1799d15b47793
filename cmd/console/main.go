package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/auth"
	"github.com/Nixie-Tech-LLC/darshan/internal/config"
	"github.com/Nixie-Tech-LLC/darshan/internal/console"
	"github.com/Nixie-Tech-LLC/darshan/internal/directory"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("failed to read .env")
	}
	// the console never issues tokens, so a missing secret is fine here
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("APP_ENV", config.EnvDevelopment)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var authn auth.Authenticator = auth.DemoCredentials()
	switch {
	case cfg.AdminPasswordHash != "":
		authn = auth.HashedCredentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
	case cfg.AdminPassword != "":
		authn = auth.FixedCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	}

	manager := session.NewManager(session.Options{
		Directory:     directory.Builtin(),
		Authenticator: authn,
		Delays: session.Delays{
			Login:  cfg.LoginDelay,
			Status: cfg.StatusDelay,
			Alert:  cfg.AlertDelay,
			Search: cfg.SearchDelay,
		},
		ToastTTL: cfg.ToastDuration,
	})
	defer manager.Close()

	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".darshan_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "darshan> ",
		HistoryFile:     history,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize readline")
	}
	defer rl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	c := console.New(manager, uuid.NewString(), rl)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("console stopped")
	}
}
