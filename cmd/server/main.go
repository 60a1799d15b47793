package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/auth"
	"github.com/Nixie-Tech-LLC/darshan/internal/config"
	"github.com/Nixie-Tech-LLC/darshan/internal/mqtt"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := LoadEnvironment()

	dir := InitDirectory(cfg)
	store, closeStore := InitSessionStore(cfg)
	defer closeStore()

	notifier, closeNotifier := InitNotifier(cfg)
	defer closeNotifier()

	manager := session.NewManager(session.Options{
		Directory:     dir,
		Store:         store,
		Authenticator: InitAuthenticator(cfg),
		Notifier:      notifier,
		Delays: session.Delays{
			Login:  cfg.LoginDelay,
			Status: cfg.StatusDelay,
			Alert:  cfg.AlertDelay,
			Search: cfg.SearchDelay,
		},
		ToastTTL: cfg.ToastDuration,
	})
	defer manager.Close()

	janitor, err := session.StartJanitor(manager, cfg.SweepSchedule, cfg.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("session janitor")
	}
	defer func() { <-janitor.Stop().Done() }()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, manager, LoadTemplates())

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Str("env", cfg.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

// InitAuthenticator picks the admin credential check. Without a configured
// password the demo pair is used and advertised on the login form.
func InitAuthenticator(cfg *config.Config) auth.Authenticator {
	switch {
	case cfg.AdminPasswordHash != "":
		return auth.HashedCredentials{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash}
	case cfg.AdminPassword != "":
		return auth.FixedCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	default:
		if !cfg.Development() {
			log.Warn().Msg("using demo admin credentials")
		}
		return auth.DemoCredentials()
	}
}

// InitNotifier connects to the MQTT broker when one is configured.
func InitNotifier(cfg *config.Config) (session.Notifier, func()) {
	if cfg.MQTTBrokerURL == "" {
		return session.NopNotifier{}, func() {}
	}
	n, err := mqtt.Connect(cfg.MQTTBrokerURL, "darshan-"+uuid.NewString())
	if err != nil {
		log.Fatal().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("mqtt connect")
	}
	log.Info().Str("broker", cfg.MQTTBrokerURL).Msg("publishing toasts over mqtt")
	return n, n.Close
}
