package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/event-registration/internal/api"
	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/service"
	"github.com/gatherly/event-registration/internal/infrastructure/config"
	"github.com/gatherly/event-registration/internal/infrastructure/db/jsonfile"
	"github.com/gatherly/event-registration/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// The store must be valid before anything else runs; a storage failure
	// here means we must not begin serving traffic.
	store := jsonfile.Open(cfg.DataFile)
	if err := store.Init(context.Background()); err != nil {
		log.Fatal().Err(err).Str("data_file", cfg.DataFile).Msg("dataset initialisation failed")
	}

	if err := seedAccounts(context.Background(), store, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("account seeding failed")
	}

	e := api.NewRouter(store, api.Options{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// seedAccounts creates the default admin and user accounts when absent,
// both flagged for a forced password change on first login.
func seedAccounts(ctx context.Context, store *jsonfile.Store, cfg *config.Config, log zerolog.Logger) error {
	repo := jsonfile.NewUserRepository(store)
	creds := service.NewCredentials(cfg.BcryptCost)
	users := service.NewUserService(repo, creds, cfg.JWTSecret, cfg.TokenTTL)

	seeds := []struct {
		username string
		password string
		role     string
	}{
		{cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, domain.RoleAdmin},
		{cfg.Seed.UserUsername, cfg.Seed.UserPassword, domain.RoleUser},
	}

	for _, seed := range seeds {
		if _, err := repo.FindByUsername(ctx, seed.username); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		if _, err := users.CreateUser(ctx, seed.username, seed.password, seed.role, false); err != nil {
			return err
		}
		log.Info().Str("username", seed.username).Str("role", seed.role).Msg("seeded default account")
	}
	return nil
}
