package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conectapg/portal/internal/core/service"
	"github.com/conectapg/portal/internal/gateway"
	"github.com/conectapg/portal/internal/infrastructure/config"
	"github.com/conectapg/portal/internal/infrastructure/session"
	"github.com/conectapg/portal/internal/web"
	"github.com/conectapg/portal/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := session.ConnectRedis(ctx, session.RedisConfig{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	var slot session.Slot = session.NewRedisSlot(rdb)
	if cfg.Session.SealKey != "" {
		slot, err = session.NewSealedSlot(slot, cfg.Session.SealKey)
		if err != nil {
			return err
		}
	} else {
		log.Warn().Msg("SESSION_SEAL_KEY not set, sessions stored unencrypted")
	}

	sessionTTL := time.Duration(cfg.Session.TTLDays) * 24 * time.Hour
	sessions := session.NewStore(slot, sessionTTL, log)

	gw := gateway.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, log)
	incidents := service.NewIncidentService(gw.Incidents, log)
	users := service.NewUserService(gw.Users, log)

	e := web.NewRouter(web.Deps{
		Config:    cfg,
		Sessions:  sessions,
		Incidents: incidents,
		Users:     users,
		Redis:     rdb,
		Gateway:   gw,
		Log:       log,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("portal listening")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
