package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/adapters/events"
	router "github.com/dkeye/Huddle/internal/adapters/http"
	"github.com/dkeye/Huddle/internal/adapters/rtc"
	"github.com/dkeye/Huddle/internal/adapters/store"
	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/app/orch"
	"github.com/dkeye/Huddle/internal/config"
	"github.com/dkeye/Huddle/internal/core"
)

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Mode == "release" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Console output until config decides otherwise.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	ice := rtc.FromConfig(cfg.ICE.Servers)
	if err := rtc.Validate(ice); err != nil {
		log.Fatal().Err(err).Msg("bad ice servers")
	}

	// Persistence and the event stream are optional; the relay runs without them.
	repo, closeRepo, err := store.Open(ctx, cfg.Repository)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Repository.Driver).Msg("room repository unavailable, continuing without it")
		repo, closeRepo = nil, func() {}
	}
	defer closeRepo()

	var publisher core.EventPublisher
	if cfg.Events.NATSURL != "" {
		conn, err := events.Connect(cfg.Events.NATSURL)
		if err != nil {
			log.Error().Err(err).Msg("event stream unavailable, continuing without it")
		} else {
			defer conn.Close()
			publisher = events.NewNATSPublisher(conn, cfg.Events.SubjectPrefix)
		}
	}

	var mirror *app.Mirror
	if repo != nil || publisher != nil {
		mirror = app.NewMirror(repo, publisher, cfg.Repository.QueueSize)
	}

	rooms := app.NewRoomManager(app.RoomManagerConfig{
		Generate:    app.RandomCodes(cfg.Room.CodeLength, cfg.Room.CodeAlphabet),
		MaxAttempts: cfg.Room.CodeMaxAttempts,
	})
	o := orch.New(orch.Options{
		Rooms:  rooms,
		Policy: app.SimplePolicy{},
		Mirror: mirror,
		Limits: orch.Limits{
			MaxDisplayName: cfg.Room.MaxDisplayName,
			MaxMessageLen:  cfg.Room.MaxMessageLen,
		},
	})

	r := router.SetupRouter(ctx, cfg, o, ice)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Huddle server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	mirror.Close()
	log.Info().Msg("Server exited gracefully")
}
