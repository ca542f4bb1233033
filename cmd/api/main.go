package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/churchhub/chms-api/docs"
	"github.com/churchhub/chms-api/internal/api"
	"github.com/churchhub/chms-api/internal/core/token"
	"github.com/churchhub/chms-api/internal/infrastructure/config"
	mongodb "github.com/churchhub/chms-api/internal/infrastructure/db/mongo"
	redisdb "github.com/churchhub/chms-api/internal/infrastructure/db/redis"
	"github.com/churchhub/chms-api/internal/infrastructure/email"
	"github.com/churchhub/chms-api/internal/infrastructure/queue"
	"github.com/churchhub/chms-api/internal/infrastructure/storage"
	"github.com/churchhub/chms-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	codec, err := token.NewCodec(cfg.JWTSecret, token.DefaultTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec init failed")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	principals := mongodb.NewPrincipalRepository(db)
	branches := mongodb.NewBranchRepository(db)
	events := mongodb.NewEventRepository(db)
	attendance := mongodb.NewAttendanceRepository(db)
	financial := mongodb.NewFinancialRepository(db)
	notifications := mongodb.NewNotificationRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"principals":    principals.EnsureIndexes,
		"branches":      branches.EnsureIndexes,
		"events":        events.EnsureIndexes,
		"attendance":    attendance.EnsureIndexes,
		"financial":     financial.EnsureIndexes,
		"notifications": notifications.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	blobs, err := storage.NewFilesystemStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init failed")
	}

	dispatcher := queue.NewDispatcher(0, email.NewLogSink(log), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Repos: api.Repositories{
			Principals:    principals,
			Branches:      branches,
			Events:        events,
			Attendance:    attendance,
			Financial:     financial,
			Notifications: notifications,
		},
		Codec:        codec,
		LoginLimiter: redisdb.NewLoginLimiter(rdb),
		Blobs:        blobs,
		Dispatcher:   dispatcher,
		HealthChecks: map[string]func() error{
			"mongo": func() error {
				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return mongoClient.Ping(pingCtx, nil)
			},
			"redis": func() error {
				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return rdb.Ping(pingCtx).Err()
			},
		},
		Log: log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
