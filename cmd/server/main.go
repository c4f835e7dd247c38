package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/membersys/account-service/internal/api"
	"github.com/membersys/account-service/internal/infrastructure/config"
	mongodb "github.com/membersys/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/membersys/account-service/internal/infrastructure/db/redis"
	"github.com/membersys/account-service/internal/infrastructure/mail"
	"github.com/membersys/account-service/internal/infrastructure/queue"
	"github.com/membersys/account-service/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not configured yet; write straight to stderr.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account indexes failed")
	}
	if err := mongodb.NewTokenRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("token indexes failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp setup failed")
	}

	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mailer, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:            db,
		Redis:         rdb,
		Mail:          dispatcher,
		HashSecret:    cfg.HashSecret,
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
		BaseURL:       cfg.BaseURL,
		Log:           log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("account service listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
