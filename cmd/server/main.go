// Command server runs the Tarumenyan studio API.
//
// @title                      Tarumenyan Studio API
// @version                    1.0
// @description                Accounts, FAQ, gallery, packages, reviews, chat history and the chatbot proxy for the Tarumenyan photography studio.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/docs"
	"github.com/tarumenyan/studio-backend/internal/auth"
	"github.com/tarumenyan/studio-backend/internal/chatbot"
	"github.com/tarumenyan/studio-backend/internal/config"
	httpapi "github.com/tarumenyan/studio-backend/internal/http"
	"github.com/tarumenyan/studio-backend/internal/observability"
	"github.com/tarumenyan/studio-backend/internal/repo"
	"github.com/tarumenyan/studio-backend/internal/services"
	"github.com/tarumenyan/studio-backend/internal/storage"
	"github.com/tarumenyan/studio-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg)
	if cfg.UsingDefaultSecret() {
		log.Warn().Msg("JWT_SECRET is not set; tokens are signed with the public default secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	db, err := openDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("failed to open database")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	tokens := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Auth.AdminEmail != "" {
		created, err := services.NewAuthService(db, tokens).
			EnsureAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin account")
		}
		if created {
			log.Info().Str("email", cfg.Auth.AdminEmail).Msg("admin account created")
		}
	}

	store, err := openStore(cfg.Upload)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Upload.Backend).Msg("failed to set up upload storage")
	}

	bot := chatbot.New(chatbot.Config{
		URL:       cfg.Chatbot.URL,
		HealthURL: cfg.Chatbot.HealthURL,
		Timeout:   cfg.Chatbot.Timeout,
		Attempts:  cfg.Chatbot.Attempts,
	})
	go bot.Monitor(ctx, cfg.Chatbot.HealthInterval, func(online bool) {
		if online {
			log.Info().Str("url", cfg.Chatbot.URL).Msg("chatbot upstream back online")
			return
		}
		log.Warn().Str("url", cfg.Chatbot.URL).Msg("chatbot upstream offline")
	})

	docs.SwaggerInfo.BasePath = cfg.APIBasePath
	docs.SwaggerInfo.Version = version

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:      db,
		Store:   store,
		Tokens:  tokens,
		Chatbot: bot,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", version).
			Str("db", cfg.DB.Driver).
			Str("uploads", cfg.Upload.Backend).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server stopped")
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("server exited")
}

func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func openDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := cfg.URL
	if cfg.Driver == "sqlite" {
		dsn = cfg.Path
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	db, err := repo.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := repo.Instrument(db); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func openStore(cfg config.UploadConfig) (storage.Store, error) {
	if cfg.Backend == "s3" {
		return storage.NewS3(storage.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			UseSSL:    cfg.S3.UseSSL,
			PublicURL: cfg.S3.PublicURL,
			Prefix:    "uploads",
		})
	}
	return storage.NewLocal(cfg.Dir, cfg.PublicPrefix)
}
