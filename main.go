package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/config"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/database"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/handlers"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/logger"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.EnvFileErr != nil {
		log.Debug(".env file not loaded", zap.Error(cfg.EnvFileErr))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.DBName)
	log.Info("MongoDB connected", zap.String("db", db.Name()))

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureAll(startCtx, db); err != nil {
		log.Warn("index setup incomplete", zap.Error(err))
	}

	store.SetPageLimits(cfg.DefaultPageSize, cfg.MaxPageSize)
	handlers.SetQueryTimeout(cfg.QueryTimeout)

	created, err := store.NewAdmins(db).EnsureBootstrap(startCtx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
	switch {
	case err != nil:
		log.Error("bootstrap admin failed", zap.Error(err))
	case created:
		log.Info("bootstrap super admin created", zap.String("userName", cfg.BootstrapAdminUsername))
	}

	resumed, err := store.NewTransfers(db).ResumeTransfers(startCtx)
	if err != nil {
		log.Error("resuming note transfers failed", zap.Error(err))
	} else if resumed > 0 {
		log.Info("resumed note transfers", zap.Int("count", resumed))
	}
	cancel()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           withCORS(setupRouter(db, cfg, log), cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
