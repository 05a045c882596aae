package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mesero/internal/commons"
	"mesero/internal/config"
	"mesero/internal/infrastructure/logger"
	"mesero/internal/infrastructure/sqldb"
	"mesero/internal/menu"
	"mesero/internal/order"
	"mesero/internal/server"
	"mesero/internal/watch"
)

func main() {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := sqldb.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("driver", cfg.Database.Driver))

	hub := watch.NewHub()

	menuModule := menu.NewModule(db, cfg, zapLogger)
	orderModule := order.NewModule(db, hub, zapLogger)

	router := server.NewRouter(menuModule, orderModule, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown failed", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("MESERO_CONFIG"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
