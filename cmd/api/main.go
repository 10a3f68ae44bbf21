package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaughan-dsouza/simple-posts/internal/config"
	"github.com/vaughan-dsouza/simple-posts/internal/db"
	"github.com/vaughan-dsouza/simple-posts/internal/events"
	"github.com/vaughan-dsouza/simple-posts/internal/handlers"
	"github.com/vaughan-dsouza/simple-posts/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.LoadAPI()

	postStore, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("open store", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
	}

	h := handlers.NewHandler(postStore, publisher, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Routes(logger, cfg.AllowedOrigins),
	}

	go func() {
		logger.Info("posts api listening", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server exited")
}

func openStore(cfg *config.APIConfig) (store.PostStore, func(), error) {
	if cfg.DBDriver == "memory" {
		return store.NewMemoryStore(), func() {}, nil
	}

	conn, err := db.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store.NewSQLStore(conn), func() { conn.Close() }, nil
}
