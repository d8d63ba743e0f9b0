package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/hex/backend/internal/config"
	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/repository/redis"
	"github.com/iamasit07/hex/backend/internal/service/bot"
	"github.com/iamasit07/hex/backend/internal/service/cleanup"
	"github.com/iamasit07/hex/backend/internal/service/game"
	transportHttp "github.com/iamasit07/hex/backend/internal/transport/http"
	"github.com/iamasit07/hex/backend/internal/transport/websocket"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		PadLevelText:  true,
	})

	// 1. Configuration
	config.LoadEnvFiles()
	cfg := config.LoadConfig()
	logrus.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Best-move cache, optional
	var cache game.MoveCache
	if client := redis.Connect(ctx, redis.Options{Addr: cfg.RedisURL, Password: cfg.RedisPassword}); client != nil {
		redisCache := redis.NewRedisCache(client)
		defer redisCache.Close()
		cache = redisCache
	}

	// 3. Services
	gameService := game.NewService(cache, cfg.CacheTTL, cfg.SearchMaxDepth)
	sessionManager := game.NewSessionManager(gameService)

	defaults := game.DefaultSettings()
	defaults.Size = cfg.BoardSize
	defaults.Search = bot.SearchConfig{Depth: cfg.SearchDepth, UsePruning: cfg.SearchPruning}
	if err := gameService.CheckConfig(defaults.Search); err != nil {
		logrus.Fatalf("invalid default search configuration: %v", err)
	}
	if defaults.Size < domain.MinSize || defaults.Size > domain.MaxSize {
		logrus.Fatalf("invalid BOARD_SIZE %d", defaults.Size)
	}

	// 4. Background workers
	cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionMaxAge).Start(ctx)

	// 5. Transport
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), sessionManager, cfg.JWTSecret, cfg.BotDelay)
	router := transportHttp.NewServer(transportHttp.ServerOptions{
		Sessions:       sessionManager,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Defaults: transportHttp.Defaults{
			Settings: defaults,
			TokenTTL: cfg.SessionTokenTTL,
		},
		WebSocket:   wsHandler,
		Connections: wsHandler.ConnManager.Count,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited gracefully")
}
