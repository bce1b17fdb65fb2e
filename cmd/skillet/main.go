package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skilletapp/skillet/internal/backup"
	"github.com/skilletapp/skillet/internal/cache"
	"github.com/skilletapp/skillet/internal/config"
	"github.com/skilletapp/skillet/internal/database"
	"github.com/skilletapp/skillet/internal/logging"
	"github.com/skilletapp/skillet/internal/recommend"
	"github.com/skilletapp/skillet/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis when configured, in-process cache otherwise.
	var recCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		recCache = redisCache
		logger.Info("using redis cache", "addr", cfg.RedisAddr)
	} else {
		mem := cache.NewMemory()
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					mem.Cleanup()
				}
			}
		}()
		recCache = mem
	}

	var providers []recommend.Provider
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, recommend.NewAnthropic(cfg.AnthropicAPIKey))
	}
	if cfg.PerplexityAPIKey != "" {
		providers = append(providers, recommend.NewPerplexity(cfg.PerplexityAPIKey))
	}
	if cfg.GroqAPIKey != "" {
		providers = append(providers, recommend.NewGroq(cfg.GroqAPIKey))
	}
	if len(providers) == 0 {
		logger.Warn("no recommendation provider API keys configured")
	}
	recSvc := recommend.NewService(providers, recCache, logger)

	srv := server.New(db, server.Config{
		JWTSecret:       cfg.JWTSecret,
		VAPIDPublicKey:  cfg.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.VAPIDPrivateKey,
		Backup: backup.Config{
			S3: backup.S3Config{
				Endpoint:  cfg.S3Endpoint,
				Bucket:    cfg.S3Bucket,
				Region:    cfg.S3Region,
				AccessKey: cfg.S3AccessKey,
				SecretKey: cfg.S3SecretKey,
			},
			DBPath:        cfg.DBPath,
			RetentionDays: cfg.BackupRetentionDays,
		},
	}, recSvc, logger)

	srv.BackupManager().Start(ctx)
	defer srv.BackupManager().Stop()

	if sched := srv.PushScheduler(); sched != nil {
		sched.Start(ctx)
		defer sched.Stop()
	}

	// Expired rate-limit buckets accumulate without periodic cleanup.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Skillet running at http://localhost:%s\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
