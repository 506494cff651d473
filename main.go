package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"konnection/backend/internal/api"
	"konnection/backend/internal/cache"
	"konnection/backend/internal/config"
	"konnection/backend/internal/db"
	"konnection/backend/internal/geo"
	"konnection/backend/internal/logger"
	"konnection/backend/internal/storage"
	"konnection/backend/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'img' (image processing), 'all' (default)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	mongoClient, mongoDb, err := db.Connect(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := db.Disconnect(mongoClient); err != nil {
			zlog.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			zlog.Error("error disconnecting from Redis", zap.Error(err))
		}
	}()

	store, err := storage.NewS3ImageStorage(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize image storage", zap.Error(err))
	}

	geocoder := geo.NewVWorldGeocoder(cfg.GeoApiBaseURL, cfg.GeoApiKey, zlog)
	taskClient := tasks.NewClient(redisClient)
	defer taskClient.Close()

	var wg sync.WaitGroup
	var apiSrv *http.Server

	zlog.Info("starting application", zap.String("mode", cfg.RunMode))

	apiMode := func() {
		router := api.SetupRouter(cfg, mongoDb, redisClient, store, geocoder, taskClient, zlog)
		apiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: router,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			zlog.Info("API listening", zap.String("port", cfg.ApiPort))
			if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zlog.Fatal("API ListenAndServe error", zap.Error(err))
			}
			zlog.Info("API server stopped")
		}()
	}

	imgMode := func() {
		processor := tasks.NewProcessor(cfg, store, zlog)
		wg.Add(1)
		go func() {
			defer wg.Done()
			zlog.Info("image worker starting")
			// Run blocks and handles SIGINT/SIGTERM itself.
			if err := tasks.RunServer(redisClient, processor, zlog); err != nil {
				zlog.Fatal("image worker error", zap.Error(err))
			}
			zlog.Info("image worker stopped")
		}()
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "img":
		imgMode()
	case "all":
		apiMode()
		imgMode()
	default:
		zlog.Fatal("invalid run mode", zap.String("mode", cfg.RunMode))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zlog.Info("shutting down", zap.String("signal", sig.String()))

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if apiSrv != nil {
		if err := apiSrv.Shutdown(ctxShutdown); err != nil {
			zlog.Error("API server shutdown error", zap.Error(err))
		}
	}

	wg.Wait()
	zlog.Info("server gracefully stopped")
}
