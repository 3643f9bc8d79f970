package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"hotel-inventory/config"
	"hotel-inventory/controllers"
	"hotel-inventory/events"
	"hotel-inventory/repository"
	"hotel-inventory/routes"
	"hotel-inventory/services"
)

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var zl zerolog.Logger
	if cfg.LogFormat == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		zl = zerolog.New(os.Stdout)
	}
	return zl.Level(level).With().Timestamp().Str("service", "hotel-inventory").Logger()
}

func main() {
	// Load .env (optional)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := newLogger(cfg)
	if envErr != nil {
		logger.Debug().Msg(".env not found; using process environment")
	}
	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	var store repository.Store
	switch cfg.StoreDriver {
	case config.DriverMemory:
		mem := repository.NewMemoryStore()
		if cfg.SeedDemoData {
			if err := config.SeedMemory(ctx, mem); err != nil {
				logger.Fatal().Err(err).Msg("seed memory store")
			}
		}
		store = mem
	default:
		db, err := config.ConnectDatabase(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("database connect failed")
		}
		if cfg.SeedDemoData {
			if err := config.SeedDatabase(db, logger); err != nil {
				logger.Fatal().Err(err).Msg("seed database")
			}
		}
		store = repository.NewGormStore(db)
	}
	logger.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	rdb, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable; room type cache disabled")
	}
	if rdb != nil {
		defer rdb.Close()
		cached := repository.NewCachedStore(store, rdb, cfg.RoomTypeCacheTTL, logger)
		// The catalogue may have been reseeded since another process filled the cache.
		if err := cached.Invalidate(ctx); err != nil {
			logger.Warn().Err(err).Msg("room type cache invalidate failed")
		}
		store = cached
		logger.Info().Str("addr", cfg.RedisAddr).Msg("room type cache enabled")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		amqpPub := events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventQueue, cfg.AMQPDialTimeout)
		defer amqpPub.Close()
		publisher = amqpPub
		logger.Info().Str("queue", cfg.EventQueue).Msg("lifecycle events will be published")
	}

	// Initialize services
	reservationService := services.NewReservationService(store, publisher, logger)

	// Initialize controllers
	reservationController := controllers.NewReservationController(reservationService)
	roomController := controllers.NewRoomController(reservationService)

	router := routes.SetupRouter(reservationController, roomController, cfg.CORSOrigins, logger)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server stopped gracefully")
}
