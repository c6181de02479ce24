package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightrecords/config"
	"github.com/Domenick1991/flightrecords/internal/bootstrap"
	"github.com/Domenick1991/flightrecords/internal/cache"
	"github.com/Domenick1991/flightrecords/internal/database"
	"github.com/Domenick1991/flightrecords/internal/kafka"
	"github.com/Domenick1991/flightrecords/internal/logging"
	"github.com/Domenick1991/flightrecords/internal/metrics"
	"github.com/Domenick1991/flightrecords/internal/repository"
	"github.com/Domenick1991/flightrecords/internal/service/flights"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal("app stopped", "error", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.Init(cfg.Log.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		flightRepo repository.FlightRepository
		ping       bootstrap.PingFunc
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer db.Close()
		if cfg.Database.ResetOnStart {
			if err := database.SetupSQLite(ctx, db, cfg.Database.Seed); err != nil {
				return fmt.Errorf("setup schema: %w", err)
			}
		}
		flightRepo = repository.NewSQLiteFlightRepository(db)
		ping = db.PingContext
	default:
		pool, err := database.OpenPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		if cfg.Database.ResetOnStart {
			if err := database.SetupPostgres(ctx, pool, cfg.Database.Seed); err != nil {
				return fmt.Errorf("setup schema: %w", err)
			}
		}
		flightRepo = repository.NewFlightRepository(pool)
		ping = pool.Ping
	}

	var flightCache flights.FlightCache
	if cfg.Flights.CacheTTLSeconds > 0 && cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Flights.CacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		flightCache = redisCache
	}

	var opts []flights.FlightServiceOption
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.FlightEventsTopic != "" {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, flights.WithEvents(producer, cfg.Kafka.FlightEventsTopic))
	}

	flightService := flights.NewFlightService(flightRepo, flightCache, opts...)

	deps := bootstrap.RouterDeps{
		Flights: flightService,
		Metrics: metrics.NewRegistry(),
		Ping:    ping,
	}
	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}
