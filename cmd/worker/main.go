package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightrecords/config"
	"github.com/Domenick1991/flightrecords/internal/kafka"
	"github.com/Domenick1991/flightrecords/internal/logging"
)

// The worker consumes flight-change events and records them in the log.
func main() {
	if err := run(); err != nil {
		logging.Fatal("worker stopped", "error", err)
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

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.FlightEventsTopic == "" {
		return errors.New("kafka brokers and flight_events_topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightEventsTopic)
	defer consumer.Close()

	err = consumer.Consume(ctx, logEvent)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("consume flight events: %w", err)
	}
	return nil
}

func logEvent(_ context.Context, event kafka.FlightEvent) error {
	logging.Info("flight changed",
		"type", event.Type,
		"flight_id", event.FlightID,
		"departure_city", event.DepartureCity,
		"arrival_city", event.ArrivalCity,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
