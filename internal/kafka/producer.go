package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/flightrecords/internal/domain"
	"github.com/Domenick1991/flightrecords/internal/logging"
	"github.com/segmentio/kafka-go"
)

const (
	EventFlightCreated = "flight_created"
	EventFlightUpdated = "flight_updated"
)

type FlightEvent struct {
	Type          string    `json:"type"`
	FlightID      int64     `json:"flight_id"`
	DepartureCity string    `json:"departure_city"`
	ArrivalCity   string    `json:"arrival_city"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewFlightEvent(eventType string, f domain.Flight) FlightEvent {
	return FlightEvent{
		Type:          eventType,
		FlightID:      f.ID,
		DepartureCity: f.DepartureCity,
		ArrivalCity:   f.ArrivalCity,
		OccurredAt:    time.Now().UTC(),
	}
}

// Key partitions events by flight id so changes to one flight stay ordered.
func (e FlightEvent) Key() string {
	return strconv.FormatInt(e.FlightID, 10)
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	logging.L().Debugw("published to kafka", "topic", topic, "key", key)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
