package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/flightrecords/internal/logging"
	"github.com/segmentio/kafka-go"
)

var errMissingEventType = errors.New("flight event has no type")

// messageReader is the part of *kafka.Reader the consumer drives.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// FlightEventHandler receives every decoded event. A non-nil error stops
// the consumer.
type FlightEventHandler func(ctx context.Context, event FlightEvent) error

type Consumer struct {
	reader messageReader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}))
}

func newConsumer(reader messageReader) *Consumer {
	return &Consumer{reader: reader}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads flight events until ctx is done, the reader fails or
// handler fails. Messages that are not flight events are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler FlightEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeFlightEvent(msg)
		if err != nil {
			logging.Warn("skipping undecodable flight event",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeFlightEvent(msg kafka.Message) (FlightEvent, error) {
	var event FlightEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return FlightEvent{}, err
	}
	if event.Type == "" {
		return FlightEvent{}, errMissingEventType
	}
	return event, nil
}
