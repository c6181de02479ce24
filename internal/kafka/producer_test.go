package kafka

import (
	"testing"

	"github.com/Domenick1991/flightrecords/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewFlightEvent(t *testing.T) {
	f := domain.Flight{ID: 7, DepartureCity: "tampa", ArrivalCity: "morgantown"}

	event := NewFlightEvent(EventFlightCreated, f)

	assert.Equal(t, EventFlightCreated, event.Type)
	assert.Equal(t, int64(7), event.FlightID)
	assert.Equal(t, "tampa", event.DepartureCity)
	assert.Equal(t, "morgantown", event.ArrivalCity)
	assert.False(t, event.OccurredAt.IsZero())
	assert.Equal(t, "7", event.Key())
}

func TestProducerClose(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	assert.NoError(t, p.Close())
}

func TestConsumerClose_Nil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
