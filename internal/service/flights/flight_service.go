package flights

import (
	"context"
	"sync"

	"github.com/Domenick1991/flightrecords/internal/domain"
	"github.com/Domenick1991/flightrecords/internal/kafka"
	"github.com/Domenick1991/flightrecords/internal/logging"
	"github.com/Domenick1991/flightrecords/internal/repository"
)

// FlightUseCase reports domain rejections through ok == false; err is
// reserved for infrastructure failures.
type FlightUseCase interface {
	GetAllFlights(ctx context.Context) ([]domain.Flight, error)
	GetAllFlightsFromCityToCity(ctx context.Context, departureCity, arrivalCity string) ([]domain.Flight, error)
	// AddFlight rejects a flight whose route is already stored.
	AddFlight(ctx context.Context, flight domain.Flight) (added domain.Flight, ok bool, err error)
	// UpdateFlight rejects an id that does not exist.
	UpdateFlight(ctx context.Context, id int64, flight domain.Flight) (updated domain.Flight, ok bool, err error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type FlightService struct {
	repo        repository.FlightRepository
	cache       FlightCache
	producer    EventProducer
	eventsTopic string

	// mu orders cache fills against invalidations. writes counts completed
	// writes so a listing read before a write is never stored after it.
	// stale is set while the cache may hold a listing older than the store.
	mu     sync.Mutex
	writes uint64
	stale  bool
}

type FlightServiceOption func(*FlightService)

func WithEvents(producer EventProducer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

// NewFlightService accepts a nil cache, every listing then goes to repo.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, cache: cache}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) GetAllFlights(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil && s.cacheUsable(ctx) {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	s.mu.Lock()
	writes := s.writes
	s.mu.Unlock()

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.fillCache(ctx, writes, flights)
	}
	return flights, nil
}

func (s *FlightService) GetAllFlightsFromCityToCity(ctx context.Context, departureCity, arrivalCity string) ([]domain.Flight, error) {
	return s.repo.ListByRoute(ctx, departureCity, arrivalCity)
}

func (s *FlightService) AddFlight(ctx context.Context, flight domain.Flight) (domain.Flight, bool, error) {
	existing, err := s.repo.ListByRoute(ctx, flight.DepartureCity, flight.ArrivalCity)
	if err != nil {
		return domain.Flight{}, false, err
	}
	for _, f := range existing {
		if f.SameRoute(flight) {
			return domain.Flight{}, false, nil
		}
	}

	added, err := s.repo.Insert(ctx, domain.Flight{DepartureCity: flight.DepartureCity, ArrivalCity: flight.ArrivalCity})
	if err != nil {
		return domain.Flight{}, false, err
	}
	s.changed(ctx, kafka.EventFlightCreated, added)
	return added, true, nil
}

func (s *FlightService) UpdateFlight(ctx context.Context, id int64, flight domain.Flight) (domain.Flight, bool, error) {
	_, ok, err := s.repo.GetByID(ctx, id)
	if err != nil || !ok {
		return domain.Flight{}, false, err
	}

	updated, err := s.repo.Update(ctx, id, flight)
	if err != nil {
		return domain.Flight{}, false, err
	}
	s.changed(ctx, kafka.EventFlightUpdated, updated)
	return updated, true, nil
}

// cacheUsable retries a failed invalidation before the cache is read again.
func (s *FlightService) cacheUsable(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stale {
		return true
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		return false
	}
	s.stale = false
	return true
}

// fillCache stores flights unless a write completed after writes was read.
func (s *FlightService) fillCache(ctx context.Context, writes uint64, flights []domain.Flight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale || s.writes != writes {
		return
	}
	_ = s.cache.SetFlights(ctx, flights)
}

// changed drops the cached listing and announces the write. Neither step
// affects the result of the write.
func (s *FlightService) changed(ctx context.Context, eventType string, flight domain.Flight) {
	if s.cache != nil {
		s.mu.Lock()
		s.writes++
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.stale = true
			logging.Warn("failed to invalidate flights cache, bypassing it", "flight_id", flight.ID, "error", err)
		}
		s.mu.Unlock()
	}
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.NewFlightEvent(eventType, flight)
	if err := s.producer.Publish(ctx, s.eventsTopic, event.Key(), event); err != nil {
		logging.Warn("failed to publish flight event", "type", eventType, "flight_id", flight.ID, "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
