package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightrecords/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// flightColumns reads NULL cities, allowed by the schema, as "".
const flightColumns = `flight_id, COALESCE(departure_city, ''), COALESCE(arrival_city, '')`

// FlightRepository maps domain.Flight to the flight table. It keeps no
// state, every call round-trips to the store.
type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	// GetByID reports ok == false when no row has the id.
	GetByID(ctx context.Context, id int64) (flight domain.Flight, ok bool, err error)
	ListByRoute(ctx context.Context, departureCity, arrivalCity string) ([]domain.Flight, error)
	// Insert ignores flight.ID and returns the row with its generated id.
	Insert(ctx context.Context, flight domain.Flight) (domain.Flight, error)
	// Update replaces the city fields of row id. The row must exist: a
	// missing id matches nothing and is not reported.
	Update(ctx context.Context, id int64, flight domain.Flight) (domain.Flight, error)
}

// PGQuerier is the subset of *pgxpool.Pool the repository uses.
type PGQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PGFlightRepository struct {
	db PGQuerier
}

func NewFlightRepository(db PGQuerier) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.query(ctx, `SELECT `+flightColumns+` FROM flight ORDER BY flight_id`)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (domain.Flight, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flight WHERE flight_id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DepartureCity, &f.ArrivalCity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Flight{}, false, nil
		}
		return domain.Flight{}, false, err
	}
	return f, true, nil
}

func (r *PGFlightRepository) ListByRoute(ctx context.Context, departureCity, arrivalCity string) ([]domain.Flight, error) {
	return r.query(ctx, `SELECT `+flightColumns+` FROM flight WHERE departure_city=$1 AND arrival_city=$2 ORDER BY flight_id`, departureCity, arrivalCity)
}

func (r *PGFlightRepository) Insert(ctx context.Context, flight domain.Flight) (domain.Flight, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO flight (departure_city, arrival_city) VALUES ($1, $2) RETURNING flight_id`, flight.DepartureCity, flight.ArrivalCity)
	var id int64
	if err := row.Scan(&id); err != nil {
		return domain.Flight{}, err
	}
	return domain.Flight{ID: id, DepartureCity: flight.DepartureCity, ArrivalCity: flight.ArrivalCity}, nil
}

func (r *PGFlightRepository) Update(ctx context.Context, id int64, flight domain.Flight) (domain.Flight, error) {
	_, err := r.db.Exec(ctx, `UPDATE flight SET departure_city=$1, arrival_city=$2 WHERE flight_id=$3`, flight.DepartureCity, flight.ArrivalCity, id)
	if err != nil {
		return domain.Flight{}, err
	}
	return domain.Flight{ID: id, DepartureCity: flight.DepartureCity, ArrivalCity: flight.ArrivalCity}, nil
}

func (r *PGFlightRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.DepartureCity, &f.ArrivalCity); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
