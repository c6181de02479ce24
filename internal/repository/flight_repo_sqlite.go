package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Domenick1991/flightrecords/internal/domain"
)

type SQLiteFlightRepository struct {
	db *sql.DB
}

func NewSQLiteFlightRepository(db *sql.DB) FlightRepository {
	return &SQLiteFlightRepository{db: db}
}

func (r *SQLiteFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.query(ctx, `SELECT `+flightColumns+` FROM flight ORDER BY flight_id`)
}

func (r *SQLiteFlightRepository) GetByID(ctx context.Context, id int64) (domain.Flight, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+flightColumns+` FROM flight WHERE flight_id=?`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DepartureCity, &f.ArrivalCity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Flight{}, false, nil
		}
		return domain.Flight{}, false, err
	}
	return f, true, nil
}

func (r *SQLiteFlightRepository) ListByRoute(ctx context.Context, departureCity, arrivalCity string) ([]domain.Flight, error) {
	return r.query(ctx, `SELECT `+flightColumns+` FROM flight WHERE departure_city=? AND arrival_city=? ORDER BY flight_id`, departureCity, arrivalCity)
}

func (r *SQLiteFlightRepository) Insert(ctx context.Context, flight domain.Flight) (domain.Flight, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO flight (departure_city, arrival_city) VALUES (?, ?)`, flight.DepartureCity, flight.ArrivalCity)
	if err != nil {
		return domain.Flight{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Flight{}, err
	}
	return domain.Flight{ID: id, DepartureCity: flight.DepartureCity, ArrivalCity: flight.ArrivalCity}, nil
}

func (r *SQLiteFlightRepository) Update(ctx context.Context, id int64, flight domain.Flight) (domain.Flight, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE flight SET departure_city=?, arrival_city=? WHERE flight_id=?`, flight.DepartureCity, flight.ArrivalCity, id)
	if err != nil {
		return domain.Flight{}, err
	}
	return domain.Flight{ID: id, DepartureCity: flight.DepartureCity, ArrivalCity: flight.ArrivalCity}, nil
}

func (r *SQLiteFlightRepository) query(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

var _ FlightRepository = (*SQLiteFlightRepository)(nil)
