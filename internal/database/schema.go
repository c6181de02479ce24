package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Domenick1991/flightrecords/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedFlights is the fixture inserted by Setup, in id order starting at 1.
var SeedFlights = []domain.Flight{
	{ID: 1, DepartureCity: "tampa", ArrivalCity: "dallas"},
	{ID: 2, DepartureCity: "tampa", ArrivalCity: "reston"},
	{ID: 3, DepartureCity: "reston", ArrivalCity: "morgantown"},
	{ID: 4, DepartureCity: "morgantown", ArrivalCity: "dallas"},
	{ID: 5, DepartureCity: "tampa", ArrivalCity: "dallas"},
	{ID: 6, DepartureCity: "dallas", ArrivalCity: "tampa"},
}

type dialect struct {
	createTable string
	insertSeed  string
}

var postgresDialect = dialect{
	createTable: `CREATE TABLE flight (
		flight_id SERIAL PRIMARY KEY,
		departure_city VARCHAR(255),
		arrival_city VARCHAR(255)
	)`,
	insertSeed: `INSERT INTO flight (departure_city, arrival_city) VALUES ($1, $2)`,
}

var sqliteDialect = dialect{
	createTable: `CREATE TABLE flight (
		flight_id INTEGER PRIMARY KEY AUTOINCREMENT,
		departure_city VARCHAR(255),
		arrival_city VARCHAR(255)
	)`,
	insertSeed: `INSERT INTO flight (departure_city, arrival_city) VALUES (?, ?)`,
}

type execFunc func(ctx context.Context, query string, args ...any) error

// SetupPostgres drops and recreates the flight table, optionally seeding it.
func SetupPostgres(ctx context.Context, pool *pgxpool.Pool, seed bool) error {
	return setup(ctx, postgresDialect, seed, func(ctx context.Context, query string, args ...any) error {
		_, err := pool.Exec(ctx, query, args...)
		return err
	})
}

// SetupSQLite drops and recreates the flight table, optionally seeding it.
func SetupSQLite(ctx context.Context, db *sql.DB, seed bool) error {
	return setup(ctx, sqliteDialect, seed, func(ctx context.Context, query string, args ...any) error {
		_, err := db.ExecContext(ctx, query, args...)
		return err
	})
}

func setup(ctx context.Context, d dialect, seed bool, exec execFunc) error {
	if err := exec(ctx, `DROP TABLE IF EXISTS flight`); err != nil {
		return fmt.Errorf("drop flight table: %w", err)
	}
	if err := exec(ctx, d.createTable); err != nil {
		return fmt.Errorf("create flight table: %w", err)
	}
	if !seed {
		return nil
	}
	for _, f := range SeedFlights {
		if err := exec(ctx, d.insertSeed, f.DepartureCity, f.ArrivalCity); err != nil {
			return fmt.Errorf("seed flight %d: %w", f.ID, err)
		}
	}
	return nil
}
