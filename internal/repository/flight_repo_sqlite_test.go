package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/flightrecords/internal/database"
	"github.com/Domenick1991/flightrecords/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// newSeededRepository returns a repository over an in-memory table holding
// database.SeedFlights.
func newSeededRepository(t *testing.T) FlightRepository {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SetupSQLite(context.Background(), db, true))
	return NewSQLiteFlightRepository(db)
}

func ids(flights []domain.Flight) []int64 {
	out := make([]int64, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ID)
	}
	return out
}

func TestSQLiteFlightRepository_List(t *testing.T) {
	repo := newSeededRepository(t)

	flights, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, database.SeedFlights, flights)
}

func TestSQLiteFlightRepository_ListEmpty(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.SetupSQLite(context.Background(), db, false))
	repo := NewSQLiteFlightRepository(db)

	flights, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, flights)
	assert.Empty(t, flights)
}

func TestSQLiteFlightRepository_GetByID(t *testing.T) {
	repo := newSeededRepository(t)
	ctx := context.Background()

	flight, ok, err := repo.GetByID(ctx, 6)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.Flight{ID: 6, DepartureCity: "dallas", ArrivalCity: "tampa"}, flight)

	flight, ok, err = repo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.Flight{ID: 4, DepartureCity: "morgantown", ArrivalCity: "dallas"}, flight)
}

func TestSQLiteFlightRepository_GetByID_NotFound(t *testing.T) {
	repo := newSeededRepository(t)

	flight, ok, err := repo.GetByID(context.Background(), 999)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, flight)
}

func TestSQLiteFlightRepository_ListByRoute(t *testing.T) {
	repo := newSeededRepository(t)
	ctx := context.Background()

	tests := []struct {
		departure string
		arrival   string
		want      []int64
	}{
		{"tampa", "dallas", []int64{1, 5}},
		{"reston", "morgantown", []int64{3}},
		{"dallas", "tampa", []int64{6}},
		{"dallas", "reston", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.departure+"-"+tt.arrival, func(t *testing.T) {
			flights, err := repo.ListByRoute(ctx, tt.departure, tt.arrival)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(flights))
			for _, f := range flights {
				assert.Equal(t, tt.departure, f.DepartureCity)
				assert.Equal(t, tt.arrival, f.ArrivalCity)
			}
		})
	}
}

func TestSQLiteFlightRepository_ListByRouteIsSubsetOfList(t *testing.T) {
	repo := newSeededRepository(t)
	ctx := context.Background()

	all, err := repo.List(ctx)
	require.NoError(t, err)

	for _, candidate := range all {
		matched, err := repo.ListByRoute(ctx, candidate.DepartureCity, candidate.ArrivalCity)
		require.NoError(t, err)

		var want []domain.Flight
		for _, f := range all {
			if f.SameRoute(candidate) {
				want = append(want, f)
			}
		}
		assert.Equal(t, want, matched)
	}
}

func TestSQLiteFlightRepository_Insert(t *testing.T) {
	repo := newSeededRepository(t)
	ctx := context.Background()

	inserted, err := repo.Insert(ctx, domain.Flight{ID: 42, DepartureCity: "tampa", ArrivalCity: "morgantown"})
	require.NoError(t, err)

	expected := domain.Flight{ID: 7, DepartureCity: "tampa", ArrivalCity: "morgantown"}
	assert.Equal(t, expected, inserted)

	byID, ok, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, expected, byID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, expected)
}

func TestSQLiteFlightRepository_Update(t *testing.T) {
	repo := newSeededRepository(t)
	ctx := context.Background()

	updated, err := repo.Update(ctx, 1, domain.Flight{DepartureCity: "reston", ArrivalCity: "dallas"})
	require.NoError(t, err)

	expected := domain.Flight{ID: 1, DepartureCity: "reston", ArrivalCity: "dallas"}
	assert.Equal(t, expected, updated)

	actual, ok, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, expected, actual)
}

func TestSQLiteFlightRepository_UpdateMissingIDChangesNothing(t *testing.T) {
	repo := newSeededRepository(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, 999, domain.Flight{DepartureCity: "reston", ArrivalCity: "dallas"})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, database.SeedFlights, all)
}

func TestSQLiteFlightRepository_ConcurrentInsertsOnFile(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "flights.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, database.SetupSQLite(ctx, db, true))
	repo := NewSQLiteFlightRepository(db)

	const writers = 64
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := repo.Insert(ctx, domain.Flight{DepartureCity: "reston", ArrivalCity: "tampa"})
			return err
		})
	}
	require.NoError(t, g.Wait())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(database.SeedFlights)+writers)

	seen := make(map[int64]bool, len(all))
	for _, f := range all {
		assert.False(t, seen[f.ID], "id %d assigned twice", f.ID)
		seen[f.ID] = true
	}
}

func TestSQLiteFlightRepository_NullCitiesReadAsEmpty(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, database.SetupSQLite(ctx, db, false))
	_, err = db.ExecContext(ctx, `INSERT INTO flight (departure_city, arrival_city) VALUES (NULL, 'dallas')`)
	require.NoError(t, err)
	repo := NewSQLiteFlightRepository(db)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Flight{{ID: 1, DepartureCity: "", ArrivalCity: "dallas"}}, all)

	flight, ok, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, flight.DepartureCity)
}
