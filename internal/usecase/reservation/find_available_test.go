package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

func TestFindAvailableTables(t *testing.T) {
	start := futureStart(0)

	t.Run("filters by capacity, status and conflicts, smallest first", func(t *testing.T) {
		repo := newFakeRepo()

		repo.addTable(models.Table{Number: "T2", Capacity: 2})
		four := repo.addTable(models.Table{Number: "T4", Capacity: 4})
		six := repo.addTable(models.Table{Number: "T6", Capacity: 6})
		repo.addTable(models.Table{Number: "T8", Capacity: 8, Status: models.TableMaintenance})

		// The four-seater is taken for the whole window.
		repo.addReservation(models.Reservation{
			TableID:     four.ID,
			ClientID:    uuid.New(),
			StartTime:   start,
			DurationMin: 120,
			PartySize:   4,
		})

		uc := NewFindAvailableTables(repo)

		tables, err := uc.Execute(context.Background(), FindAvailableTablesInput{
			PartySize:   3,
			StartTime:   start.Add(30 * time.Minute),
			DurationMin: 60,
		})
		require.NoError(t, err)

		// Too small (two), booked (four) and under maintenance (eight) are
		// all out; only the six-seater remains.
		require.Len(t, tables, 1)
		require.Equal(t, six.ID, tables[0].ID)
	})

	t.Run("orders by capacity ascending", func(t *testing.T) {
		repo := newFakeRepo()

		repo.addTable(models.Table{Number: "T8", Capacity: 8})
		repo.addTable(models.Table{Number: "T2", Capacity: 2})
		repo.addTable(models.Table{Number: "T4", Capacity: 4})

		uc := NewFindAvailableTables(repo)

		tables, err := uc.Execute(context.Background(), FindAvailableTablesInput{
			PartySize:   2,
			StartTime:   start,
			DurationMin: 60,
		})
		require.NoError(t, err)
		require.Len(t, tables, 3)
		require.Equal(t, []int{2, 4, 8}, []int{
			tables[0].Capacity, tables[1].Capacity, tables[2].Capacity,
		})
	})

	t.Run("slot ending as another starts is free", func(t *testing.T) {
		repo := newFakeRepo()
		table := repo.addTable(models.Table{Number: "T4", Capacity: 4})

		repo.addReservation(models.Reservation{
			TableID:     table.ID,
			ClientID:    uuid.New(),
			StartTime:   start.Add(60 * time.Minute),
			DurationMin: 60,
			PartySize:   2,
		})

		uc := NewFindAvailableTables(repo)

		tables, err := uc.Execute(context.Background(), FindAvailableTablesInput{
			PartySize:   2,
			StartTime:   start,
			DurationMin: 60,
		})
		require.NoError(t, err)
		require.Len(t, tables, 1)
	})

	t.Run("rejects bad arguments", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewFindAvailableTables(repo)

		cases := []FindAvailableTablesInput{
			{PartySize: 0, StartTime: start, DurationMin: 60},
			{PartySize: 2, StartTime: start, DurationMin: 0},
			{PartySize: 2, StartTime: time.Now().UTC().Add(-time.Hour), DurationMin: 60},
		}
		for _, in := range cases {
			_, err := uc.Execute(context.Background(), in)
			require.True(t, httperr.IsBusiness(err, "invalid_argument"), "input %+v got %v", in, err)
		}
	})
}
