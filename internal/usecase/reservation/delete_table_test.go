package reservation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/brasaviva/restaurant-api/internal/domain/reservation"
	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

func TestDeleteTable(t *testing.T) {
	actor := uuid.New()

	t.Run("removes a table without active reservations", func(t *testing.T) {
		repo := newFakeRepo()
		table := repo.addTable(models.Table{Number: "T1", Capacity: 4})

		repo.addReservation(models.Reservation{
			TableID: table.ID, ClientID: uuid.New(),
			StartTime: futureStart(0), DurationMin: 60, PartySize: 2,
			Status: string(domain.StatusCancelled),
		})
		repo.addReservation(models.Reservation{
			TableID: table.ID, ClientID: uuid.New(),
			StartTime: futureStart(120), DurationMin: 60, PartySize: 2,
			Status: string(domain.StatusCompleted),
		})

		uc := NewDeleteTable(repo, nil)

		require.NoError(t, uc.Execute(context.Background(), actor, table.ID))

		_, err := repo.GetTable(context.Background(), table.ID)
		require.Error(t, err)
	})

	t.Run("refuses while a reservation is active", func(t *testing.T) {
		repo := newFakeRepo()
		table := repo.addTable(models.Table{Number: "T1", Capacity: 4})

		repo.addReservation(models.Reservation{
			TableID: table.ID, ClientID: uuid.New(),
			StartTime: futureStart(0), DurationMin: 60, PartySize: 2,
			Status: string(domain.StatusConfirmed),
		})

		uc := NewDeleteTable(repo, nil)

		err := uc.Execute(context.Background(), actor, table.ID)
		require.True(t, httperr.IsBusiness(err, "has_active_reservations"), "got %v", err)

		_, err = repo.GetTable(context.Background(), table.ID)
		require.NoError(t, err)
	})

	t.Run("unknown table", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewDeleteTable(repo, nil)

		err := uc.Execute(context.Background(), actor, uuid.New())
		require.True(t, httperr.IsBusiness(err, "table_not_found"), "got %v", err)
	})
}
