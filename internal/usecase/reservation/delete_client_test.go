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

func TestDeleteClient(t *testing.T) {
	actor := uuid.New()

	t.Run("cancels active reservations and removes the client", func(t *testing.T) {
		repo := newFakeRepo()
		table := repo.addTable(models.Table{Number: "T1", Capacity: 4})
		client := repo.addClient(models.Client{Name: "Ana", Surname: "Reis", Email: "ana@example.com"})

		pending := repo.addReservation(models.Reservation{
			TableID: table.ID, ClientID: client.ID,
			StartTime: futureStart(0), DurationMin: 60, PartySize: 2,
			Status: string(domain.StatusPending),
		})
		confirmed := repo.addReservation(models.Reservation{
			TableID: table.ID, ClientID: client.ID,
			StartTime: futureStart(120), DurationMin: 60, PartySize: 2,
			Status: string(domain.StatusConfirmed),
		})
		completed := repo.addReservation(models.Reservation{
			TableID: table.ID, ClientID: client.ID,
			StartTime: futureStart(240), DurationMin: 60, PartySize: 2,
			Status: string(domain.StatusCompleted),
		})

		uc := NewDeleteClient(repo, nil)

		require.NoError(t, uc.Execute(context.Background(), actor, client.ID))

		_, err := repo.GetClient(context.Background(), client.ID)
		require.Error(t, err)

		for _, id := range []uuid.UUID{pending.ID, confirmed.ID} {
			r, err := repo.GetReservation(context.Background(), id)
			require.NoError(t, err)
			require.Equal(t, string(domain.StatusCancelled), r.Status)
			require.NotNil(t, r.CancelledAt)
		}

		// Settled history keeps its status.
		r, err := repo.GetReservation(context.Background(), completed.ID)
		require.NoError(t, err)
		require.Equal(t, string(domain.StatusCompleted), r.Status)
	})

	t.Run("sweep applies no loyalty penalty", func(t *testing.T) {
		repo := newFakeRepo()
		table := repo.addTable(models.Table{Number: "T1", Capacity: 4})
		client := repo.addClient(models.Client{
			Name: "Ana", Surname: "Reis", Email: "ana@example.com",
			LoyaltyPoints: 30,
		})
		repo.addReservation(models.Reservation{
			TableID: table.ID, ClientID: client.ID,
			StartTime: futureStart(0), DurationMin: 60, PartySize: 2,
		})

		uc := NewDeleteClient(repo, nil)
		require.NoError(t, uc.Execute(context.Background(), actor, client.ID))

		// The sweep saves plainly; the penalty-charging cancel path never runs.
		require.Zero(t, repo.cancelCalls)
	})

	t.Run("unknown client", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewDeleteClient(repo, nil)

		err := uc.Execute(context.Background(), actor, uuid.New())
		require.True(t, httperr.IsBusiness(err, "client_not_found"), "got %v", err)
	})
}
