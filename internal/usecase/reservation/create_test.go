package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/brasaviva/restaurant-api/internal/domain/reservation"
	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

// futureStart returns a deterministic slot comfortably in the future.
func futureStart(offsetMin int) time.Time {
	return time.Now().UTC().Add(24*time.Hour + time.Duration(offsetMin)*time.Minute).Truncate(time.Minute)
}

func TestCreateReservation(t *testing.T) {
	start := futureStart(0)

	type seed struct {
		tableCap   int
		existing   *models.Reservation
		withClient bool
	}

	tests := []struct {
		name     string
		seed     seed
		in       func(tableID, clientID uuid.UUID) CreateReservationInput
		wantCode string
	}{
		{
			name: "success",
			seed: seed{tableCap: 4, withClient: true},
			in: func(tableID, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: clientID,
					StartTime: start, DurationMin: 90, PartySize: 2,
				}
			},
		},
		{
			name: "unknown table",
			seed: seed{tableCap: 4, withClient: true},
			in: func(_, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: uuid.New(), ClientID: clientID,
					StartTime: start, DurationMin: 60, PartySize: 2,
				}
			},
			wantCode: "table_not_found",
		},
		{
			name: "party larger than table",
			seed: seed{tableCap: 4, withClient: true},
			in: func(tableID, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: clientID,
					StartTime: start, DurationMin: 60, PartySize: 5,
				}
			},
			wantCode: "capacity_exceeded",
		},
		{
			name: "capacity reported before missing client",
			seed: seed{tableCap: 4, withClient: false},
			in: func(tableID, _ uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: uuid.New(),
					StartTime: start, DurationMin: 60, PartySize: 9,
				}
			},
			wantCode: "capacity_exceeded",
		},
		{
			name: "unknown client",
			seed: seed{tableCap: 4, withClient: false},
			in: func(tableID, _ uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: uuid.New(),
					StartTime: start, DurationMin: 60, PartySize: 2,
				}
			},
			wantCode: "client_not_found",
		},
		{
			name: "overlapping slot",
			seed: seed{
				tableCap:   4,
				withClient: true,
				existing:   &models.Reservation{StartTime: start, DurationMin: 120},
			},
			in: func(tableID, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: clientID,
					StartTime: start.Add(60 * time.Minute), DurationMin: 60, PartySize: 2,
				}
			},
			wantCode: "time_conflict",
		},
		{
			name: "back to back is not a conflict",
			seed: seed{
				tableCap:   4,
				withClient: true,
				existing:   &models.Reservation{StartTime: start, DurationMin: 60},
			},
			in: func(tableID, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: clientID,
					StartTime: start.Add(60 * time.Minute), DurationMin: 60, PartySize: 2,
				}
			},
		},
		{
			name: "cancelled reservation does not block the slot",
			seed: seed{
				tableCap:   4,
				withClient: true,
				existing: &models.Reservation{
					StartTime: start, DurationMin: 120,
					Status: string(domain.StatusCancelled),
				},
			},
			in: func(tableID, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: clientID,
					StartTime: start, DurationMin: 60, PartySize: 2,
				}
			},
		},
		{
			name: "zero duration",
			seed: seed{tableCap: 4, withClient: true},
			in: func(tableID, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: clientID,
					StartTime: start, DurationMin: 0, PartySize: 2,
				}
			},
			wantCode: "invalid_duration",
		},
		{
			name: "start in the past",
			seed: seed{tableCap: 4, withClient: true},
			in: func(tableID, clientID uuid.UUID) CreateReservationInput {
				return CreateReservationInput{
					TableID: tableID, ClientID: clientID,
					StartTime: time.Now().UTC().Add(-time.Hour), DurationMin: 60, PartySize: 2,
				}
			},
			wantCode: "invalid_start_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()

			table := repo.addTable(models.Table{Number: "T1", Capacity: tt.seed.tableCap})

			var clientID uuid.UUID
			if tt.seed.withClient {
				clientID = repo.addClient(models.Client{Name: "Ana", Surname: "Reis", Email: "ana@example.com"}).ID
			}

			if tt.seed.existing != nil {
				ex := *tt.seed.existing
				ex.TableID = table.ID
				ex.ClientID = uuid.New()
				repo.addReservation(ex)
			}

			uc := NewCreateReservation(repo, nil)

			res, err := uc.Execute(context.Background(), tt.in(table.ID, clientID))

			if tt.wantCode != "" {
				require.Error(t, err)
				require.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
				require.Nil(t, res)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, res)
			require.NotEqual(t, uuid.Nil, res.ID)
			require.Equal(t, string(domain.StatusPending), res.Status)
		})
	}
}

func TestCreateReservationAppliesLoyaltyReward(t *testing.T) {
	repo := newFakeRepo()
	table := repo.addTable(models.Table{Number: "T1", Capacity: 6})
	client := repo.addClient(models.Client{
		Name: "Ana", Surname: "Reis", Email: "ana@example.com",
		LoyaltyPoints: 20, VisitCount: 3,
	})

	uc := NewCreateReservation(repo, nil)

	_, err := uc.Execute(context.Background(), CreateReservationInput{
		TableID:     table.ID,
		ClientID:    client.ID,
		StartTime:   futureStart(0),
		DurationMin: 60,
		PartySize:   4,
	})
	require.NoError(t, err)

	stored, err := repo.GetClient(context.Background(), client.ID)
	require.NoError(t, err)
	require.Equal(t, 20+domain.CreationReward, stored.LoyaltyPoints)
	require.Equal(t, 4, stored.VisitCount)
}
