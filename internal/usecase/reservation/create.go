package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brasaviva/restaurant-api/internal/audit"
	domain "github.com/brasaviva/restaurant-api/internal/domain/reservation"
	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	ActorID uuid.UUID

	TableID  uuid.UUID
	ClientID uuid.UUID

	StartTime   time.Time
	DurationMin int
	PartySize   int

	Notes       string
	SpecialMenu bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// The validation order mirrors the booking flow the API has always had:
// table, capacity, client, conflict, then the temporal checks. Reordering
// would change which error a bad request gets back.
func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	table, err := uc.repo.GetTable(ctx, in.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("table_not_found")
		}
		return nil, err
	}

	if in.PartySize > table.Capacity {
		return nil, httperr.ErrBusiness("capacity_exceeded")
	}

	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}

	end := in.StartTime.Add(time.Duration(in.DurationMin) * time.Minute)

	conflict, err := uc.repo.HasConflict(ctx, in.TableID, in.StartTime, end, nil)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	if in.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	if in.StartTime.Before(time.Now().UTC()) {
		return nil, httperr.ErrBusiness("invalid_start_time")
	}

	res := &models.Reservation{
		TableID:     in.TableID,
		ClientID:    in.ClientID,
		StartTime:   in.StartTime,
		DurationMin: in.DurationMin,
		PartySize:   in.PartySize,
		Notes:       in.Notes,
		SpecialMenu: in.SpecialMenu,
		Status:      string(domain.InitialStatus()),
	}

	// Inserts the reservation and applies the client's visit/loyalty reward
	// in one transaction.
	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
