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

type PatchReservationInput struct {
	ActorID uuid.UUID

	TableID     *uuid.UUID
	StartTime   *time.Time
	DurationMin *int
	PartySize   *int

	Notes       *string
	SpecialMenu *bool
}

// ======================================================
// USE CASE
// ======================================================

type PatchReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPatchReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *PatchReservation {
	return &PatchReservation{
		repo:  repo,
		audit: audit,
	}
}

// Execute merges the partial change set onto a snapshot of the current
// values and then validates exactly as a full update would.
func (uc *PatchReservation) Execute(
	ctx context.Context,
	id uuid.UUID,
	in PatchReservationInput,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	merged := UpdateReservationInput{
		ActorID:     in.ActorID,
		TableID:     res.TableID,
		StartTime:   res.StartTime,
		DurationMin: res.DurationMin,
		PartySize:   res.PartySize,
		Notes:       res.Notes,
		SpecialMenu: res.SpecialMenu,
	}

	if in.TableID != nil {
		merged.TableID = *in.TableID
	}
	if in.StartTime != nil {
		merged.StartTime = *in.StartTime
	}
	if in.DurationMin != nil {
		merged.DurationMin = *in.DurationMin
	}
	if in.PartySize != nil {
		merged.PartySize = *in.PartySize
	}
	if in.Notes != nil {
		merged.Notes = *in.Notes
	}
	if in.SpecialMenu != nil {
		merged.SpecialMenu = *in.SpecialMenu
	}

	changed, err := revalidate(ctx, uc.repo, res, merged)
	if err != nil {
		return nil, err
	}

	applyChanges(res, merged)

	if err := saveUpdated(ctx, uc.repo, res, changed); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "reservation_updated",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
