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

// UpdateReservationInput carries the full target state of the mutable
// fields. Partial updates are merged onto the current state first (see
// PatchReservation) so both paths validate the same way.
type UpdateReservationInput struct {
	ActorID uuid.UUID

	TableID     uuid.UUID
	StartTime   time.Time
	DurationMin int
	PartySize   int

	Notes       string
	SpecialMenu bool
}

// ======================================================
// USE CASE
// ======================================================

type UpdateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateReservation {
	return &UpdateReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	id uuid.UUID,
	in UpdateReservationInput,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	changed, err := revalidate(ctx, uc.repo, res, in)
	if err != nil {
		return nil, err
	}

	applyChanges(res, in)

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

// ======================================================
// SHARED VALIDATION
// ======================================================

// revalidate re-runs the capacity and conflict checks, but only when the
// table, interval or party size actually change, and reports whether they
// did. The reservation's own id is excluded from the conflict scan so it
// never collides with itself.
func revalidate(
	ctx context.Context,
	repo domain.Repository,
	res *models.Reservation,
	in UpdateReservationInput,
) (bool, error) {

	changed := !in.StartTime.Equal(res.StartTime) ||
		in.DurationMin != res.DurationMin ||
		in.TableID != res.TableID ||
		in.PartySize != res.PartySize

	if !changed {
		return false, nil
	}

	tableID := res.TableID
	if in.TableID != res.TableID {
		tableID = in.TableID
	}

	table, err := repo.GetTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, httperr.ErrBusiness("table_not_found")
		}
		return false, err
	}

	if in.PartySize > table.Capacity {
		return false, httperr.ErrBusiness("capacity_exceeded")
	}

	end := in.StartTime.Add(time.Duration(in.DurationMin) * time.Minute)

	conflict, err := repo.HasConflict(ctx, in.TableID, in.StartTime, end, &res.ID)
	if err != nil {
		return false, err
	}
	if conflict {
		return false, httperr.ErrBusiness("time_conflict")
	}

	return true, nil
}

// saveUpdated persists an update. Scheduling changes go through the store's
// transactional conflict re-check; anything else is a plain save, so a
// notes-only edit can never be rejected as a time conflict.
func saveUpdated(
	ctx context.Context,
	repo domain.Repository,
	res *models.Reservation,
	rescheduled bool,
) error {
	if rescheduled {
		return repo.UpdateReservation(ctx, res)
	}
	return repo.SaveReservation(ctx, res)
}

func applyChanges(res *models.Reservation, in UpdateReservationInput) {
	res.TableID = in.TableID
	res.StartTime = in.StartTime
	res.DurationMin = in.DurationMin
	res.PartySize = in.PartySize
	res.Notes = in.Notes
	res.SpecialMenu = in.SpecialMenu
}
