package reservation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brasaviva/restaurant-api/internal/audit"
	domain "github.com/brasaviva/restaurant-api/internal/domain/reservation"
	"github.com/brasaviva/restaurant-api/internal/httperr"
)

// DeleteReservation hard-deletes a booking. Unlike cancellation this leaves
// the client's loyalty balance untouched.
type DeleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteReservation {
	return &DeleteReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteReservation) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	id uuid.UUID,
) error {

	res, err := uc.repo.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("reservation_not_found")
		}
		return err
	}

	if err := uc.repo.DeleteReservation(ctx, res); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "reservation_deleted",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return nil
}
