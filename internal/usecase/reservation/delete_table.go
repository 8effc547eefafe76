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

// DeleteTable removes a table unless any active reservation still
// references it.
type DeleteTable struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteTable(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteTable {
	return &DeleteTable{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteTable) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	id uuid.UUID,
) error {

	table, err := uc.repo.GetTable(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("table_not_found")
		}
		return err
	}

	active, err := uc.repo.CountActiveForTable(ctx, table.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return httperr.ErrBusiness("has_active_reservations")
	}

	if err := uc.repo.DeleteTable(ctx, table); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "table_deleted",
		Entity:   "table",
		EntityID: &table.ID,
	})

	return nil
}
