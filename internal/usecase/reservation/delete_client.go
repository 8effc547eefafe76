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
)

// DeleteClient removes a patron. Their active reservations are swept to
// cancelled first so no live booking points at a missing client; settled
// (cancelled/completed) history keeps its rows until the FK cascade.
type DeleteClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteClient {
	return &DeleteClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteClient) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	id uuid.UUID,
) error {

	client, err := uc.repo.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("client_not_found")
		}
		return err
	}

	active, err := uc.repo.ListActiveForClient(ctx, client.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for i := range active {
		// No loyalty penalty here: the account is going away anyway.
		domain.ForceCancel(&active[i], now)
		if err := uc.repo.SaveReservation(ctx, &active[i]); err != nil {
			return err
		}
	}

	if err := uc.repo.DeleteClient(ctx, client); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &client.ID,
		Metadata: map[string]int{"cancelled_reservations": len(active)},
	})

	return nil
}
