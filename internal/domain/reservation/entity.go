package reservation

import (
	"time"

	"github.com/brasaviva/restaurant-api/internal/models"
)

// Loyalty accounting applied by the reservation lifecycle. The balance has
// no floor: repeated cancellations may push it negative.
const (
	CreationReward      = 10
	CancellationPenalty = 5
)

// ===============================
// Domain Actions
// ===============================

func Cancel(res *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(res.Status)); err != nil {
		return err
	}

	res.Status = string(StatusCancelled)
	res.CancelledAt = &now
	return nil
}

// ForceCancel skips state validation. Used when a client is deleted and all
// of their active reservations are swept to cancelled.
func ForceCancel(res *models.Reservation, now time.Time) {
	res.Status = string(StatusCancelled)
	res.CancelledAt = &now
}
