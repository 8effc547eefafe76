package reservation

import "github.com/brasaviva/restaurant-api/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsActive reports whether a reservation still blocks its table and its
// client. Cancelled and completed reservations are settled history.
func IsActive(s Status) bool {
	return s != StatusCancelled && s != StatusCompleted
}

// ===============================
// Validations
// ===============================

// CanCancel rejects a second cancellation; completed reservations may still
// be cancelled and take the loyalty penalty.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("already_cancelled")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
