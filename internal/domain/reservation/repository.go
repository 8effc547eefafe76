package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brasaviva/restaurant-api/internal/models"
)

type Repository interface {
	// -------- Lookups --------
	GetTable(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Table, error)

	GetClient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Client, error)

	GetReservation(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Reservation, error)

	// -------- Conflict detection --------
	// HasConflict reports whether any non-cancelled reservation on the table
	// intersects [start, end), optionally ignoring one reservation id so an
	// update does not conflict with itself.
	HasConflict(
		ctx context.Context,
		tableID uuid.UUID,
		start time.Time,
		end time.Time,
		excludeID *uuid.UUID,
	) (bool, error)

	// -------- Reservation (create / mutate) --------
	// CreateReservation re-checks the conflict under a row lock, inserts the
	// reservation and applies the client's visit/loyalty reward in a single
	// transaction.
	CreateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// UpdateReservation re-checks the conflict for the reservation's own
	// interval (excluding itself) and saves, in a single transaction. Only
	// for saves that move the reservation's table, interval or party size.
	UpdateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// SaveReservation persists without any conflict guard. Used for saves
	// that leave the schedule untouched: notes-only edits, status sweeps.
	SaveReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// CancelReservation saves the cancelled reservation and applies the
	// loyalty penalty to its client, if the client still exists, in a single
	// transaction.
	CancelReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	DeleteReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// -------- Availability --------
	// ListAvailableTables returns operationally available tables seating at
	// least partySize, smallest capacity first.
	ListAvailableTables(
		ctx context.Context,
		partySize int,
	) ([]models.Table, error)

	// -------- Cross-entity lifecycle --------
	CountActiveForTable(
		ctx context.Context,
		tableID uuid.UUID,
	) (int64, error)

	ListActiveForClient(
		ctx context.Context,
		clientID uuid.UUID,
	) ([]models.Reservation, error)

	DeleteClient(
		ctx context.Context,
		client *models.Client,
	) error

	DeleteTable(
		ctx context.Context,
		table *models.Table,
	) error
}
