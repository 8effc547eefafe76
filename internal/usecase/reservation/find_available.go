package reservation

import (
	"context"
	"time"

	domain "github.com/brasaviva/restaurant-api/internal/domain/reservation"
	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type FindAvailableTablesInput struct {
	PartySize   int
	StartTime   time.Time
	DurationMin int
}

// ======================================================
// USE CASE
// ======================================================

type FindAvailableTables struct {
	repo domain.Repository
}

func NewFindAvailableTables(repo domain.Repository) *FindAvailableTables {
	return &FindAvailableTables{repo: repo}
}

// Execute returns the tables free for the requested window, smallest
// sufficient capacity first, so callers can seat parties best-fit. One
// conflict check per candidate table; fine at restaurant scale.
func (uc *FindAvailableTables) Execute(
	ctx context.Context,
	in FindAvailableTablesInput,
) ([]models.Table, error) {

	if in.PartySize < 1 {
		return nil, httperr.ErrBusiness("invalid_argument")
	}
	if in.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_argument")
	}
	if in.StartTime.Before(time.Now().UTC()) {
		return nil, httperr.ErrBusiness("invalid_argument")
	}

	end := in.StartTime.Add(time.Duration(in.DurationMin) * time.Minute)

	candidates, err := uc.repo.ListAvailableTables(ctx, in.PartySize)
	if err != nil {
		return nil, err
	}

	available := make([]models.Table, 0, len(candidates))
	for _, table := range candidates {
		conflict, err := uc.repo.HasConflict(ctx, table.ID, in.StartTime, end, nil)
		if err != nil {
			return nil, err
		}
		if !conflict {
			available = append(available, table)
		}
	}

	return available, nil
}
