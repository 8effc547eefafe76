package reservation

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/brasaviva/restaurant-api/internal/domain/reservation"
	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

// fakeRepo is an in-memory stand-in for the gorm repository. It mirrors the
// transactional behaviour of the real one: CreateReservation re-checks the
// conflict and applies the visit/loyalty reward, CancelReservation applies
// the penalty.
type fakeRepo struct {
	tables       map[uuid.UUID]*models.Table
	clients      map[uuid.UUID]*models.Client
	reservations map[uuid.UUID]*models.Reservation

	cancelCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tables:       make(map[uuid.UUID]*models.Table),
		clients:      make(map[uuid.UUID]*models.Client),
		reservations: make(map[uuid.UUID]*models.Reservation),
	}
}

func (f *fakeRepo) addTable(t models.Table) *models.Table {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = models.TableAvailable
	}
	f.tables[t.ID] = &t
	return &t
}

func (f *fakeRepo) addClient(c models.Client) *models.Client {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.clients[c.ID] = &c
	return &c
}

func (f *fakeRepo) addReservation(r models.Reservation) *models.Reservation {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = string(domain.StatusPending)
	}
	f.reservations[r.ID] = &r
	return &r
}

func (f *fakeRepo) GetTable(_ context.Context, id uuid.UUID) (*models.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) GetClient(_ context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) GetReservation(_ context.Context, id uuid.UUID) (*models.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) hasConflict(tableID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) bool {
	for _, r := range f.reservations {
		if r.TableID != tableID {
			continue
		}
		if r.Status == string(domain.StatusCancelled) {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if domain.Overlaps(r.StartTime, r.EndTime(), start, end) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) HasConflict(_ context.Context, tableID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	return f.hasConflict(tableID, start, end, excludeID), nil
}

func (f *fakeRepo) CreateReservation(_ context.Context, res *models.Reservation) error {
	if f.hasConflict(res.TableID, res.StartTime, res.EndTime(), nil) {
		return httperr.ErrBusiness("time_conflict")
	}

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	cp := *res
	f.reservations[res.ID] = &cp

	if c, ok := f.clients[res.ClientID]; ok {
		c.VisitCount++
		c.LoyaltyPoints += domain.CreationReward
	}
	return nil
}

func (f *fakeRepo) UpdateReservation(_ context.Context, res *models.Reservation) error {
	if f.hasConflict(res.TableID, res.StartTime, res.EndTime(), &res.ID) {
		return httperr.ErrBusiness("time_conflict")
	}
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeRepo) SaveReservation(_ context.Context, res *models.Reservation) error {
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeRepo) CancelReservation(_ context.Context, res *models.Reservation) error {
	f.cancelCalls++
	cp := *res
	f.reservations[res.ID] = &cp

	if c, ok := f.clients[res.ClientID]; ok {
		c.LoyaltyPoints -= domain.CancellationPenalty
	}
	return nil
}

func (f *fakeRepo) DeleteReservation(_ context.Context, res *models.Reservation) error {
	delete(f.reservations, res.ID)
	return nil
}

func (f *fakeRepo) ListAvailableTables(_ context.Context, partySize int) ([]models.Table, error) {
	out := make([]models.Table, 0)
	for _, t := range f.tables {
		if t.Status != models.TableAvailable {
			continue
		}
		if t.Capacity < partySize {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Capacity < out[j].Capacity
	})
	return out, nil
}

func (f *fakeRepo) CountActiveForTable(_ context.Context, tableID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.reservations {
		if r.TableID == tableID && domain.IsActive(domain.Status(r.Status)) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListActiveForClient(_ context.Context, clientID uuid.UUID) ([]models.Reservation, error) {
	out := make([]models.Reservation, 0)
	for _, r := range f.reservations {
		if r.ClientID == clientID && domain.IsActive(domain.Status(r.Status)) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteClient(_ context.Context, client *models.Client) error {
	delete(f.clients, client.ID)
	return nil
}

func (f *fakeRepo) DeleteTable(_ context.Context, table *models.Table) error {
	delete(f.tables, table.ID)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
