package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/brasaviva/restaurant-api/internal/domain/reservation"
	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ReservationGormRepository) GetTable(
	ctx context.Context,
	id uuid.UUID,
) (*models.Table, error) {

	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *ReservationGormRepository) GetClient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uuid.UUID,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// --------------------------------------------------
// Conflict detection
// --------------------------------------------------

// conflictQuery keeps the overlap predicate in one place: half-open
// intervals, touching endpoints allowed, cancelled reservations ignored.
func conflictQuery(
	tx *gorm.DB,
	tableID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) *gorm.DB {

	q := tx.Model(&models.Reservation{}).
		Where(
			"table_id = ? AND status <> ? AND start_time < ? AND start_time + make_interval(mins => duration_min) > ?",
			tableID,
			string(domain.StatusCancelled),
			end,
			start,
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	return q
}

func (r *ReservationGormRepository) HasConflict(
	ctx context.Context,
	tableID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {

	var count int64
	if err := conflictQuery(r.db.WithContext(ctx), tableID, start, end, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Reservation (create / mutate)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// The service already pre-checked; this locked re-check closes the
		// window between check and insert.
		var count int64
		if err := conflictQuery(tx, res.TableID, res.StartTime, res.EndTime(), nil).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		if err := tx.Create(res).Error; err != nil {
			return err
		}

		return tx.Model(&models.Client{}).
			Where("id = ?", res.ClientID).
			UpdateColumns(map[string]interface{}{
				"visit_count":    gorm.Expr("visit_count + 1"),
				"loyalty_points": gorm.Expr("loyalty_points + ?", domain.CreationReward),
			}).Error
	})
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := conflictQuery(tx, res.TableID, res.StartTime, res.EndTime(), &res.ID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Save(res).Error
	})
}

func (r *ReservationGormRepository) SaveReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationGormRepository) CancelReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Save(res).Error; err != nil {
			return err
		}

		// No-op when the client row is already gone.
		return tx.Model(&models.Client{}).
			Where("id = ?", res.ClientID).
			UpdateColumn(
				"loyalty_points",
				gorm.Expr("loyalty_points - ?", domain.CancellationPenalty),
			).Error
	})
}

func (r *ReservationGormRepository) DeleteReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Delete(res).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ReservationGormRepository) ListAvailableTables(
	ctx context.Context,
	partySize int,
) ([]models.Table, error) {

	var tables []models.Table
	if err := r.db.WithContext(ctx).
		Where("capacity >= ? AND status = ?", partySize, models.TableAvailable).
		Order("capacity ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	return tables, nil
}

// --------------------------------------------------
// Cross-entity lifecycle
// --------------------------------------------------

func (r *ReservationGormRepository) CountActiveForTable(
	ctx context.Context,
	tableID uuid.UUID,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where(
			"table_id = ? AND status NOT IN ?",
			tableID,
			[]string{string(domain.StatusCancelled), string(domain.StatusCompleted)},
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ReservationGormRepository) ListActiveForClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"client_id = ? AND status NOT IN ?",
			clientID,
			[]string{string(domain.StatusCancelled), string(domain.StatusCompleted)},
		).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationGormRepository) DeleteClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Delete(client).Error
}

func (r *ReservationGormRepository) DeleteTable(
	ctx context.Context,
	table *models.Table,
) error {
	return r.db.WithContext(ctx).Delete(table).Error
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
