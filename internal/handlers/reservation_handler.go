package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brasaviva/restaurant-api/internal/dto"
	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/httpresp"
	"github.com/brasaviva/restaurant-api/internal/middleware"
	"github.com/brasaviva/restaurant-api/internal/models"
	ucReservation "github.com/brasaviva/restaurant-api/internal/usecase/reservation"
)

type ReservationHandler struct {
	db *gorm.DB

	createUC       *ucReservation.CreateReservation
	updateUC       *ucReservation.UpdateReservation
	patchUC        *ucReservation.PatchReservation
	cancelUC       *ucReservation.CancelReservation
	deleteUC       *ucReservation.DeleteReservation
	availabilityUC *ucReservation.FindAvailableTables
}

func NewReservationHandler(
	db *gorm.DB,
	createUC *ucReservation.CreateReservation,
	updateUC *ucReservation.UpdateReservation,
	patchUC *ucReservation.PatchReservation,
	cancelUC *ucReservation.CancelReservation,
	deleteUC *ucReservation.DeleteReservation,
	availabilityUC *ucReservation.FindAvailableTables,
) *ReservationHandler {
	return &ReservationHandler{
		db:             db,
		createUC:       createUC,
		updateUC:       updateUC,
		patchUC:        patchUC,
		cancelUC:       cancelUC,
		deleteUC:       deleteUC,
		availabilityUC: availabilityUC,
	}
}

// --------- Requests ---------

// Numeric fields carry no binding constraints on purpose: a zero or
// negative duration must reach the use case so the caller gets the
// classified invalid_duration error, not a generic binding failure.
type CreateReservationRequest struct {
	TableID     uuid.UUID `json:"table_id" binding:"required"`
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	DurationMin int       `json:"duration_min"`
	PartySize   int       `json:"party_size"`
	Notes       string    `json:"notes"`
	SpecialMenu bool      `json:"special_menu"`
}

type UpdateReservationRequest struct {
	TableID     uuid.UUID `json:"table_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	DurationMin int       `json:"duration_min"`
	PartySize   int       `json:"party_size"`
	Notes       string    `json:"notes"`
	SpecialMenu bool      `json:"special_menu"`
}

type PatchReservationRequest struct {
	TableID     *uuid.UUID `json:"table_id,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	DurationMin *int       `json:"duration_min,omitempty"`
	PartySize   *int       `json:"party_size,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	SpecialMenu *bool      `json:"special_menu,omitempty"`
}

var reservationSortColumns = map[string]string{
	"start_time": "start_time",
	"created_at": "created_at",
	"status":     "status",
}

// --------- Handlers ---------

func (h *ReservationHandler) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	q := h.db.Model(&models.Reservation{})

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "")
			return
		}
		q = q.Where(
			"start_time >= ? AND start_time < ?",
			date, date.Add(24*time.Hour),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_reservations", "")
		return
	}

	var reservations []models.Reservation
	if err := q.
		Preload("Table").
		Preload("Client").
		Order(parseSort(c, reservationSortColumns, "start_time")).
		Limit(pageSize).
		Offset(offset).
		Find(&reservations).Error; err != nil {

		httperr.Internal(c, "failed_to_list_reservations", "")
		return
	}

	rows := make([]dto.ReservationListDTO, 0, len(reservations))
	for i := range reservations {
		rows = append(rows, dto.NewReservationListDTO(&reservations[i]))
	}

	httpresp.Page(c, rows, total, page, pageSize)
}

func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var res models.Reservation
	if err := h.db.
		Preload("Table").
		Preload("Client").
		First(&res, "id = ?", id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "reservation_not_found", "")
			return
		}
		httperr.Internal(c, "failed_to_get_reservation", "")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	res, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		ActorID:     actorID,
		TableID:     req.TableID,
		ClientID:    req.ClientID,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		PartySize:   req.PartySize,
		Notes:       req.Notes,
		SpecialMenu: req.SpecialMenu,
	})
	if err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_create_reservation", "")
		return
	}

	httpresp.Created(c, res)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	res, err := h.updateUC.Execute(c.Request.Context(), id, ucReservation.UpdateReservationInput{
		ActorID:     actorID,
		TableID:     req.TableID,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		PartySize:   req.PartySize,
		Notes:       req.Notes,
		SpecialMenu: req.SpecialMenu,
	})
	if err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_reservation", "")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	var req PatchReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	res, err := h.patchUC.Execute(c.Request.Context(), id, ucReservation.PatchReservationInput{
		ActorID:     actorID,
		TableID:     req.TableID,
		StartTime:   req.StartTime,
		DurationMin: req.DurationMin,
		PartySize:   req.PartySize,
		Notes:       req.Notes,
		SpecialMenu: req.SpecialMenu,
	})
	if err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_update_reservation", "")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	res, err := h.cancelUC.Execute(c.Request.Context(), actorID, id)
	if err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_cancel_reservation", "")
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	if err := h.deleteUC.Execute(c.Request.Context(), actorID, id); err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_delete_reservation", "")
		return
	}

	c.Status(http.StatusNoContent)
}

// Availability lists the tables free for a party and time window, smallest
// sufficient capacity first.
func (h *ReservationHandler) Availability(c *gin.Context) {
	partySize, err := strconv.Atoi(c.Query("party_size"))
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "party_size must be an integer")
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "start must be RFC3339")
		return
	}

	durationMin, err := strconv.Atoi(c.Query("duration_min"))
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "duration_min must be an integer")
		return
	}

	tables, err := h.availabilityUC.Execute(c.Request.Context(), ucReservation.FindAvailableTablesInput{
		PartySize:   partySize,
		StartTime:   start,
		DurationMin: durationMin,
	})
	if err != nil {
		if httperr.WriteBusiness(c, err) {
			return
		}
		httperr.Internal(c, "failed_to_query_availability", "")
		return
	}

	httpresp.List(c, tables)
}
