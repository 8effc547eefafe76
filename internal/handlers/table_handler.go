package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/httpresp"
	infraRepo "github.com/brasaviva/restaurant-api/internal/infra/repository"
	"github.com/brasaviva/restaurant-api/internal/middleware"
	"github.com/brasaviva/restaurant-api/internal/models"
	ucReservation "github.com/brasaviva/restaurant-api/internal/usecase/reservation"
)

type TableHandler struct {
	db       *gorm.DB
	deleteUC *ucReservation.DeleteTable
}

func NewTableHandler(db *gorm.DB, deleteUC *ucReservation.DeleteTable) *TableHandler {
	return &TableHandler{db: db, deleteUC: deleteUC}
}

// --------- Requests ---------

type CreateTableRequest struct {
	Number     string `json:"number" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1,max=20"`
	Location   string `json:"location"`
	Accessible bool   `json:"accessible"`
	HasView    bool   `json:"has_view"`
}

type UpdateTableRequest struct {
	Number     string `json:"number" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1,max=20"`
	Location   string `json:"location"`
	Accessible bool   `json:"accessible"`
	HasView    bool   `json:"has_view"`
	Status     string `json:"status" binding:"omitempty,oneof=available occupied maintenance"`
}

type PatchTableRequest struct {
	Number     *string `json:"number,omitempty"`
	Capacity   *int    `json:"capacity,omitempty" binding:"omitempty,min=1,max=20"`
	Location   *string `json:"location,omitempty"`
	Accessible *bool   `json:"accessible,omitempty"`
	HasView    *bool   `json:"has_view,omitempty"`
	Status     *string `json:"status,omitempty" binding:"omitempty,oneof=available occupied maintenance"`
}

var tableSortColumns = map[string]string{
	"number":         "number",
	"capacity":       "capacity",
	"average_rating": "average_rating",
	"created_at":     "created_at",
}

// --------- Handlers ---------

func (h *TableHandler) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	q := h.db.Model(&models.Table{})

	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("status = ?", status)
	}

	if location := strings.ToLower(strings.TrimSpace(c.Query("location"))); location != "" {
		q = q.Where("LOWER(location) = ?", location)
	}

	if minCap, err := strconv.Atoi(c.Query("min_capacity")); err == nil && minCap > 0 {
		q = q.Where("capacity >= ?", minCap)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_tables", "")
		return
	}

	var tables []models.Table
	if err := q.
		Order(parseSort(c, tableSortColumns, "number")).
		Limit(pageSize).
		Offset(offset).
		Find(&tables).Error; err != nil {

		httperr.Internal(c, "failed_to_list_tables", "")
		return
	}

	httpresp.Page(c, tables, total, page, pageSize)
}

func (h *TableHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	q := h.db
	if c.Query("include") == "reservations" {
		q = q.Preload("Reservations")
	}

	var table models.Table
	if err := q.First(&table, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "table_not_found", "")
			return
		}
		httperr.Internal(c, "failed_to_get_table", "")
		return
	}

	httpresp.OK(c, table)
}

func (h *TableHandler) Create(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var count int64
	h.db.Model(&models.Table{}).Where("number = ?", req.Number).Count(&count)
	if count > 0 {
		httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_table_number"))
		return
	}

	table := models.Table{
		Number:     req.Number,
		Capacity:   req.Capacity,
		Location:   req.Location,
		Accessible: req.Accessible,
		HasView:    req.HasView,
		Status:     models.TableAvailable,
	}
	if table.Location == "" {
		table.Location = "indoor"
	}

	if err := h.db.Create(&table).Error; err != nil {
		if infraRepo.IsUniqueViolation(err) {
			httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_table_number"))
			return
		}
		httperr.Internal(c, "failed_to_create_table", "")
		return
	}

	httpresp.Created(c, table)
}

func (h *TableHandler) Update(c *gin.Context) {
	table, ok := h.fetch(c)
	if !ok {
		return
	}

	var req UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Number != table.Number && h.numberTaken(req.Number) {
		httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_table_number"))
		return
	}

	table.Number = req.Number
	table.Capacity = req.Capacity
	table.Location = req.Location
	table.Accessible = req.Accessible
	table.HasView = req.HasView
	if req.Status != "" {
		table.Status = req.Status
	}

	if err := h.db.Save(table).Error; err != nil {
		if infraRepo.IsUniqueViolation(err) {
			httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_table_number"))
			return
		}
		httperr.Internal(c, "failed_to_update_table", "")
		return
	}

	httpresp.OK(c, table)
}

func (h *TableHandler) Patch(c *gin.Context) {
	table, ok := h.fetch(c)
	if !ok {
		return
	}

	var req PatchTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Number != nil && *req.Number != table.Number && h.numberTaken(*req.Number) {
		httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_table_number"))
		return
	}

	if req.Number != nil {
		table.Number = *req.Number
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.Accessible != nil {
		table.Accessible = *req.Accessible
	}
	if req.HasView != nil {
		table.HasView = *req.HasView
	}
	if req.Status != nil {
		table.Status = *req.Status
	}

	if err := h.db.Save(table).Error; err != nil {
		if infraRepo.IsUniqueViolation(err) {
			httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_table_number"))
			return
		}
		httperr.Internal(c, "failed_to_update_table", "")
		return
	}

	httpresp.OK(c, table)
}

func (h *TableHandler) Delete(c *gin.Context) {
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
		httperr.Internal(c, "failed_to_delete_table", "")
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

func (h *TableHandler) fetch(c *gin.Context) (*models.Table, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return nil, false
	}

	var table models.Table
	if err := h.db.First(&table, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "table_not_found", "")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_table", "")
		return nil, false
	}

	return &table, true
}

func (h *TableHandler) numberTaken(number string) bool {
	var count int64
	h.db.Model(&models.Table{}).Where("number = ?", number).Count(&count)
	return count > 0
}
