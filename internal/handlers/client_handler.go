package handlers

import (
	"net/http"
	"strings"
	"time"

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

type ClientHandler struct {
	db       *gorm.DB
	deleteUC *ucReservation.DeleteClient
}

func NewClientHandler(db *gorm.DB, deleteUC *ucReservation.DeleteClient) *ClientHandler {
	return &ClientHandler{db: db, deleteUC: deleteUC}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name        string     `json:"name" binding:"required"`
	Surname     string     `json:"surname" binding:"required"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email" binding:"required,email"`
	BirthDate   *time.Time `json:"birth_date"`
	Preferences string     `json:"preferences"`
	VIP         bool       `json:"vip"`
}

type UpdateClientRequest struct {
	Name          string     `json:"name" binding:"required"`
	Surname       string     `json:"surname" binding:"required"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email" binding:"required,email"`
	BirthDate     *time.Time `json:"birth_date"`
	Preferences   string     `json:"preferences"`
	VIP           bool       `json:"vip"`
	InternalNotes string     `json:"internal_notes"`
}

type PatchClientRequest struct {
	Name          *string    `json:"name,omitempty"`
	Surname       *string    `json:"surname,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Email         *string    `json:"email,omitempty" binding:"omitempty,email"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Preferences   *string    `json:"preferences,omitempty"`
	VIP           *bool      `json:"vip,omitempty"`
	InternalNotes *string    `json:"internal_notes,omitempty"`
}

var clientSortColumns = map[string]string{
	"name":           "name",
	"surname":        "surname",
	"email":          "email",
	"loyalty_points": "loyalty_points",
	"visit_count":    "visit_count",
	"created_at":     "created_at",
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	q := h.db.Model(&models.Client{})

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	if c.Query("vip") == "true" {
		q = q.Where("vip = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_count_clients", "")
		return
	}

	var clients []models.Client
	if err := q.
		Order(parseSort(c, clientSortColumns, "created_at")).
		Limit(pageSize).
		Offset(offset).
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "")
		return
	}

	httpresp.Page(c, clients, total, page, pageSize)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return
	}

	q := h.db
	if c.Query("include") == "reservations" {
		q = q.Preload("Reservations")
	}

	var client models.Client
	if err := q.First(&client, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.emailTaken(email) {
		httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_email"))
		return
	}

	client := models.Client{
		Name:        req.Name,
		Surname:     req.Surname,
		Phone:       req.Phone,
		Email:       email,
		BirthDate:   req.BirthDate,
		Preferences: req.Preferences,
		VIP:         req.VIP,
	}

	if err := h.db.Create(&client).Error; err != nil {
		if infraRepo.IsUniqueViolation(err) {
			httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_email"))
			return
		}
		httperr.Internal(c, "failed_to_create_client", "")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.fetch(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != client.Email && h.emailTaken(email) {
		httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_email"))
		return
	}

	client.Name = req.Name
	client.Surname = req.Surname
	client.Phone = req.Phone
	client.Email = email
	client.BirthDate = req.BirthDate
	client.Preferences = req.Preferences
	client.VIP = req.VIP
	client.InternalNotes = req.InternalNotes

	if err := h.db.Save(client).Error; err != nil {
		if infraRepo.IsUniqueViolation(err) {
			httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_email"))
			return
		}
		httperr.Internal(c, "failed_to_update_client", "")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Patch(c *gin.Context) {
	client, ok := h.fetch(c)
	if !ok {
		return
	}

	var req PatchClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != client.Email && h.emailTaken(email) {
			httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_email"))
			return
		}
		client.Email = email
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Surname != nil {
		client.Surname = *req.Surname
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		client.BirthDate = req.BirthDate
	}
	if req.Preferences != nil {
		client.Preferences = *req.Preferences
	}
	if req.VIP != nil {
		client.VIP = *req.VIP
	}
	if req.InternalNotes != nil {
		client.InternalNotes = *req.InternalNotes
	}

	if err := h.db.Save(client).Error; err != nil {
		if infraRepo.IsUniqueViolation(err) {
			httperr.WriteBusiness(c, httperr.ErrBusiness("duplicate_email"))
			return
		}
		httperr.Internal(c, "failed_to_update_client", "")
		return
	}

	httpresp.OK(c, client)
}

// Delete removes the client and cancels their active reservations first.
func (h *ClientHandler) Delete(c *gin.Context) {
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
		httperr.Internal(c, "failed_to_delete_client", "")
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

func (h *ClientHandler) fetch(c *gin.Context) (*models.Client, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "")
		return nil, false
	}

	var client models.Client
	if err := h.db.First(&client, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_client", "")
		return nil, false
	}

	return &client, true
}

func (h *ClientHandler) emailTaken(email string) bool {
	var count int64
	h.db.Model(&models.Client{}).Where("email = ?", email).Count(&count)
	return count > 0
}
