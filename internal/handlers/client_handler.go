package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var clients []models.Client
	q := h.db.Where("salon_id = ?", salonID).Order("name ASC")
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if err := q.Limit(200).Find(&clients).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list clients.")
		return
	}

	httpresp.List(c, clients)
}

type clientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client := models.Client{
		SalonID: salonID,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:   req.Notes,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "create_failed", "Failed to create client.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND salon_id = ?", clientID, salonID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = strings.ToLower(strings.TrimSpace(req.Email))
	client.Notes = req.Notes

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update client.")
		return
	}

	httpresp.OK(c, client)
}

// GetHistory lista os agendamentos do cliente, mais recentes primeiro.
func (h *ClientHandler) GetHistory(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Service").
		Where("salon_id = ? AND client_id = ?", salonID, clientID).
		Order("start_time DESC").
		Limit(100).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to load history.")
		return
	}

	httpresp.List(c, appointments)
}
