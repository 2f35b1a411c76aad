package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowdesk/salon-scheduler/internal/domain/appointment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/models"
	usecase "github.com/glowdesk/salon-scheduler/internal/usecase/appointment"
)

// PublicHandler expõe a vitrine de agendamento por slug, sem login.
// Cada rota resolve o salão pelo slug; nada aqui enxerga outro salão.
type PublicHandler struct {
	db *gorm.DB

	availability *usecase.GetAvailability
	create       *usecase.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	availability *usecase.GetAvailability,
	create *usecase.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
	}
}

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.
		Where("slug = ?", c.Param("slug")).
		First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

// GetSalon devolve os dados de vitrine, incluindo cor do tema e logo.
func (h *PublicHandler) GetSalon(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        salon.Name,
		"slug":        salon.Slug,
		"phone":       salon.Phone,
		"address":     salon.Address,
		"theme_color": salon.ThemeColor,
		"logo_url":    salon.LogoURL,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var staff []models.User
	if err := h.db.
		Select("id", "name").
		Where("salon_id = ?", salon.ID).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list staff.")
		return
	}

	out := make([]gin.H, 0, len(staff))
	for _, u := range staff {
		out = append(out, gin.H{"id": u.ID, "name": u.Name})
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) GetAvailability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	in := domain.AvailabilityInput{
		SalonID:   salon.ID,
		StaffID:   parseUintQuery(c, "staff_id"),
		ServiceID: parseUintQuery(c, "service_id"),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := parseDateInSalon(salon, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Expected YYYY-MM-DD.")
			return
		}
		in.Date = date
	}

	slots, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.List(c, slots)
}

type publicAppointmentRequest struct {
	StaffID   uint `json:"staff_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req publicAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		SalonID:     salon.ID,
		StaffID:     req.StaffID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}
