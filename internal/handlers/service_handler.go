package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/models"
	"github.com/glowdesk/salon-scheduler/internal/storage"
)

type ServiceHandler struct {
	db       *gorm.DB
	uploader *storage.ImageUploader
}

func NewServiceHandler(db *gorm.DB, uploader *storage.ImageUploader) *ServiceHandler {
	return &ServiceHandler{db: db, uploader: uploader}
}

type serviceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	DurationMin     int `json:"duration_min" binding:"required,min=1"`
	BufferBeforeMin int `json:"buffer_before_min"`
	BufferAfterMin  int `json:"buffer_after_min"`

	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
	Active     *bool  `json:"active"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var services []models.Service
	q := h.db.Where("salon_id = ?", salonID).Order("name ASC")
	if c.Query("all") != "true" {
		q = q.Where("active = true")
	}
	if err := q.Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.BufferBeforeMin < 0 || req.BufferAfterMin < 0 {
		httperr.BadRequest(c, "invalid_buffer", "Buffers must be >= 0.")
		return
	}

	service := models.Service{
		SalonID:         salonID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMin:     req.DurationMin,
		BufferBeforeMin: req.BufferBeforeMin,
		BufferAfterMin:  req.BufferAfterMin,
		PriceCents:      req.PriceCents,
		Category:        req.Category,
		Active:          true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "create_failed", "Failed to create service.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.BufferBeforeMin < 0 || req.BufferAfterMin < 0 {
		httperr.BadRequest(c, "invalid_buffer", "Buffers must be >= 0.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.BufferBeforeMin = req.BufferBeforeMin
	service.BufferAfterMin = req.BufferAfterMin
	service.PriceCents = req.PriceCents
	service.Category = req.Category
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update service.")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// soft delete pelo flag; agendamentos antigos continuam apontando
	if err := h.db.Model(&models.Service{}).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Failed to delete service.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) UploadImage(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	serviceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if h.uploader == nil {
		httperr.Internal(c, "storage_unavailable", "Image storage is not configured.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Expected multipart field 'file'.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read uploaded file.")
		return
	}
	defer src.Close()

	key := fmt.Sprintf("salons/%d/services/%d.webp", salonID, service.ID)
	url, err := h.uploader.UploadWebP(c.Request.Context(), key, src)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Failed to store image.")
		return
	}

	service.ImageURL = url
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update service.")
		return
	}

	httpresp.OK(c, service)
}
