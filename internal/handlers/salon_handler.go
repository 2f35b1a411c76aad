package handlers

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/models"
	"github.com/glowdesk/salon-scheduler/internal/storage"
	"github.com/glowdesk/salon-scheduler/internal/timezone"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type SalonHandler struct {
	db       *gorm.DB
	uploader *storage.ImageUploader
}

func NewSalonHandler(db *gorm.DB, uploader *storage.ImageUploader) *SalonHandler {
	return &SalonHandler{db: db, uploader: uploader}
}

func (h *SalonHandler) GetSettings(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	httpresp.OK(c, salon)
}

type updateSalonRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	ThemeColor        *string `json:"theme_color"`
}

// UpdateSettings faz patch parcial; campo ausente não é tocado.
func (h *SalonHandler) UpdateSettings(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var req updateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Expected an IANA timezone name.")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Must be >= 0.")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.ThemeColor != nil {
		if *req.ThemeColor != "" && !hexColorRe.MatchString(*req.ThemeColor) {
			httperr.BadRequest(c, "invalid_theme_color", "Expected a hex color like #7C3AED.")
			return
		}
		salon.ThemeColor = *req.ThemeColor
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update salon.")
		return
	}

	httpresp.OK(c, salon)
}

// UploadLogo recebe multipart "file", converte para WebP e guarda a URL.
func (h *SalonHandler) UploadLogo(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	if h.uploader == nil {
		httperr.Internal(c, "storage_unavailable", "Image storage is not configured.")
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

	key := fmt.Sprintf("salons/%d/logo.webp", salonID)
	url, err := h.uploader.UploadWebP(c.Request.Context(), key, src)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Failed to store image.")
		return
	}

	if err := h.db.Model(&models.Salon{}).
		Where("id = ?", salonID).
		Update("logo_url", url).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update salon.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
