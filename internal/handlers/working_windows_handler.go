package handlers

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-scheduler/internal/cache"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/models"
)

var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type WorkingWindowsHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewWorkingWindowsHandler(db *gorm.DB, c *cache.AvailabilityCache) *WorkingWindowsHandler {
	return &WorkingWindowsHandler{db: db, cache: c}
}

func (h *WorkingWindowsHandler) List(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	staffID := parseUintQuery(c, "staff_id")
	if staffID == 0 {
		staffID = userID
	}

	var windows []models.WorkingWindow
	if err := h.db.
		Where("staff_id = ?", staffID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list working windows.")
		return
	}

	httpresp.List(c, windows)
}

type workingWindowRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	EffectiveFrom  string  `json:"effective_from"` // YYYY-MM-DD
	EffectiveUntil *string `json:"effective_until"`

	Blocked bool `json:"blocked"`
}

type replaceWindowsRequest struct {
	Windows []workingWindowRequest `json:"windows"`
}

// Replace troca o conjunto inteiro de janelas do profissional numa
// transação. O app sempre manda a semana completa, então substituição
// total evita merge parcial inconsistente.
func (h *WorkingWindowsHandler) Replace(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	staffID := parseUintQuery(c, "staff_id")
	if staffID == 0 {
		staffID = userID
	}

	var req replaceWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	windows := make([]models.WorkingWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Weekday must be 0 (Sunday) to 6.")
			return
		}
		if !hhmmRe.MatchString(w.StartTime) || !hhmmRe.MatchString(w.EndTime) {
			httperr.BadRequest(c, "invalid_time", "Expected HH:mm times.")
			return
		}

		win := models.WorkingWindow{
			StaffID:   staffID,
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Blocked:   w.Blocked,
		}

		if w.EffectiveFrom != "" {
			from, err := time.Parse("2006-01-02", w.EffectiveFrom)
			if err != nil {
				httperr.BadRequest(c, "invalid_date", "effective_from must be YYYY-MM-DD.")
				return
			}
			win.EffectiveFrom = from
		}
		if w.EffectiveUntil != nil && *w.EffectiveUntil != "" {
			until, err := time.Parse("2006-01-02", *w.EffectiveUntil)
			if err != nil {
				httperr.BadRequest(c, "invalid_date", "effective_until must be YYYY-MM-DD.")
				return
			}
			win.EffectiveUntil = &until
		}

		windows = append(windows, win)
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ?", staffID).
			Delete(&models.WorkingWindow{}).Error; err != nil {
			return err
		}
		if len(windows) == 0 {
			return nil
		}
		return tx.Create(&windows).Error
	})
	if err != nil {
		httperr.Internal(c, "update_failed", "Failed to replace working windows.")
		return
	}

	h.cache.InvalidateStaff(c.Request.Context(), staffID)

	httpresp.List(c, windows)
}
