package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowdesk/salon-scheduler/internal/domain/appointment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/models"
	usecase "github.com/glowdesk/salon-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db *gorm.DB

	availability *usecase.GetAvailability
	create       *usecase.CreateAppointment
	reschedule   *usecase.RescheduleAppointment
	cancel       *usecase.CancelAppointment
	complete     *usecase.CompleteAppointment
	delete       *usecase.DeleteAppointment
	listByDate   *usecase.ListAppointmentsByDate
	listByMonth  *usecase.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	availability *usecase.GetAvailability,
	create *usecase.CreateAppointment,
	reschedule *usecase.RescheduleAppointment,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	delete_ *usecase.DeleteAppointment,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		availability: availability,
		create:       create,
		reschedule:   reschedule,
		cancel:       cancel,
		complete:     complete,
		delete:       delete_,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// DISPONIBILIDADE
// ======================================================

// GetAvailability responde GET /availability?staff_id=&date=&service_id=
// [&exclude_booking_id=]. Sem staff ou data devolve a grade cheia.
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	staffID := parseUintQuery(c, "staff_id")
	serviceID := parseUintQuery(c, "service_id")
	excludeID := parseUintQuery(c, "exclude_booking_id")

	in := domain.AvailabilityInput{
		SalonID:          salonID,
		StaffID:          staffID,
		ServiceID:        serviceID,
		ExcludeBookingID: excludeID,
	}

	if dateStr := c.Query("date"); dateStr != "" {
		salon, err := h.loadSalon(salonID)
		if err != nil {
			httperr.Internal(c, "salon_not_found", "Salon not found.")
			return
		}
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

// ======================================================
// CRUD
// ======================================================

type createAppointmentRequest struct {
	StaffID uint `json:"staff_id"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ServiceID uint `json:"service_id" binding:"required"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	staffID := req.StaffID
	if staffID == 0 {
		staffID = userID
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		SalonID:     salonID,
		StaffID:     staffID,
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

	c.JSON(http.StatusCreated, ap)
}

type rescheduleAppointmentRequest struct {
	ServiceID uint    `json:"service_id"`
	Date      string  `json:"date" binding:"required"`
	Time      string  `json:"time" binding:"required"`
	Notes     *string `json:"notes"`
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	apID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req rescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleAppointmentInput{
		SalonID:       salonID,
		StaffID:       userID,
		AppointmentID: apID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	apID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), salonID, userID, apID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	apID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), salonID, userID, apID)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// Delete devolve 204 também quando o agendamento já não existe.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	apID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), salonID, userID, apID); err != nil {
		writeUsecaseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// LISTAGENS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	staffID := parseUintQuery(c, "staff_id")
	if staffID == 0 {
		staffID = userID
	}

	salon, err := h.loadSalon(salonID)
	if err != nil {
		httperr.Internal(c, "salon_not_found", "Salon not found.")
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Expected YYYY-MM-DD.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), staffID, salonID, date)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)
	userID := c.GetUint(middleware.ContextUserID)

	staffID := parseUintQuery(c, "staff_id")
	if staffID == 0 {
		staffID = userID
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Expected year and month query params.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), staffID, salonID, year, month)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// Helpers
// ======================================================

func (h *AppointmentHandler) loadSalon(salonID uint) (*models.Salon, error) {
	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func parseUintQuery(c *gin.Context, key string) uint {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Expected a numeric id.")
		return 0, false
	}
	return uint(v), true
}
