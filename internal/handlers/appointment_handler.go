package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/salonops/salon-manager/internal/domain/appointment"
	"github.com/salonops/salon-manager/internal/middleware"
	ucappointment "github.com/salonops/salon-manager/internal/usecase/appointment"
)

type AppointmentHandler struct {
	create       *ucappointment.CreateAppointment
	cancel       *ucappointment.CancelAppointment
	complete     *ucappointment.CompleteAppointment
	availability *ucappointment.GetAvailability
	listByDate   *ucappointment.ListAppointmentsByDate
	listByMonth  *ucappointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	cancel *ucappointment.CancelAppointment,
	complete *ucappointment.CompleteAppointment,
	availability *ucappointment.GetAvailability,
	listByDate *ucappointment.ListAppointmentsByDate,
	listByMonth *ucappointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		cancel:       cancel,
		complete:     complete,
		availability: availability,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	LocationID uint `json:"location_id" binding:"required"`
	StaffID    uint `json:"staff_id" binding:"required"`
	ServiceID  uint `json:"service_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

type CompleteAppointmentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		LocationID:  req.LocationID,
		StaffID:     req.StaffID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	locationID, err1 := strconv.Atoi(c.Query("location_id"))
	staffID, err2 := strconv.Atoi(c.Query("staff_id"))
	serviceID, err3 := strconv.Atoi(c.Query("service_id"))
	date, err4 := time.Parse("2006-01-02", c.Query("date"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		LocationID: uint(locationID),
		StaffID:    uint(staffID),
		ServiceID:  uint(serviceID),
		Date:       date,
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_get_availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	staffID, ok := contextStaffID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no_staff_profile_linked"})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), staffID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_appointments"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	staffID, ok := contextStaffID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no_staff_profile_linked"})
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), staffID, year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_appointments"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	staffID, ok := contextStaffID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no_staff_profile_linked"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_appointment_id"})
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), staffID, uint(id))
	if err != nil {
		writeBusinessError(c, err, "failed_to_cancel_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	staffID, ok := contextStaffID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no_staff_profile_linked"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_appointment_id"})
		return
	}

	var req CompleteAppointmentRequest
	// Body is optional; default the payment method when absent.
	_ = c.ShouldBindJSON(&req)
	if req.PaymentMethod == "" {
		req.PaymentMethod = "cash"
	}

	ap, tr, err := h.complete.Execute(c.Request.Context(), staffID, uint(id), req.PaymentMethod)
	if err != nil {
		writeBusinessError(c, err, "failed_to_complete_appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": ap,
		"transaction": tr,
	})
}

func contextStaffID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get(middleware.ContextStaffID); ok {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}
	return 0, false
}
