package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonops/salon-manager/internal/domain/appointment"
	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/httpresp"
	"github.com/salonops/salon-manager/internal/models"
	ucappointment "github.com/salonops/salon-manager/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated client portal: browsing
// locations and services, checking availability and booking.
type PublicHandler struct {
	db           *gorm.DB
	create       *ucappointment.CreateAppointment
	availability *ucappointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	create *ucappointment.CreateAppointment,
	availability *ucappointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		create:       create,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// LOCATIONS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListLocations(c *gin.Context) {
	var locations []models.Location
	err := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&locations).Error
	if err != nil {
		httperr.Internal(c, "locations_list_failed", "Could not list locations.")
		return
	}

	httpresp.List(c, locations)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_location_id", "Invalid location id.")
		return
	}

	var location models.Location
	if err := h.db.First(&location, locationID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeLocationNotFound, "Location not found.")
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Table("services").
		Select("services.*, location_services.price AS local_price").
		Joins("JOIN location_services ON location_services.service_id = services.id").
		Where("location_services.location_id = ?", locationID).
		Where("location_services.active = ? AND services.active = ?", true, true)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(services.name) LIKE ? OR LOWER(services.description) LIKE ?", like, like)
	}

	type serviceRow struct {
		models.Service
		LocalPrice *float64 `json:"local_price"`
	}

	var rows []serviceRow
	if err := q.Order("services.name ASC").Scan(&rows).Error; err != nil {
		httperr.Internal(c, "services_list_failed", "Could not list services.")
		return
	}

	// Resolve the effective price before handing rows to the portal.
	out := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		price := r.Price
		if r.LocalPrice != nil {
			price = *r.LocalPrice
		}
		out = append(out, gin.H{
			"id":           r.ID,
			"name":         r.Name,
			"description":  r.Description,
			"duration_min": r.DurationMin,
			"price":        price,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
}

////////////////////////////////////////////////////////
// STAFF
////////////////////////////////////////////////////////

func (h *PublicHandler) ListStaff(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_location_id", "Invalid location id.")
		return
	}

	serviceID, _ := strconv.Atoi(c.Query("service_id"))

	q := h.db.WithContext(c.Request.Context()).
		Table("staff_members").
		Select("DISTINCT staff_members.*").
		Joins("JOIN staff_locations ON staff_locations.staff_id = staff_members.id").
		Where("staff_locations.location_id = ?", locationID).
		Where("staff_members.active = ?", true)

	if serviceID > 0 {
		q = q.Joins("JOIN staff_services ON staff_services.staff_id = staff_members.id").
			Where("staff_services.service_id = ?", serviceID)
	}

	var staff []models.StaffMember
	if err := q.Order("staff_members.name ASC").Scan(&staff).Error; err != nil {
		httperr.Internal(c, "staff_list_failed", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	locationID, err1 := strconv.Atoi(c.Param("id"))
	staffID, err2 := strconv.Atoi(c.Query("staff_id"))
	serviceID, err3 := strconv.Atoi(c.Query("service_id"))
	date, err4 := time.Parse("2006-01-02", c.Query("date"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or invalid availability parameters.")
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

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	LocationID uint `json:"location_id" binding:"required"`
	StaffID    uint `json:"staff_id" binding:"required"`
	ServiceID  uint `json:"service_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
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

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}
