package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/models"
)

type LocationHandler struct {
	db *gorm.DB
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

// --------- Requests ---------

type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Kind     string `json:"kind"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

type UpdateLocationRequest struct {
	Name     *string `json:"name,omitempty"`
	Kind     *string `json:"kind,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *LocationHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Order("id ASC")
	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var locations []models.Location
	if err := q.Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_locations"})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	kind := req.Kind
	if kind == "" {
		kind = models.LocationKindStore
	}

	loc := models.Location{
		Name:     strings.TrimSpace(req.Name),
		Kind:     kind,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Timezone: req.Timezone,
		Active:   true,
	}
	loc.SetNameKey()

	// The unique key on the normalized name is what keeps one row per
	// real-world location; surface the violation as a conflict.
	var count int64
	h.db.Model(&models.Location{}).Where("name_key = ?", *loc.NameKey).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "location_name_exists", "A location with this name already exists.")
		return
	}

	if err := h.db.Create(&loc).Error; err != nil {
		// The pre-check above races with concurrent inserts; the unique
		// index on name_key is the real guard.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			httperr.Conflict(c, "location_name_exists", "A location with this name already exists.")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_location"})
		return
	}

	c.JSON(http.StatusCreated, loc)
}

func (h *LocationHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var loc models.Location
	if err := h.db.First(&loc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "location_not_found", "Location not found.")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_location"})
		return
	}

	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var loc models.Location
	if err := h.db.First(&loc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "location_not_found", "Location not found.")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_location"})
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		loc.Name = strings.TrimSpace(*req.Name)
		loc.SetNameKey()

		var count int64
		h.db.Model(&models.Location{}).
			Where("name_key = ? AND id != ?", *loc.NameKey, loc.ID).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, "location_name_exists", "A location with this name already exists.")
			return
		}
	}
	if req.Kind != nil {
		loc.Kind = *req.Kind
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.City != nil {
		loc.City = *req.City
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Timezone != nil {
		loc.Timezone = *req.Timezone
	}
	if req.Active != nil {
		loc.Active = *req.Active
	}

	if err := h.db.Save(&loc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_location"})
		return
	}

	c.JSON(http.StatusOK, loc)
}

// Delete soft-deletes: locations referenced by staff, stock or
// appointments only ever go inactive.
func (h *LocationHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var loc models.Location
	if err := h.db.First(&loc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "location_not_found", "Location not found.")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_location"})
		return
	}

	if err := h.db.Model(&loc).Update("active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": loc.ID})
}
