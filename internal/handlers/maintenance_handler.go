package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	uclocation "github.com/salonops/salon-manager/internal/usecase/location"
)

type MaintenanceHandler struct {
	deduper *uclocation.Deduper
}

func NewMaintenanceHandler(deduper *uclocation.Deduper) *MaintenanceHandler {
	return &MaintenanceHandler{deduper: deduper}
}

// CleanupLocations deletes duplicate locations that nothing references.
// Duplicates that still carry appointments, stock or staff are reported
// but left in place; migrate their references first.
func (h *MaintenanceHandler) CleanupLocations(c *gin.Context) {
	result, err := h.deduper.Cleanup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_cleanup_locations"})
		return
	}

	c.JSON(http.StatusOK, result)
}

type MigrateLocationRefsRequest struct {
	FromID uint `json:"from_id" binding:"required"`
	ToID   uint `json:"to_id" binding:"required"`
}

func (h *MaintenanceHandler) MigrateLocationRefs(c *gin.Context) {
	var req MigrateLocationRefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.deduper.MigrateRefs(c.Request.Context(), req.FromID, req.ToID)
	if err != nil {
		writeBusinessError(c, err, "failed_to_migrate_location_refs")
		return
	}

	c.JSON(http.StatusOK, result)
}

// FixLocations migrates every duplicate group onto its preferred
// location, deletes the emptied duplicates and backfills name keys.
func (h *MaintenanceHandler) FixLocations(c *gin.Context) {
	result, err := h.deduper.Fix(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_fix_locations"})
		return
	}

	c.JSON(http.StatusOK, result)
}
