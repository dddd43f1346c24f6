package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ucrelationship "github.com/salonops/salon-manager/internal/usecase/relationship"
)

type SyncHandler struct {
	sync *ucrelationship.Synchronizer
}

func NewSyncHandler(sync *ucrelationship.Synchronizer) *SyncHandler {
	return &SyncHandler{sync: sync}
}

func (h *SyncHandler) SyncServiceLocations(c *gin.Context) {
	result, err := h.sync.SyncServiceLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_sync_service_locations"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SyncHandler) ServiceLocationStats(c *gin.Context) {
	stats, err := h.sync.ServiceLocationStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service_location_stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *SyncHandler) SyncStaffLocations(c *gin.Context) {
	result, err := h.sync.SyncStaffLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_sync_staff_locations"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SyncHandler) StaffLocationStats(c *gin.Context) {
	stats, err := h.sync.StaffLocationStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_staff_location_stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
