package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/analytics"
)

type AnalyticsHandler struct {
	db        *gorm.DB
	inventory *analytics.InventoryAggregator
}

func NewAnalyticsHandler(db *gorm.DB, inventory *analytics.InventoryAggregator) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, inventory: inventory}
}

func (h *AnalyticsHandler) Inventory(c *gin.Context) {
	report, err := h.inventory.Report(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_build_inventory_report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_from_date"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_to_date"})
			return
		}
		// Include the whole end day.
		to = parsed.AddDate(0, 0, 1)
	}

	report, err := analytics.RevenueForPeriod(c.Request.Context(), h.db, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_build_revenue_report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
