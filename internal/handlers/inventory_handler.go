package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	invdomain "github.com/salonops/salon-manager/internal/domain/inventory"
	"github.com/salonops/salon-manager/internal/middleware"
	ucinventory "github.com/salonops/salon-manager/internal/usecase/inventory"
)

type InventoryHandler struct {
	adjust   *ucinventory.AdjustStock
	transfer *ucinventory.TransferStock
	repair   *ucinventory.RepairStock
	repo     invdomain.Repository
}

func NewInventoryHandler(
	adjust *ucinventory.AdjustStock,
	transfer *ucinventory.TransferStock,
	repair *ucinventory.RepairStock,
	repo invdomain.Repository,
) *InventoryHandler {
	return &InventoryHandler{
		adjust:   adjust,
		transfer: transfer,
		repair:   repair,
		repo:     repo,
	}
}

// --------- Requests ---------

type AdjustStockRequest struct {
	ProductID      uint   `json:"productId" binding:"required"`
	LocationID     uint   `json:"locationId" binding:"required"`
	AdjustmentType string `json:"adjustmentType" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

type TransferStockRequest struct {
	ProductID      uint   `json:"productId" binding:"required"`
	FromLocationID uint   `json:"fromLocationId" binding:"required"`
	ToLocationID   uint   `json:"toLocationId" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	Notes          string `json:"notes"`
}

// --------- Handlers ---------

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.adjust.Execute(c.Request.Context(), ucinventory.AdjustStockInput{
		ProductID:      req.ProductID,
		LocationID:     req.LocationID,
		AdjustmentType: invdomain.AdjustmentType(req.AdjustmentType),
		Quantity:       req.Quantity,
		Reason:         req.Reason,
		Notes:          req.Notes,
		PerformedBy:    contextUserID(c),
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_adjust_stock")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"previousStock": out.PreviousStock,
		"newStock":      out.NewStock,
		"reference":     out.Reference,
	})
}

func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	out, err := h.transfer.Execute(c.Request.Context(), ucinventory.TransferStockInput{
		ProductID:      req.ProductID,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Quantity:       req.Quantity,
		Notes:          req.Notes,
		PerformedBy:    contextUserID(c),
	})
	if err != nil {
		writeBusinessError(c, err, "failed_to_transfer_stock")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *InventoryHandler) Repair(c *gin.Context) {
	out, err := h.repair.Execute(c.Request.Context(), contextUserID(c))
	if err != nil {
		writeBusinessError(c, err, "failed_to_repair_stock")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *InventoryHandler) Stock(c *gin.Context) {
	productID, err1 := strconv.Atoi(c.Query("product_id"))
	locationID, err2 := strconv.Atoi(c.Query("location_id"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	stock, err := h.repo.GetStock(c.Request.Context(), uint(productID), uint(locationID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id":  productID,
		"location_id": locationID,
		"stock":       stock,
	})
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	productID, _ := strconv.Atoi(c.Query("product_id"))
	locationID, _ := strconv.Atoi(c.Query("location_id"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	movements, err := h.repo.ListMovements(c.Request.Context(), invdomain.MovementFilter{
		ProductID:  uint(productID),
		LocationID: uint(locationID),
		Limit:      limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_movements"})
		return
	}

	c.JSON(http.StatusOK, movements)
}

func contextUserID(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}
