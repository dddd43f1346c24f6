package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/httpresp"
	"github.com/salonops/salon-manager/internal/models"
	"github.com/salonops/salon-manager/internal/payments"
)

type TransactionHandler struct {
	db       *gorm.DB
	checkout *payments.Checkout
	audit    *audit.Dispatcher
}

func NewTransactionHandler(db *gorm.DB, checkout *payments.Checkout, audit *audit.Dispatcher) *TransactionHandler {
	return &TransactionHandler{db: db, checkout: checkout, audit: audit}
}

// --------- Requests ---------

type TransactionItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateTransactionRequest struct {
	LocationID uint                     `json:"location_id" binding:"required"`
	ClientID   *uint                    `json:"client_id"`
	Amount     float64                  `json:"amount"`
	Method     string                   `json:"method" binding:"required"`
	Status     string                   `json:"status"`
	Items      []TransactionItemRequest `json:"items" binding:"required,min=1"`
}

// --------- Handlers ---------

func (h *TransactionHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Preload("Items").
		Preload("Location")

	if v := c.Query("location_id"); v != "" {
		query = query.Where("location_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		query = query.Where("status = ?", v)
	}
	if v := c.Query("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			query = query.Where("created_at >= ?", from)
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(200).Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_transactions"})
		return
	}

	httpresp.List(c, transactions)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_transaction_id"})
		return
	}

	var tr models.Transaction
	err = h.db.WithContext(c.Request.Context()).
		Preload("Items").
		Preload("Location").
		First(&tr, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_transaction"})
		return
	}

	c.JSON(http.StatusOK, tr)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var location models.Location
	if err := h.db.First(&location, req.LocationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": httperr.CodeLocationNotFound})
		return
	}

	status := req.Status
	if status == "" {
		status = models.TransactionPending
	}

	tr := models.Transaction{
		Reference:  uuid.NewString(),
		LocationID: req.LocationID,
		ClientID:   req.ClientID,
		Amount:     req.Amount,
		Method:     req.Method,
		Status:     status,
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": httperr.CodeInvalidQuantity})
			return
		}
		tr.Items = append(tr.Items, models.TransactionItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       float64(it.Quantity) * it.UnitPrice,
		})
	}

	// Zero amount means "derive from items"; anything else has to match.
	if tr.Amount == 0 {
		tr.Amount = tr.ItemsTotal()
	} else if !tr.AmountMatchesItems() {
		c.JSON(http.StatusBadRequest, gin.H{"error": httperr.CodeAmountMismatch})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&tr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_transaction"})
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:     "transaction_created",
		Entity:     "transaction",
		EntityID:   &tr.ID,
		UserID:     contextUserID(c),
		LocationID: &tr.LocationID,
		Metadata:   map[string]interface{}{"reference": tr.Reference, "amount": tr.Amount},
	})

	c.JSON(http.StatusCreated, tr)
}

// Checkout creates a payment link for a pending transaction.
func (h *TransactionHandler) Checkout(c *gin.Context) {
	if !h.checkout.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments_not_configured"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_transaction_id"})
		return
	}

	var tr models.Transaction
	err = h.db.WithContext(c.Request.Context()).Preload("Items").First(&tr, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_transaction"})
		return
	}

	if tr.Status != models.TransactionPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": httperr.CodeInvalidState})
		return
	}

	link, err := h.checkout.CreateLink(c.Request.Context(), &tr)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed_to_create_payment_link"})
		return
	}

	c.JSON(http.StatusOK, link)
}
