package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/cache"
	domain "github.com/salonops/salon-manager/internal/domain/inventory"
	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AdjustStockInput struct {
	ProductID  uint
	LocationID uint

	AdjustmentType domain.AdjustmentType
	Quantity       int

	Reason string
	Notes  string

	PerformedBy *uint
}

type AdjustStockOutput struct {
	Reference     string `json:"reference"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
}

// ======================================================
// USE CASE
// ======================================================

type AdjustStock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.InventoryCache
}

func NewAdjustStock(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.InventoryCache,
) *AdjustStock {
	return &AdjustStock{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *AdjustStock) Execute(
	ctx context.Context,
	in AdjustStockInput,
) (*AdjustStockOutput, error) {

	if err := domain.ValidateAdjustment(in.AdjustmentType, in.Quantity); err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeProductNotFound)
	}

	loc, err := uc.repo.GetLocation(ctx, in.LocationID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeLocationNotFound)
	}

	reason := in.Reason
	if reason == "" {
		reason = models.MovementReasonCorrection
	}

	mv := models.StockMovement{
		Reference:   uuid.NewString(),
		ProductID:   product.ID,
		LocationID:  loc.ID,
		Delta:       domain.Delta(in.AdjustmentType, in.Quantity),
		Reason:      reason,
		Notes:       in.Notes,
		PerformedBy: in.PerformedBy,
	}

	if err := uc.repo.ApplyAdjustment(ctx, &mv); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:     in.PerformedBy,
		LocationID: &loc.ID,
		Action:     "stock_adjusted",
		Entity:     "product",
		EntityID:   &product.ID,
		Metadata: map[string]any{
			"reference":      mv.Reference,
			"delta":          mv.Delta,
			"previous_stock": mv.PreviousStock,
			"new_stock":      mv.NewStock,
			"reason":         mv.Reason,
		},
	})

	return &AdjustStockOutput{
		Reference:     mv.Reference,
		PreviousStock: mv.PreviousStock,
		NewStock:      mv.NewStock,
	}, nil
}
