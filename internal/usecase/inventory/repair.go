package inventory

import (
	"context"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/cache"
	domain "github.com/salonops/salon-manager/internal/domain/inventory"
)

type RepairStockOutput struct {
	ClampedRows int `json:"clamped_rows"`
}

// RepairStock is the operator-triggered (and nightly) scan that resets
// rows which drifted below zero before the guarded write path existed.
type RepairStock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.InventoryCache
}

func NewRepairStock(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.InventoryCache,
) *RepairStock {
	return &RepairStock{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *RepairStock) Execute(
	ctx context.Context,
	performedBy *uint,
) (*RepairStockOutput, error) {

	clamped, err := uc.repo.ClampNegativeStock(ctx, performedBy)
	if err != nil {
		return nil, err
	}

	if clamped > 0 {
		uc.cache.Invalidate(ctx)

		uc.audit.Dispatch(audit.Event{
			UserID: performedBy,
			Action: "stock_repaired",
			Entity: "product_location",
			Metadata: map[string]any{
				"clamped_rows": clamped,
			},
		})
	}

	return &RepairStockOutput{ClampedRows: clamped}, nil
}
