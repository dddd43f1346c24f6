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

type TransferStockInput struct {
	ProductID      uint
	FromLocationID uint
	ToLocationID   uint
	Quantity       int
	Notes          string
	PerformedBy    *uint
}

type TransferStockOutput struct {
	Reference string `json:"reference"`
	FromStock int    `json:"from_stock"`
	ToStock   int    `json:"to_stock"`
}

type TransferStock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.InventoryCache
}

func NewTransferStock(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.InventoryCache,
) *TransferStock {
	return &TransferStock{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *TransferStock) Execute(
	ctx context.Context,
	in TransferStockInput,
) (*TransferStockOutput, error) {

	if in.Quantity <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidQuantity)
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, httperr.ErrBusiness(httperr.CodeSameLocation)
	}

	product, err := uc.repo.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeProductNotFound)
	}

	if _, err := uc.repo.GetLocation(ctx, in.FromLocationID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeLocationNotFound)
	}
	if _, err := uc.repo.GetLocation(ctx, in.ToLocationID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeLocationNotFound)
	}

	// One reference ties both legs of the transfer together.
	reference := uuid.NewString()

	out := models.StockMovement{
		Reference:   reference,
		ProductID:   product.ID,
		LocationID:  in.FromLocationID,
		Delta:       -in.Quantity,
		Reason:      models.MovementReasonTransfer,
		Notes:       in.Notes,
		PerformedBy: in.PerformedBy,
	}

	inMv := models.StockMovement{
		Reference:   reference,
		ProductID:   product.ID,
		LocationID:  in.ToLocationID,
		Delta:       in.Quantity,
		Reason:      models.MovementReasonTransfer,
		Notes:       in.Notes,
		PerformedBy: in.PerformedBy,
	}

	if err := uc.repo.ApplyTransfer(ctx, &out, &inMv); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.PerformedBy,
		Action:   "stock_transferred",
		Entity:   "product",
		EntityID: &product.ID,
		Metadata: map[string]any{
			"reference": reference,
			"from":      in.FromLocationID,
			"to":        in.ToLocationID,
			"quantity":  in.Quantity,
		},
	})

	return &TransferStockOutput{
		Reference: reference,
		FromStock: out.NewStock,
		ToStock:   inMv.NewStock,
	}, nil
}
