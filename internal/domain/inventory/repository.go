package inventory

import (
	"context"

	"github.com/salonops/salon-manager/internal/models"
)

type MovementFilter struct {
	ProductID  uint
	LocationID uint
	Limit      int
}

type Repository interface {
	// -------- References --------
	GetProduct(
		ctx context.Context,
		productID uint,
	) (*models.Product, error)

	GetLocation(
		ctx context.Context,
		locationID uint,
	) (*models.Location, error)

	// -------- Ledger --------
	GetStock(
		ctx context.Context,
		productID uint,
		locationID uint,
	) (int, error)

	// ApplyAdjustment runs the whole adjustment in one transaction:
	// ensure the ledger row exists (created at zero), apply the delta
	// as a single guarded update, record the movement. On return the
	// movement carries PreviousStock and NewStock. A removal that would
	// drive the row negative fails with insufficient_stock and leaves
	// the ledger untouched.
	ApplyAdjustment(
		ctx context.Context,
		mv *models.StockMovement,
	) error

	// ApplyTransfer applies both movements atomically: either the
	// source is debited and the destination credited, or neither.
	ApplyTransfer(
		ctx context.Context,
		out *models.StockMovement,
		in *models.StockMovement,
	) error

	// -------- Repair --------
	ClampNegativeStock(
		ctx context.Context,
		performedBy *uint,
	) (int, error)

	// -------- History --------
	ListMovements(
		ctx context.Context,
		filter MovementFilter,
	) ([]models.StockMovement, error)
}
