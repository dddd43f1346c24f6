package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/salonops/salon-manager/internal/domain/inventory"
	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/models"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *InventoryGormRepository) GetProduct(
	ctx context.Context,
	productID uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *InventoryGormRepository) GetLocation(
	ctx context.Context,
	locationID uint,
) (*models.Location, error) {

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, locationID).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *InventoryGormRepository) GetStock(
	ctx context.Context,
	productID uint,
	locationID uint,
) (int, error) {

	var row models.ProductLocation
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Stock, nil
}

func (r *InventoryGormRepository) ApplyAdjustment(
	ctx context.Context,
	mv *models.StockMovement,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyMovement(tx, mv)
	})
}

func (r *InventoryGormRepository) ApplyTransfer(
	ctx context.Context,
	out *models.StockMovement,
	in *models.StockMovement,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyMovement(tx, out); err != nil {
			return err
		}
		return applyMovement(tx, in)
	})
}

// applyMovement mutates the ledger row inside the caller's transaction.
// The delta is applied as a single guarded UPDATE so two concurrent
// removals can never race the row below zero: the database either
// applies the whole delta or matches no row.
func applyMovement(tx *gorm.DB, mv *models.StockMovement) error {

	row := models.ProductLocation{
		ProductID:  mv.ProductID,
		LocationID: mv.LocationID,
		Active:     true,
	}
	if err := tx.
		Where("product_id = ? AND location_id = ?", mv.ProductID, mv.LocationID).
		FirstOrCreate(&row).Error; err != nil {
		return err
	}

	res := tx.Model(&models.ProductLocation{}).
		Where("id = ? AND stock + ? >= 0", row.ID, mv.Delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", mv.Delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeInsufficientStock)
	}

	var after models.ProductLocation
	if err := tx.First(&after, row.ID).Error; err != nil {
		return err
	}

	mv.PreviousStock = after.Stock - mv.Delta
	mv.NewStock = after.Stock

	return tx.Create(mv).Error
}

// --------------------------------------------------
// Repair
// --------------------------------------------------

// ClampNegativeStock resets any ledger row that drifted below zero
// (rows written before the guarded update existed) and records a repair
// movement per row. Returns how many rows were clamped.
func (r *InventoryGormRepository) ClampNegativeStock(
	ctx context.Context,
	performedBy *uint,
) (int, error) {

	clamped := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.ProductLocation
		if err := tx.Where("stock < 0").Find(&rows).Error; err != nil {
			return err
		}

		for _, row := range rows {
			mv := models.StockMovement{
				Reference:     uuid.NewString(),
				ProductID:     row.ProductID,
				LocationID:    row.LocationID,
				Delta:         -row.Stock,
				PreviousStock: row.Stock,
				NewStock:      0,
				Reason:        models.MovementReasonRepair,
				Notes:         fmt.Sprintf("clamped negative stock %d to zero", row.Stock),
				PerformedBy:   performedBy,
			}
			if err := tx.Create(&mv).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.ProductLocation{}).
				Where("id = ?", row.ID).
				UpdateColumn("stock", 0).Error; err != nil {
				return err
			}
			clamped++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return clamped, nil
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *InventoryGormRepository) ListMovements(
	ctx context.Context,
	filter domain.MovementFilter,
) ([]models.StockMovement, error) {

	q := r.db.WithContext(ctx).Model(&models.StockMovement{})

	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.LocationID != 0 {
		q = q.Where("location_id = ?", filter.LocationID)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var movements []models.StockMovement
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error; err != nil {
		return nil, err
	}

	return movements, nil
}
