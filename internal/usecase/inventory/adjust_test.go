package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salonops/salon-manager/internal/audit"
	"github.com/salonops/salon-manager/internal/cache"
	dbpkg "github.com/salonops/salon-manager/internal/db"
	domain "github.com/salonops/salon-manager/internal/domain/inventory"
	"github.com/salonops/salon-manager/internal/httperr"
	infraRepo "github.com/salonops/salon-manager/internal/infra/repository"
	"github.com/salonops/salon-manager/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	return db
}

func seedProductAndLocations(t *testing.T, db *gorm.DB) (models.Product, models.Location, models.Location) {
	t.Helper()

	product := models.Product{Name: "Argan Oil Shampoo", Price: 24.90, Category: "hair"}
	require.NoError(t, db.Create(&product).Error)

	a := models.Location{Name: "Downtown Spa", Kind: models.LocationKindStore, Active: true}
	a.SetNameKey()
	require.NoError(t, db.Create(&a).Error)

	b := models.Location{Name: "Uptown Salon", Kind: models.LocationKindStore, Active: true}
	b.SetNameKey()
	require.NoError(t, db.Create(&b).Error)

	return product, a, b
}

func newInventoryFixtures(t *testing.T) (*gorm.DB, *AdjustStock, *TransferStock, *RepairStock, domain.Repository) {
	t.Helper()

	db := newTestDB(t)
	repo := infraRepo.NewInventoryGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	var invCache *cache.InventoryCache // no redis in tests

	return db,
		NewAdjustStock(repo, dispatcher, invCache),
		NewTransferStock(repo, dispatcher, invCache),
		NewRepairStock(repo, dispatcher, invCache),
		repo
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("add creates the ledger row at zero and applies the delta", func(t *testing.T) {
		db, adjust, _, _, repo := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		out, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       10,
		})
		require.NoError(t, err)

		assert.Equal(t, 0, out.PreviousStock)
		assert.Equal(t, 10, out.NewStock)
		assert.NotEmpty(t, out.Reference)

		stock, err := repo.GetStock(ctx, product.ID, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, stock)
	})

	t.Run("remove below zero is rejected and the row is untouched", func(t *testing.T) {
		db, adjust, _, _, repo := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		_, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       5,
		})
		require.NoError(t, err)

		_, err = adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentRemove,
			Quantity:       15,
		})
		require.Error(t, err)
		assert.Equal(t, httperr.CodeInsufficientStock, httperr.BusinessCode(err))

		stock, err := repo.GetStock(ctx, product.ID, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, stock)
	})

	t.Run("add then remove of the same quantity restores the starting stock", func(t *testing.T) {
		db, adjust, _, _, repo := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		_, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       7,
		})
		require.NoError(t, err)

		_, err = adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       3,
		})
		require.NoError(t, err)

		out, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentRemove,
			Quantity:       3,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, out.PreviousStock)
		assert.Equal(t, 7, out.NewStock)

		stock, err := repo.GetStock(ctx, product.ID, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, stock)
	})

	t.Run("zero and negative quantities are rejected", func(t *testing.T) {
		db, adjust, _, _, _ := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		for _, qty := range []int{0, -4} {
			_, err := adjust.Execute(ctx, AdjustStockInput{
				ProductID:      product.ID,
				LocationID:     loc.ID,
				AdjustmentType: domain.AdjustmentAdd,
				Quantity:       qty,
			})
			require.Error(t, err)
			assert.Equal(t, httperr.CodeInvalidQuantity, httperr.BusinessCode(err))
		}
	})

	t.Run("unknown product and location come back as business errors", func(t *testing.T) {
		db, adjust, _, _, _ := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		_, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      9999,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       1,
		})
		assert.Equal(t, httperr.CodeProductNotFound, httperr.BusinessCode(err))

		_, err = adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     9999,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       1,
		})
		assert.Equal(t, httperr.CodeLocationNotFound, httperr.BusinessCode(err))
	})

	t.Run("every adjustment leaves a movement row with before and after", func(t *testing.T) {
		db, adjust, _, _, repo := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		out, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       4,
			Reason:         models.MovementReasonPurchase,
			Notes:          "restock order 118",
		})
		require.NoError(t, err)

		movements, err := repo.ListMovements(ctx, domain.MovementFilter{
			ProductID:  product.ID,
			LocationID: loc.ID,
		})
		require.NoError(t, err)
		require.Len(t, movements, 1)

		mv := movements[0]
		assert.Equal(t, out.Reference, mv.Reference)
		assert.Equal(t, 4, mv.Delta)
		assert.Equal(t, 0, mv.PreviousStock)
		assert.Equal(t, 4, mv.NewStock)
		assert.Equal(t, models.MovementReasonPurchase, mv.Reason)
	})
}

func TestTransferStock(t *testing.T) {
	ctx := context.Background()

	t.Run("moves stock between locations under one reference", func(t *testing.T) {
		db, adjust, transfer, _, repo := newInventoryFixtures(t)
		product, from, to := seedProductAndLocations(t, db)

		_, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     from.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       10,
		})
		require.NoError(t, err)

		out, err := transfer.Execute(ctx, TransferStockInput{
			ProductID:      product.ID,
			FromLocationID: from.ID,
			ToLocationID:   to.ID,
			Quantity:       4,
		})
		require.NoError(t, err)
		assert.Equal(t, 6, out.FromStock)
		assert.Equal(t, 4, out.ToStock)

		var legs []models.StockMovement
		require.NoError(t, db.Where("reference = ?", out.Reference).Find(&legs).Error)
		assert.Len(t, legs, 2)

		fromStock, _ := repo.GetStock(ctx, product.ID, from.ID)
		toStock, _ := repo.GetStock(ctx, product.ID, to.ID)
		assert.Equal(t, 6, fromStock)
		assert.Equal(t, 4, toStock)
	})

	t.Run("insufficient source stock aborts both legs", func(t *testing.T) {
		db, adjust, transfer, _, repo := newInventoryFixtures(t)
		product, from, to := seedProductAndLocations(t, db)

		_, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     from.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       2,
		})
		require.NoError(t, err)

		_, err = transfer.Execute(ctx, TransferStockInput{
			ProductID:      product.ID,
			FromLocationID: from.ID,
			ToLocationID:   to.ID,
			Quantity:       5,
		})
		require.Error(t, err)
		assert.Equal(t, httperr.CodeInsufficientStock, httperr.BusinessCode(err))

		fromStock, _ := repo.GetStock(ctx, product.ID, from.ID)
		toStock, _ := repo.GetStock(ctx, product.ID, to.ID)
		assert.Equal(t, 2, fromStock)
		assert.Equal(t, 0, toStock)
	})

	t.Run("same source and destination is rejected", func(t *testing.T) {
		db, _, transfer, _, _ := newInventoryFixtures(t)
		product, from, _ := seedProductAndLocations(t, db)

		_, err := transfer.Execute(ctx, TransferStockInput{
			ProductID:      product.ID,
			FromLocationID: from.ID,
			ToLocationID:   from.ID,
			Quantity:       1,
		})
		assert.Equal(t, httperr.CodeSameLocation, httperr.BusinessCode(err))
	})
}

func TestRepairStock(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps negative rows to zero and records repair movements", func(t *testing.T) {
		db, _, _, repair, repo := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		// Simulate a row written before the guarded update existed.
		row := models.ProductLocation{ProductID: product.ID, LocationID: loc.ID, Stock: -3, Active: true}
		require.NoError(t, db.Create(&row).Error)

		out, err := repair.Execute(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, out.ClampedRows)

		stock, err := repo.GetStock(ctx, product.ID, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stock)

		var mv models.StockMovement
		require.NoError(t, db.Where("reason = ?", models.MovementReasonRepair).First(&mv).Error)
		assert.Equal(t, 3, mv.Delta)
		assert.Equal(t, -3, mv.PreviousStock)
		assert.Equal(t, 0, mv.NewStock)
	})

	t.Run("healthy ledgers are left alone", func(t *testing.T) {
		db, adjust, _, repair, _ := newInventoryFixtures(t)
		product, loc, _ := seedProductAndLocations(t, db)

		_, err := adjust.Execute(ctx, AdjustStockInput{
			ProductID:      product.ID,
			LocationID:     loc.ID,
			AdjustmentType: domain.AdjustmentAdd,
			Quantity:       8,
		})
		require.NoError(t, err)

		out, err := repair.Execute(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, out.ClampedRows)
	})
}
