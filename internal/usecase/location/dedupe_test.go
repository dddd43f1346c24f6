package location

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/salonops/salon-manager/internal/db"
	"github.com/salonops/salon-manager/internal/httperr"
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

// createLocation inserts a row without a name key, the shape legacy
// rows have.
func createLocation(t *testing.T, db *gorm.DB, name string) models.Location {
	t.Helper()

	loc := models.Location{Name: name, Kind: models.LocationKindStore, Active: true}
	require.NoError(t, db.Create(&loc).Error)
	return loc
}

func TestNormalizeLocationName(t *testing.T) {
	assert.Equal(t, "downtown spa", models.NormalizeLocationName("Downtown Spa"))
	assert.Equal(t, "downtown spa", models.NormalizeLocationName("  downtown   SPA  "))
	assert.Equal(t, "downtown spa", models.NormalizeLocationName("DOWNTOWN\tSpa"))
	assert.Equal(t, "", models.NormalizeLocationName("   "))
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes unreferenced duplicates and keeps the oldest row", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		original := createLocation(t, db, "Downtown Spa")
		createLocation(t, db, "downtown  spa")
		createLocation(t, db, "DOWNTOWN SPA")
		other := createLocation(t, db, "Uptown Salon")

		result, err := deduper.Cleanup(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Deleted)
		assert.Equal(t, 0, result.Skipped)
		require.Len(t, result.Groups, 1)
		assert.Equal(t, original.ID, result.Groups[0].PreferredID)

		var remaining []models.Location
		require.NoError(t, db.Order("id ASC").Find(&remaining).Error)
		require.Len(t, remaining, 2)
		assert.Equal(t, original.ID, remaining[0].ID)
		assert.Equal(t, other.ID, remaining[1].ID)
	})

	t.Run("referenced duplicates are skipped, not deleted", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		createLocation(t, db, "Downtown Spa")
		dup := createLocation(t, db, "downtown spa")

		product := models.Product{Name: "Hand Cream"}
		require.NoError(t, db.Create(&product).Error)
		require.NoError(t, db.Create(&models.ProductLocation{
			ProductID:  product.ID,
			LocationID: dup.ID,
			Stock:      3,
			Active:     true,
		}).Error)

		result, err := deduper.Cleanup(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Deleted)
		assert.Equal(t, 1, result.Skipped)

		var count int64
		require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("second run finds nothing to delete", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		createLocation(t, db, "Downtown Spa")
		createLocation(t, db, "downtown spa")

		_, err := deduper.Cleanup(ctx)
		require.NoError(t, err)

		result, err := deduper.Cleanup(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Deleted)
		assert.Empty(t, result.Groups)
	})
}

func TestMigrateRefs(t *testing.T) {
	ctx := context.Background()

	t.Run("moves and merges ledger rows", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		from := createLocation(t, db, "Downtown Spa")
		to := createLocation(t, db, "downtown spa")

		shared := models.Product{Name: "Hand Cream"}
		require.NoError(t, db.Create(&shared).Error)
		only := models.Product{Name: "Face Mask"}
		require.NoError(t, db.Create(&only).Error)

		// Shared product exists at both locations: quantities merge.
		require.NoError(t, db.Create(&models.ProductLocation{
			ProductID: shared.ID, LocationID: from.ID, Stock: 4, Active: true,
		}).Error)
		require.NoError(t, db.Create(&models.ProductLocation{
			ProductID: shared.ID, LocationID: to.ID, Stock: 6, Active: true,
		}).Error)

		// The other product only exists at the source: row is repointed.
		require.NoError(t, db.Create(&models.ProductLocation{
			ProductID: only.ID, LocationID: from.ID, Stock: 2, Active: true,
		}).Error)

		result, err := deduper.MigrateRefs(ctx, from.ID, to.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.LedgerMerged)
		assert.Equal(t, 1, result.LedgerMoved)

		var merged models.ProductLocation
		require.NoError(t, db.Where("product_id = ? AND location_id = ?", shared.ID, to.ID).First(&merged).Error)
		assert.Equal(t, 10, merged.Stock)

		var leftBehind int64
		require.NoError(t, db.Model(&models.ProductLocation{}).
			Where("location_id = ?", from.ID).Count(&leftBehind).Error)
		assert.Equal(t, int64(0), leftBehind)
	})

	t.Run("repoints appointments and transactions", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		from := createLocation(t, db, "Downtown Spa")
		to := createLocation(t, db, "downtown spa")

		require.NoError(t, db.Create(&models.Appointment{LocationID: from.ID, Status: "scheduled"}).Error)
		require.NoError(t, db.Create(&models.Transaction{
			Reference: "t-1", LocationID: from.ID, Amount: 10, Status: "paid",
		}).Error)

		result, err := deduper.MigrateRefs(ctx, from.ID, to.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Appointments)
		assert.Equal(t, 1, result.Transactions)

		var ap models.Appointment
		require.NoError(t, db.First(&ap).Error)
		assert.Equal(t, to.ID, ap.LocationID)
	})

	t.Run("rejects identical source and target", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		loc := createLocation(t, db, "Downtown Spa")

		_, err := deduper.MigrateRefs(ctx, loc.ID, loc.ID)
		assert.Equal(t, httperr.CodeSameLocation, httperr.BusinessCode(err))
	})

	t.Run("rejects unknown locations", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		loc := createLocation(t, db, "Downtown Spa")

		_, err := deduper.MigrateRefs(ctx, loc.ID, 9999)
		assert.Equal(t, httperr.CodeLocationNotFound, httperr.BusinessCode(err))
	})
}

func TestFix(t *testing.T) {
	ctx := context.Background()

	t.Run("merges referenced duplicates and backfills name keys", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		original := createLocation(t, db, "Downtown Spa")
		dup := createLocation(t, db, "downtown spa")

		product := models.Product{Name: "Hand Cream"}
		require.NoError(t, db.Create(&product).Error)
		require.NoError(t, db.Create(&models.ProductLocation{
			ProductID: product.ID, LocationID: original.ID, Stock: 5, Active: true,
		}).Error)
		require.NoError(t, db.Create(&models.ProductLocation{
			ProductID: product.ID, LocationID: dup.ID, Stock: 7, Active: true,
		}).Error)

		result, err := deduper.Fix(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.GroupsMerged)
		assert.Equal(t, 1, result.RowsDeleted)
		assert.Equal(t, 1, result.KeysBackfilled)

		var survivor models.Location
		require.NoError(t, db.First(&survivor, original.ID).Error)
		require.NotNil(t, survivor.NameKey)
		assert.Equal(t, "downtown spa", *survivor.NameKey)

		var ledger models.ProductLocation
		require.NoError(t, db.Where("product_id = ?", product.ID).First(&ledger).Error)
		assert.Equal(t, original.ID, ledger.LocationID)
		assert.Equal(t, 12, ledger.Stock)
	})

	t.Run("clean table comes back with zeroes", func(t *testing.T) {
		db := newTestDB(t)
		deduper := NewDeduper(db, nil)

		createLocation(t, db, "Downtown Spa")

		first, err := deduper.Fix(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, first.KeysBackfilled)

		second, err := deduper.Fix(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, second.RowsDeleted)
		assert.Equal(t, 0, second.KeysBackfilled)
	})
}
