package relationship

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

func seedLocations(t *testing.T, db *gorm.DB, names ...string) []models.Location {
	t.Helper()

	out := make([]models.Location, 0, len(names))
	for _, name := range names {
		loc := models.Location{Name: name, Kind: models.LocationKindStore, Active: true}
		loc.SetNameKey()
		require.NoError(t, db.Create(&loc).Error)
		out = append(out, loc)
	}
	return out
}

func TestSyncServiceLocations(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the full active fan-out", func(t *testing.T) {
		db := newTestDB(t)
		sync := NewSynchronizer(db, nil)

		seedLocations(t, db, "Downtown Spa", "Uptown Salon")

		for _, name := range []string{"Haircut", "Manicure", "Facial"} {
			require.NoError(t, db.Create(&models.Service{Name: name, Price: 30, Active: true}).Error)
		}

		result, err := sync.SyncServiceLocations(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(3), result.ActiveLeft)
		assert.Equal(t, int64(2), result.ActiveLocations)
		assert.Equal(t, int64(6), result.Expected)
		assert.Equal(t, int64(6), result.Created)
		assert.Equal(t, int64(0), result.Existing)

		var count int64
		require.NoError(t, db.Model(&models.LocationService{}).Count(&count).Error)
		assert.Equal(t, int64(6), count)
	})

	t.Run("rerun creates nothing", func(t *testing.T) {
		db := newTestDB(t)
		sync := NewSynchronizer(db, nil)

		seedLocations(t, db, "Downtown Spa")
		require.NoError(t, db.Create(&models.Service{Name: "Haircut", Price: 30, Active: true}).Error)

		_, err := sync.SyncServiceLocations(ctx)
		require.NoError(t, err)

		result, err := sync.SyncServiceLocations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Created)
		assert.Equal(t, int64(1), result.Existing)
	})

	t.Run("inactive services and locations are skipped", func(t *testing.T) {
		db := newTestDB(t)
		sync := NewSynchronizer(db, nil)

		seedLocations(t, db, "Downtown Spa")

		// Active has a database default of true, so gorm drops a false
		// zero value on insert; deactivate with an explicit update.
		inactive := models.Location{Name: "Closed Branch", Kind: models.LocationKindStore}
		inactive.SetNameKey()
		require.NoError(t, db.Create(&inactive).Error)
		require.NoError(t, db.Model(&inactive).Update("active", false).Error)

		require.NoError(t, db.Create(&models.Service{Name: "Haircut", Price: 30, Active: true}).Error)
		retired := models.Service{Name: "Retired", Price: 10}
		require.NoError(t, db.Create(&retired).Error)
		require.NoError(t, db.Model(&retired).Update("active", false).Error)

		var inactiveCount int64
		require.NoError(t, db.Model(&models.Location{}).Where("active = ?", false).Count(&inactiveCount).Error)
		require.Equal(t, int64(1), inactiveCount)

		result, err := sync.SyncServiceLocations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Expected)
		assert.Equal(t, int64(1), result.Created)
	})

	t.Run("existing manual rows are preserved, only gaps are filled", func(t *testing.T) {
		db := newTestDB(t)
		sync := NewSynchronizer(db, nil)

		locs := seedLocations(t, db, "Downtown Spa", "Uptown Salon")

		svc := models.Service{Name: "Haircut", Price: 30, Active: true}
		require.NoError(t, db.Create(&svc).Error)

		// Manual row with a local price.
		price := 42.0
		require.NoError(t, db.Create(&models.LocationService{
			ServiceID:  svc.ID,
			LocationID: locs[0].ID,
			Price:      &price,
			Active:     true,
		}).Error)

		result, err := sync.SyncServiceLocations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Existing)
		assert.Equal(t, int64(1), result.Created)

		var manual models.LocationService
		require.NoError(t, db.Where("service_id = ? AND location_id = ?", svc.ID, locs[0].ID).First(&manual).Error)
		require.NotNil(t, manual.Price)
		assert.Equal(t, 42.0, *manual.Price)
	})
}

func TestSyncStaffLocations(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the full active fan-out", func(t *testing.T) {
		db := newTestDB(t)
		sync := NewSynchronizer(db, nil)

		seedLocations(t, db, "Downtown Spa", "Uptown Salon")

		for _, name := range []string{"Ana", "Bruno"} {
			require.NoError(t, db.Create(&models.StaffMember{Name: name, Active: true}).Error)
		}

		result, err := sync.SyncStaffLocations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.Expected)
		assert.Equal(t, int64(4), result.Created)
	})
}

func TestSyncStats(t *testing.T) {
	ctx := context.Background()

	t.Run("reports missing pairs before a sync and none after", func(t *testing.T) {
		db := newTestDB(t)
		sync := NewSynchronizer(db, nil)

		seedLocations(t, db, "Downtown Spa", "Uptown Salon")
		require.NoError(t, db.Create(&models.Service{Name: "Haircut", Price: 30, Active: true}).Error)

		stats, err := sync.ServiceLocationStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Expected)
		assert.Equal(t, int64(2), stats.Missing)
		assert.Equal(t, 0.0, stats.CompletionPct)

		_, err = sync.SyncServiceLocations(ctx)
		require.NoError(t, err)

		stats, err = sync.ServiceLocationStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Missing)
		assert.Equal(t, 100.0, stats.CompletionPct)
	})

	t.Run("empty database reports full completion", func(t *testing.T) {
		db := newTestDB(t)
		sync := NewSynchronizer(db, nil)

		stats, err := sync.StaffLocationStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Expected)
		assert.Equal(t, 100.0, stats.CompletionPct)
	})
}
