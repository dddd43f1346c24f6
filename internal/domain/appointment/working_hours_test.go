package appointment

import (
	"fmt"
	"testing"
	"time"

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

func TestIsWithinWorkingHours(t *testing.T) {
	db := newTestDB(t)

	staff := models.StaffMember{Name: "Ana", Active: true}
	require.NoError(t, db.Create(&staff).Error)

	// Tuesdays 09:00-18:00 with a 12:00-13:00 break.
	require.NoError(t, db.Create(&models.WorkingHours{
		StaffID:    staff.ID,
		Weekday:    2,
		StartTime:  "09:00",
		EndTime:    "18:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
		Active:     true,
	}).Error)

	// 2026-03-10 is a Tuesday.
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
	}

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"inside the morning window", at(9, 0), at(9, 45), true},
		{"inside the afternoon window", at(15, 0), at(16, 0), true},
		{"ends exactly at closing", at(17, 15), at(18, 0), true},
		{"before opening", at(8, 0), at(8, 45), false},
		{"runs past closing", at(17, 30), at(18, 15), false},
		{"overlaps the break", at(11, 30), at(12, 15), false},
		{"entirely inside the break", at(12, 15), at(12, 45), false},
		{"ends exactly when the break starts", at(11, 15), at(12, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := IsWithinWorkingHours(db, staff.ID, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	t.Run("no schedule for that weekday means unavailable", func(t *testing.T) {
		wednesday := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
		ok, err := IsWithinWorkingHours(db, staff.ID, wednesday, wednesday.Add(30*time.Minute))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("inactive weekday means unavailable", func(t *testing.T) {
		require.NoError(t, db.Create(&models.WorkingHours{
			StaffID:   staff.ID,
			Weekday:   3,
			StartTime: "09:00",
			EndTime:   "18:00",
			Active:    false,
		}).Error)

		wednesday := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
		ok, err := IsWithinWorkingHours(db, staff.ID, wednesday, wednesday.Add(30*time.Minute))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
