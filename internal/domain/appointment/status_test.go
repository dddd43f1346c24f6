package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonops/salon-manager/internal/httperr"
	"github.com/salonops/salon-manager/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	t.Run("only scheduled appointments can be cancelled", func(t *testing.T) {
		assert.NoError(t, CanCancel(StatusScheduled))
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(CanCancel(StatusCancelled)))
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(CanCancel(StatusCompleted)))
	})

	t.Run("only scheduled appointments can be completed", func(t *testing.T) {
		assert.NoError(t, CanComplete(StatusScheduled))
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(CanComplete(StatusCompleted)))
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("stamps status and timestamp", func(t *testing.T) {
		ap := models.Appointment{Status: string(StatusScheduled)}

		require.NoError(t, Cancel(&ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		require.NotNil(t, ap.CancelledAt)
		assert.Equal(t, now, *ap.CancelledAt)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		ap := models.Appointment{Status: string(StatusScheduled)}

		require.NoError(t, Cancel(&ap, now))
		err := Cancel(&ap, now)
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
	})
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("stamps status and timestamp", func(t *testing.T) {
		ap := models.Appointment{Status: string(StatusScheduled)}

		require.NoError(t, Complete(&ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
		require.NotNil(t, ap.CompletedAt)
	})

	t.Run("a cancelled appointment cannot be completed", func(t *testing.T) {
		ap := models.Appointment{Status: string(StatusCancelled)}

		err := Complete(&ap, now)
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
	})
}
