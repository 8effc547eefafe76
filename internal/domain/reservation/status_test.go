package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brasaviva/restaurant-api/internal/httperr"
	"github.com/brasaviva/restaurant-api/internal/models"
)

func TestIsActive(t *testing.T) {
	require.True(t, IsActive(StatusPending))
	require.True(t, IsActive(StatusConfirmed))
	require.False(t, IsActive(StatusCancelled))
	require.False(t, IsActive(StatusCompleted))
}

func TestCanCancel(t *testing.T) {
	require.NoError(t, CanCancel(StatusPending))
	require.NoError(t, CanCancel(StatusConfirmed))
	require.NoError(t, CanCancel(StatusCompleted))

	err := CanCancel(StatusCancelled)
	require.True(t, httperr.IsBusiness(err, "already_cancelled"), "got %v", err)
}

func TestCancel(t *testing.T) {
	now := time.Now().UTC()

	res := &models.Reservation{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(res, now))
	require.Equal(t, string(StatusCancelled), res.Status)
	require.NotNil(t, res.CancelledAt)
	require.True(t, res.CancelledAt.Equal(now))

	err := Cancel(res, now.Add(time.Minute))
	require.True(t, httperr.IsBusiness(err, "already_cancelled"), "got %v", err)
	// The original cancellation timestamp survives the rejected retry.
	require.True(t, res.CancelledAt.Equal(now))
}

func TestForceCancel(t *testing.T) {
	now := time.Now().UTC()

	res := &models.Reservation{Status: string(StatusCancelled)}
	ForceCancel(res, now)
	require.Equal(t, string(StatusCancelled), res.Status)
	require.NotNil(t, res.CancelledAt)
}
