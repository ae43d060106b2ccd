package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestTransitionGuards(t *testing.T) {
	tests := []struct {
		name    string
		guard   func(Status) error
		from    Status
		allowed bool
	}{
		{"start from waiting", CanStart, StatusWaiting, true},
		{"start from in_progress", CanStart, StatusInProgress, false},
		{"start from completed", CanStart, StatusCompleted, false},
		{"start from canceled", CanStart, StatusCanceled, false},

		{"cancel from waiting", CanCancel, StatusWaiting, true},
		{"cancel from in_progress", CanCancel, StatusInProgress, false},
		{"cancel from completed", CanCancel, StatusCompleted, false},

		{"complete from in_progress", CanComplete, StatusInProgress, true},
		{"complete from waiting", CanComplete, StatusWaiting, false},
		{"complete from canceled", CanComplete, StatusCanceled, false},

		{"skip from in_progress", CanSkip, StatusInProgress, true},
		{"skip from waiting", CanSkip, StatusWaiting, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard(tt.from)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, "illegal_transition"))
			}
		})
	}
}

func TestStart(t *testing.T) {
	now := time.Now()
	entry := &models.QueueEntry{Status: string(StatusWaiting)}

	require.NoError(t, Start(entry, now))
	assert.Equal(t, string(StatusInProgress), entry.Status)
	assert.Equal(t, now, entry.UpdatedAt)
}

func TestCancelRejectsInProgress(t *testing.T) {
	entry := &models.QueueEntry{Status: string(StatusInProgress)}

	err := Cancel(entry, time.Now())
	assert.True(t, httperr.IsBusiness(err, "illegal_transition"))

	// a failed guard leaves state untouched
	assert.Equal(t, string(StatusInProgress), entry.Status)
}

func TestComplete(t *testing.T) {
	now := time.Now()
	entry := &models.QueueEntry{Status: string(StatusInProgress)}

	require.NoError(t, Complete(entry, now))
	assert.Equal(t, string(StatusCompleted), entry.Status)
}

func TestSkipReturnsToWaitingAndBumpsOrdering(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	now := time.Now()
	entry := &models.QueueEntry{
		Status:    string(StatusInProgress),
		UpdatedAt: created,
	}

	require.NoError(t, Skip(entry, now))
	assert.Equal(t, string(StatusWaiting), entry.Status)
	assert.True(t, entry.UpdatedAt.After(created))
}

func TestActive(t *testing.T) {
	assert.True(t, Active(StatusWaiting))
	assert.True(t, Active(StatusInProgress))
	assert.False(t, Active(StatusCompleted))
	assert.False(t, Active(StatusCanceled))
}
