package queue

import (
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Start(entry *models.QueueEntry, now time.Time) error {
	if err := CanStart(Status(entry.Status)); err != nil {
		return err
	}

	entry.Status = string(StatusInProgress)
	entry.UpdatedAt = now
	return nil
}

func Cancel(entry *models.QueueEntry, now time.Time) error {
	if err := CanCancel(Status(entry.Status)); err != nil {
		return err
	}

	entry.Status = string(StatusCanceled)
	entry.UpdatedAt = now
	return nil
}

func Complete(entry *models.QueueEntry, now time.Time) error {
	if err := CanComplete(Status(entry.Status)); err != nil {
		return err
	}

	entry.Status = string(StatusCompleted)
	entry.UpdatedAt = now
	return nil
}

// Skip devolve a entrada para "waiting". Bumping UpdatedAt is what
// repositions it in the line: the active view sorts each barber's
// group by most-recent-update-first.
func Skip(entry *models.QueueEntry, now time.Time) error {
	if err := CanSkip(Status(entry.Status)); err != nil {
		return err
	}

	entry.Status = string(StatusWaiting)
	entry.UpdatedAt = now
	return nil
}

// Active reports whether the entry still occupies a spot in a line.
func Active(s Status) bool {
	return s == StatusWaiting || s == StatusInProgress
}
