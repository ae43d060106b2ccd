package queue

import (
	"context"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type ListActiveQueue struct {
	repo domain.Repository
}

func NewListActiveQueue(repo domain.Repository) *ListActiveQueue {
	return &ListActiveQueue{repo: repo}
}

// Execute is a pure read: open entries on active barbers' lines,
// enriched with user, barber and resolved services. Inactive
// barbers' entries stay in storage but out of the view.
func (uc *ListActiveQueue) Execute(
	ctx context.Context,
) ([]models.QueueEntry, error) {
	return uc.repo.ListActiveEntries(ctx)
}
