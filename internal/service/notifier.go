package service

import (
	"github.com/google/uuid"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
)

// Notifier pushes best-effort real-time events to connected users.
// Implementations must never block the calling request; delivery failures
// are swallowed, not surfaced to the triggering operation.
type Notifier interface {
	NotifySwapCreated(req *domain.SwapRequest)
	NotifySwapUpdated(req *domain.SwapRequest, actorID uuid.UUID)
	NotifyNewFeedback(target, from *domain.User, fb *domain.Feedback)
}
