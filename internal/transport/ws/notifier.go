package ws

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
)

// HubNotifier implements service.Notifier on top of the Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// NotifySwapCreated tells the recipient about a new pending request.
func (n *HubNotifier) NotifySwapCreated(req *domain.SwapRequest) {
	n.hub.Notify(req.ToUser, &domain.Notification{
		Type:    domain.NotificationNewSwapRequest,
		Title:   "New Swap Request",
		Message: fmt.Sprintf("%s wants to swap skills with you", req.FromUserName),
		Data: map[string]any{
			"requestId": req.ID,
			"fromUser": map[string]any{
				"id":           req.FromUser,
				"name":         req.FromUserName,
				"profilePhoto": req.FromUserPhoto,
			},
			"offeredSkill":   req.OfferedSkill,
			"requestedSkill": req.RequestedSkill,
		},
		Timestamp: time.Now(),
	})
}

// NotifySwapUpdated tells both parties about a status change. The actor who
// performed the transition sees "you have ...", the other side "has been ...".
func (n *HubNotifier) NotifySwapUpdated(req *domain.SwapRequest, actorID uuid.UUID) {
	for _, party := range []uuid.UUID{req.FromUser, req.ToUser} {
		other := req.FromUser
		if party == req.FromUser {
			other = req.ToUser
		}

		message := fmt.Sprintf("Your swap request has been %s", req.Status)
		if party == actorID {
			message = fmt.Sprintf("You have %s a swap request", req.Status)
		}

		n.hub.Notify(party, &domain.Notification{
			Type:    domain.NotificationSwapUpdate,
			Title:   "Swap Request Update",
			Message: message,
			Data: map[string]any{
				"requestId": req.ID,
				"status":    req.Status,
				"otherUser": other,
			},
			Timestamp: time.Now(),
		})
	}
}

// NotifyNewFeedback tells the rated user about a new review.
func (n *HubNotifier) NotifyNewFeedback(target, from *domain.User, fb *domain.Feedback) {
	n.hub.Notify(target.ID, &domain.Notification{
		Type:    domain.NotificationNewFeedback,
		Title:   "New Review",
		Message: fmt.Sprintf("%s left you a %d-star review", from.Name, fb.Rating),
		Data: map[string]any{
			"feedbackId": fb.ID,
			"rating":     fb.Rating,
			"fromUser": map[string]any{
				"id":           from.ID,
				"name":         from.Name,
				"profilePhoto": from.ProfilePhoto,
			},
		},
		Timestamp: time.Now(),
	})
}
