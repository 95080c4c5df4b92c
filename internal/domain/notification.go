package domain

import "time"

const (
	NotificationNewSwapRequest = "new_swap_request"
	NotificationSwapUpdate     = "swap_update"
	NotificationNewFeedback    = "new_feedback"
)

// Notification is the push payload delivered over the realtime channel.
// Delivery is best effort: recipients that are offline never see it.
type Notification struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}
