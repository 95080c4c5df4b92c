package domain

import (
	"time"

	"github.com/google/uuid"
)

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapCompleted, SwapCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s SwapStatus) Terminal() bool {
	return s == SwapRejected || s == SwapCompleted || s == SwapCancelled
}

const (
	MeetingOnline   = "online"
	MeetingInPerson = "in-person"
	MeetingHybrid   = "hybrid"
)

// SwapRequest is a proposal from one user to exchange a skill they offer
// for a skill the other user offers.
type SwapRequest struct {
	ID                 uuid.UUID  `json:"id"`
	FromUser           uuid.UUID  `json:"fromUser"`
	ToUser             uuid.UUID  `json:"toUser"`
	OfferedSkill       string     `json:"offeredSkill"`
	RequestedSkill     string     `json:"requestedSkill"`
	Message            string     `json:"message,omitempty"`
	Status             SwapStatus `json:"status"`
	RejectionReason    string     `json:"rejectionReason,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	ScheduledDate      *time.Time `json:"scheduledDate,omitempty"`
	Duration           string     `json:"duration,omitempty"`
	MeetingType        string     `json:"meetingType"`
	MeetingDetails     string     `json:"meetingDetails,omitempty"`
	AcceptedAt         *time.Time `json:"acceptedAt,omitempty"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	// Joined fields
	FromUserName  string  `json:"fromUserName,omitempty"`
	ToUserName    string  `json:"toUserName,omitempty"`
	FromUserPhoto *string `json:"fromUserPhoto,omitempty"`
	ToUserPhoto   *string `json:"toUserPhoto,omitempty"`
}

// Party reports whether the given user is the sender or the recipient.
func (r *SwapRequest) Party(userID uuid.UUID) bool {
	return r.FromUser == userID || r.ToUser == userID
}

// Deletable requests can be removed by their sender.
func (r *SwapRequest) Deletable() bool {
	return r.Status == SwapPending || r.Status == SwapRejected
}
