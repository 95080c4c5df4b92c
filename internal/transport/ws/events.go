package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types - Client → Server
const (
	EventTypeUserOnline  = "user_online"
	EventTypeTypingStart = "typing_start"
	EventTypeTypingStop  = "typing_stop"
	EventTypePing        = "ping"
)

// Event types - Server → Client
const (
	EventTypeNotification  = "notification"
	EventTypeStatusUpdate  = "user_status_update"
	EventTypeTyping        = "user_typing"
	EventTypeStoppedTyping = "user_stopped_typing"
	EventTypePong          = "pong"
	EventTypeError         = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type TypingRequestPayload struct {
	RecipientID uuid.UUID `json:"recipient_id"`
}

// --- Server → Client payloads ---

type StatusUpdatePayload struct {
	UserID uuid.UUID `json:"userId"`
	Status string    `json:"status"` // "online" | "offline"
}

type TypingPayload struct {
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
