package domain

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	FromUser  uuid.UUID `json:"fromUser"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	// Joined fields
	FromName  string  `json:"fromName,omitempty"`
	FromPhoto *string `json:"fromPhoto,omitempty"`
}
