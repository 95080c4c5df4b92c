package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Availability tags a user can pick from.
var AvailabilityTags = []string{"weekdays", "weekends", "evenings", "mornings", "afternoons", "flexible"}

type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	PasswordHash  string     `json:"-"`
	Location      string     `json:"location,omitempty"`
	Bio           string     `json:"bio,omitempty"`
	SkillsOffered []string   `json:"skillsOffered"`
	SkillsWanted  []string   `json:"skillsWanted"`
	Availability  []string   `json:"availability"`
	ProfilePhoto  *string    `json:"profilePhoto,omitempty"`
	IsPublic      bool       `json:"isPublic"`
	Role          string     `json:"role"`
	Rating        float64    `json:"rating"`
	FeedbackCount int        `json:"feedbackCount"`
	RefreshToken  string     `json:"-"`
	IsActive      bool       `json:"isActive"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// OffersSkill reports whether the skill appears in the user's offered list.
// Matching is exact, the way skills are stored from profile updates.
func (u *User) OffersSkill(skill string) bool {
	for _, s := range u.SkillsOffered {
		if s == skill {
			return true
		}
	}
	return false
}

func ValidAvailability(tag string) bool {
	for _, t := range AvailabilityTags {
		if t == tag {
			return true
		}
	}
	return false
}
