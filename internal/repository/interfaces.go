package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// e.g. the partial index guarding a single pending swap per skill pair.
var ErrDuplicate = errors.New("duplicate row")

// UserFilter narrows the public user directory.
type UserFilter struct {
	Skill        string
	Location     string
	Availability string
	ExcludeID    uuid.UUID
	Sort         string // rating | newest | name
	Offset       int
	Limit        int
}

// AdminUserFilter narrows the admin user listing.
type AdminUserFilter struct {
	Status string // all | active | inactive
	Role   string // all | user | admin
	Search string
	Offset int
	Limit  int
}

// SwapFilter narrows a user's own swap listing.
type SwapFilter struct {
	UserID uuid.UUID
	Type   string // sent | received | all
	Status domain.SwapStatus
	Offset int
	Limit  int
}

// AdminSwapFilter narrows the admin swap listing.
type AdminSwapFilter struct {
	Status domain.SwapStatus
	Sort   string // newest | oldest | status
	Offset int
	Limit  int
}

// StatusUpdate carries the side data of a swap transition. The repository
// sets the timestamp column matching the target status.
type StatusUpdate struct {
	Reason string
	At     time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, path string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublic(ctx context.Context, filter UserFilter) ([]domain.User, int, error)
	ListAll(ctx context.Context, filter AdminUserFilter) ([]domain.User, int, error)
	ListCreatedBetween(ctx context.Context, start, end *time.Time) ([]domain.User, error)
	CountTotal(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountPublic(ctx context.Context) (int, error)
	CountAdmins(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	TopOfferedSkills(ctx context.Context, limit int) ([]domain.SkillCount, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error)
	ExistsFrom(ctx context.Context, userID, fromUser uuid.UUID) (bool, error)
}

type SwapRepository interface {
	Create(ctx context.Context, req *domain.SwapRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error)
	ExistsPending(ctx context.Context, fromUser, toUser uuid.UUID, offeredSkill, requestedSkill string) (bool, error)
	ListByUser(ctx context.Context, filter SwapFilter) ([]domain.SwapRequest, int, error)
	ListAll(ctx context.Context, filter AdminSwapFilter) ([]domain.SwapRequest, int, error)
	ListCreatedBetween(ctx context.Context, start, end *time.Time) ([]domain.SwapRequest, error)
	// UpdateStatus performs a compare-and-swap from the expected status.
	// It reports false when the row no longer holds that status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus, update StatusUpdate) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountTotal(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.SwapStatus) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}
