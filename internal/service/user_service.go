package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfFeedback      = errors.New("you cannot rate yourself")
	ErrDuplicateFeedback = errors.New("you have already rated this user")
)

type UserService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
	notifier     Notifier
}

func NewUserService(userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *UserService) SetNotifier(n Notifier) {
	s.notifier = n
}

type UpdateProfileInput struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	Bio           *string  `json:"bio"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
	Availability  []string `json:"availability"`
	IsPublic      *bool    `json:"isPublic"`
}

type SearchUsersInput struct {
	Skill        string
	Location     string
	Availability string
	Sort         string
	Page         int
	Limit        int
}

type AddFeedbackInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the provided fields; email, role and rating are
// never writable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.SkillsOffered != nil {
		user.SkillsOffered = input.SkillsOffered
	}
	if input.SkillsWanted != nil {
		user.SkillsWanted = input.SkillsWanted
	}
	if input.Availability != nil {
		user.Availability = input.Availability
	}
	if input.IsPublic != nil {
		user.IsPublic = *input.IsPublic
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

// DeleteAccount soft-deletes: the row stays, the profile disappears.
func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.SetActive(ctx, id, false); err != nil {
		return err
	}
	return s.userRepo.UpdateRefreshToken(ctx, id, "")
}

// Search lists public, active users excluding the caller.
func (s *UserService) Search(ctx context.Context, callerID uuid.UUID, input SearchUsersInput) ([]domain.User, *Pagination, error) {
	users, total, err := s.userRepo.ListPublic(ctx, repository.UserFilter{
		Skill:        input.Skill,
		Location:     input.Location,
		Availability: input.Availability,
		ExcludeID:    callerID,
		Sort:         input.Sort,
		Offset:       (input.Page - 1) * input.Limit,
		Limit:        input.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, NewPagination(input.Page, input.Limit, total), nil
}

// GetPublicProfile returns a visible profile along with its feedback.
func (s *UserService) GetPublicProfile(ctx context.Context, id uuid.UUID) (*domain.User, []domain.Feedback, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive || !user.IsPublic {
		return nil, nil, ErrUserNotFound
	}

	fbs, err := s.feedbackRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if fbs == nil {
		fbs = []domain.Feedback{}
	}
	return user, fbs, nil
}

// AddFeedback appends a rating for the target user and recomputes the
// target's aggregate rating. One review per author per target.
func (s *UserService) AddFeedback(ctx context.Context, from *domain.User, targetID uuid.UUID, input AddFeedbackInput) (*domain.Feedback, error) {
	if from.ID == targetID {
		return nil, ErrSelfFeedback
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.feedbackRepo.ExistsFrom(ctx, targetID, from.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFeedback
	}

	fb := &domain.Feedback{
		ID:        uuid.New(),
		UserID:    targetID,
		FromUser:  from.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateFeedback
		}
		return nil, fmt.Errorf("creating feedback: %w", err)
	}

	all, err := s.feedbackRepo.ListByUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRating(ctx, targetID, computeRating(all)); err != nil {
		return nil, fmt.Errorf("updating rating: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewFeedback(target, from, fb)
	}

	return fb, nil
}

// SetProfilePhoto records the stored photo path on the profile.
func (s *UserService) SetProfilePhoto(ctx context.Context, id uuid.UUID, path string) (*domain.User, error) {
	if err := s.userRepo.UpdatePhoto(ctx, id, path); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

// computeRating is the mean of all feedback ratings rounded to one
// decimal, zero when there is no feedback.
func computeRating(fbs []domain.Feedback) float64 {
	if len(fbs) == 0 {
		return 0
	}
	var sum int
	for _, fb := range fbs {
		sum += fb.Rating
	}
	mean := float64(sum) / float64(len(fbs))
	return math.Round(mean*10) / 10
}
