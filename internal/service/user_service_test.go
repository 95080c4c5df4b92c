package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

type mockProfileUserRepo struct {
	repository.UserRepository
	getByID      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	update       func(ctx context.Context, user *domain.User) error
	updateRating func(ctx context.Context, id uuid.UUID, rating float64) error
}

func (m *mockProfileUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByID(ctx, id)
}

func (m *mockProfileUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.update(ctx, user)
}

func (m *mockProfileUserRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return m.updateRating(ctx, id, rating)
}

type mockFeedbackRepo struct {
	repository.FeedbackRepository
	create     func(ctx context.Context, fb *domain.Feedback) error
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error)
	existsFrom func(ctx context.Context, userID, fromUser uuid.UUID) (bool, error)
}

func (m *mockFeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	return m.create(ctx, fb)
}

func (m *mockFeedbackRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error) {
	return m.listByUser(ctx, userID)
}

func (m *mockFeedbackRepo) ExistsFrom(ctx context.Context, userID, fromUser uuid.UUID) (bool, error) {
	return m.existsFrom(ctx, userID, fromUser)
}

func TestComputeRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no feedback", nil, 0},
		{"single rating", []int{4}, 4.0},
		{"clean mean", []int{5, 4, 3}, 4.0},
		{"rounded to one decimal", []int{5, 4}, 4.5},
		{"rounds up", []int{5, 5, 4}, 4.7},
		{"rounds down", []int{3, 3, 4}, 3.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fbs := make([]domain.Feedback, len(tt.ratings))
			for i, r := range tt.ratings {
				fbs[i] = domain.Feedback{Rating: r}
			}
			assert.Equal(t, tt.want, computeRating(fbs))
		})
	}
}

func TestAddFeedback(t *testing.T) {
	author := &domain.User{ID: uuid.New(), Name: "Alice", IsActive: true}
	target := &domain.User{ID: uuid.New(), Name: "Bob", IsActive: true}

	t.Run("success recomputes rating", func(t *testing.T) {
		var gotRating float64
		svc := NewUserService(&mockProfileUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
			updateRating: func(ctx context.Context, id uuid.UUID, rating float64) error {
				assert.Equal(t, target.ID, id)
				gotRating = rating
				return nil
			},
		}, &mockFeedbackRepo{
			existsFrom: func(ctx context.Context, userID, fromUser uuid.UUID) (bool, error) { return false, nil },
			create:     func(ctx context.Context, fb *domain.Feedback) error { return nil },
			listByUser: func(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error) {
				return []domain.Feedback{{Rating: 5}, {Rating: 4}}, nil
			},
		})

		fb, err := svc.AddFeedback(context.Background(), author, target.ID, AddFeedbackInput{Rating: 5, Comment: "Great"})
		require.NoError(t, err)
		assert.Equal(t, author.ID, fb.FromUser)
		assert.Equal(t, target.ID, fb.UserID)
		assert.Equal(t, 4.5, gotRating)
	})

	t.Run("self feedback", func(t *testing.T) {
		svc := NewUserService(&mockProfileUserRepo{}, &mockFeedbackRepo{})
		_, err := svc.AddFeedback(context.Background(), author, author.ID, AddFeedbackInput{Rating: 5})
		assert.ErrorIs(t, err, ErrSelfFeedback)
	})

	t.Run("target missing", func(t *testing.T) {
		svc := NewUserService(&mockProfileUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return nil, nil },
		}, &mockFeedbackRepo{})
		_, err := svc.AddFeedback(context.Background(), author, target.ID, AddFeedbackInput{Rating: 5})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("already rated", func(t *testing.T) {
		svc := NewUserService(&mockProfileUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
		}, &mockFeedbackRepo{
			existsFrom: func(ctx context.Context, userID, fromUser uuid.UUID) (bool, error) { return true, nil },
		})
		_, err := svc.AddFeedback(context.Background(), author, target.ID, AddFeedbackInput{Rating: 5})
		assert.ErrorIs(t, err, ErrDuplicateFeedback)
	})

	t.Run("unique index backstop", func(t *testing.T) {
		svc := NewUserService(&mockProfileUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
		}, &mockFeedbackRepo{
			existsFrom: func(ctx context.Context, userID, fromUser uuid.UUID) (bool, error) { return false, nil },
			create:     func(ctx context.Context, fb *domain.Feedback) error { return repository.ErrDuplicate },
		})
		_, err := svc.AddFeedback(context.Background(), author, target.ID, AddFeedbackInput{Rating: 5})
		assert.ErrorIs(t, err, ErrDuplicateFeedback)
	})
}

func TestUpdateProfile(t *testing.T) {
	userID := uuid.New()
	name := "New Name"
	public := false

	var saved *domain.User
	svc := NewUserService(&mockProfileUserRepo{
		getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{
				ID:            userID,
				Name:          "Old Name",
				Email:         "a@b.com",
				Location:      "Berlin",
				SkillsOffered: []string{"Go"},
				IsPublic:      true,
				IsActive:      true,
				UpdatedAt:     time.Now().Add(-time.Hour),
			}, nil
		},
		update: func(ctx context.Context, user *domain.User) error {
			saved = user
			return nil
		},
	}, &mockFeedbackRepo{})

	user, err := svc.UpdateProfile(context.Background(), userID, UpdateProfileInput{
		Name:          &name,
		SkillsOffered: []string{"Go", "Rust"},
		IsPublic:      &public,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, []string{"Go", "Rust"}, user.SkillsOffered)
	assert.False(t, user.IsPublic)
	// Fields without input stay untouched.
	assert.Equal(t, "Berlin", user.Location)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestGetPublicProfile(t *testing.T) {
	fbAuthor := uuid.New()

	makeUser := func(active, public bool) *domain.User {
		return &domain.User{ID: uuid.New(), Name: "Bob", IsActive: active, IsPublic: public}
	}

	newSvc := func(user *domain.User) *UserService {
		return NewUserService(&mockProfileUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return user, nil },
		}, &mockFeedbackRepo{
			listByUser: func(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error) {
				return []domain.Feedback{{FromUser: fbAuthor, Rating: 5}}, nil
			},
		})
	}

	t.Run("visible profile with feedback", func(t *testing.T) {
		u := makeUser(true, true)
		user, fbs, err := newSvc(u).GetPublicProfile(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, user.ID)
		require.Len(t, fbs, 1)
		assert.Equal(t, fbAuthor, fbs[0].FromUser)
	})

	t.Run("private profile hidden", func(t *testing.T) {
		u := makeUser(true, false)
		_, _, err := newSvc(u).GetPublicProfile(context.Background(), u.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("inactive profile hidden", func(t *testing.T) {
		u := makeUser(false, true)
		_, _, err := newSvc(u).GetPublicProfile(context.Background(), u.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
