package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

// mockSwapRepo embeds the interface so only the methods a test needs are
// implemented; anything else panics loudly.
type mockSwapRepo struct {
	repository.SwapRepository
	getByID       func(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error)
	existsPending func(ctx context.Context, fromUser, toUser uuid.UUID, offeredSkill, requestedSkill string) (bool, error)
	create        func(ctx context.Context, req *domain.SwapRequest) error
	updateStatus  func(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus, update repository.StatusUpdate) (bool, error)
	delete        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSwapRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	return m.getByID(ctx, id)
}

func (m *mockSwapRepo) ExistsPending(ctx context.Context, fromUser, toUser uuid.UUID, offeredSkill, requestedSkill string) (bool, error) {
	return m.existsPending(ctx, fromUser, toUser, offeredSkill, requestedSkill)
}

func (m *mockSwapRepo) Create(ctx context.Context, req *domain.SwapRequest) error {
	return m.create(ctx, req)
}

func (m *mockSwapRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus, update repository.StatusUpdate) (bool, error) {
	return m.updateStatus(ctx, id, from, to, update)
}

func (m *mockSwapRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockUserRepo struct {
	repository.UserRepository
	getByID func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByID(ctx, id)
}

func testSender() *domain.User {
	return &domain.User{
		ID:            uuid.New(),
		Name:          "Alice",
		SkillsOffered: []string{"Go", "Cooking"},
		IsActive:      true,
		IsPublic:      true,
	}
}

func testTarget() *domain.User {
	return &domain.User{
		ID:            uuid.New(),
		Name:          "Bob",
		SkillsOffered: []string{"Photography"},
		IsActive:      true,
		IsPublic:      true,
	}
}

func TestSwapCreate(t *testing.T) {
	sender := testSender()
	target := testTarget()

	validInput := CreateSwapInput{
		ToUser:         target.ID,
		OfferedSkill:   "Go",
		RequestedSkill: "Photography",
		Message:        "Trade?",
	}

	t.Run("success", func(t *testing.T) {
		var created *domain.SwapRequest
		svc := NewSwapService(&mockSwapRepo{
			existsPending: func(ctx context.Context, f, to uuid.UUID, os, rs string) (bool, error) {
				return false, nil
			},
			create: func(ctx context.Context, req *domain.SwapRequest) error {
				created = req
				return nil
			},
		}, &mockUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
		})

		req, err := svc.Create(context.Background(), sender, validInput)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, domain.SwapPending, req.Status)
		assert.Equal(t, sender.ID, req.FromUser)
		assert.Equal(t, target.ID, req.ToUser)
		assert.Equal(t, domain.MeetingOnline, req.MeetingType)
		assert.Equal(t, "Alice", req.FromUserName)
		assert.Equal(t, "Bob", req.ToUserName)
	})

	t.Run("self request", func(t *testing.T) {
		svc := NewSwapService(&mockSwapRepo{}, &mockUserRepo{})
		input := validInput
		input.ToUser = sender.ID
		_, err := svc.Create(context.Background(), sender, input)
		assert.ErrorIs(t, err, ErrSelfSwap)
	})

	t.Run("recipient missing or inactive", func(t *testing.T) {
		inactive := testTarget()
		inactive.IsActive = false

		for name, user := range map[string]*domain.User{"missing": nil, "inactive": inactive} {
			t.Run(name, func(t *testing.T) {
				svc := NewSwapService(&mockSwapRepo{}, &mockUserRepo{
					getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return user, nil },
				})
				_, err := svc.Create(context.Background(), sender, validInput)
				assert.ErrorIs(t, err, ErrRecipientNotFound)
			})
		}
	})

	t.Run("private profile", func(t *testing.T) {
		private := testTarget()
		private.IsPublic = false
		svc := NewSwapService(&mockSwapRepo{}, &mockUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return private, nil },
		})
		_, err := svc.Create(context.Background(), sender, validInput)
		assert.ErrorIs(t, err, ErrPrivateProfile)
	})

	t.Run("sender does not offer the skill", func(t *testing.T) {
		svc := NewSwapService(&mockSwapRepo{}, &mockUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
		})
		input := validInput
		input.OfferedSkill = "Juggling"
		_, err := svc.Create(context.Background(), sender, input)
		assert.ErrorIs(t, err, ErrSkillNotOffered)
	})

	t.Run("target does not offer the skill", func(t *testing.T) {
		svc := NewSwapService(&mockSwapRepo{}, &mockUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
		})
		input := validInput
		input.RequestedSkill = "Juggling"
		_, err := svc.Create(context.Background(), sender, input)
		assert.ErrorIs(t, err, ErrSkillNotAvailable)
	})

	t.Run("duplicate pending pre-check", func(t *testing.T) {
		svc := NewSwapService(&mockSwapRepo{
			existsPending: func(ctx context.Context, f, to uuid.UUID, os, rs string) (bool, error) {
				return true, nil
			},
		}, &mockUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
		})
		_, err := svc.Create(context.Background(), sender, validInput)
		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})

	t.Run("duplicate caught by unique index", func(t *testing.T) {
		svc := NewSwapService(&mockSwapRepo{
			existsPending: func(ctx context.Context, f, to uuid.UUID, os, rs string) (bool, error) {
				return false, nil
			},
			create: func(ctx context.Context, req *domain.SwapRequest) error {
				return repository.ErrDuplicate
			},
		}, &mockUserRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return target, nil },
		})
		_, err := svc.Create(context.Background(), sender, validInput)
		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})
}

func TestSwapUpdateStatus(t *testing.T) {
	senderID := uuid.New()
	recipientID := uuid.New()
	strangerID := uuid.New()

	makeReq := func(status domain.SwapStatus) *domain.SwapRequest {
		return &domain.SwapRequest{
			ID:       uuid.New(),
			FromUser: senderID,
			ToUser:   recipientID,
			Status:   status,
		}
	}

	tests := []struct {
		name    string
		current domain.SwapStatus
		target  domain.SwapStatus
		actor   uuid.UUID
		wantErr error
	}{
		{"recipient accepts pending", domain.SwapPending, domain.SwapAccepted, recipientID, nil},
		{"recipient rejects pending", domain.SwapPending, domain.SwapRejected, recipientID, nil},
		{"sender cancels pending", domain.SwapPending, domain.SwapCancelled, senderID, nil},
		{"sender completes accepted", domain.SwapAccepted, domain.SwapCompleted, senderID, nil},
		{"recipient completes accepted", domain.SwapAccepted, domain.SwapCompleted, recipientID, nil},

		{"sender cannot accept", domain.SwapPending, domain.SwapAccepted, senderID, ErrNotRecipient},
		{"sender cannot reject", domain.SwapPending, domain.SwapRejected, senderID, ErrNotRecipient},
		{"recipient cannot cancel", domain.SwapPending, domain.SwapCancelled, recipientID, ErrNotSender},
		{"stranger cannot complete", domain.SwapAccepted, domain.SwapCompleted, strangerID, ErrNotParticipant},

		{"cannot accept accepted", domain.SwapAccepted, domain.SwapAccepted, recipientID, ErrInvalidTransition},
		{"cannot reject completed", domain.SwapCompleted, domain.SwapRejected, recipientID, ErrInvalidTransition},
		{"cannot cancel accepted", domain.SwapAccepted, domain.SwapCancelled, senderID, ErrInvalidTransition},
		{"cannot complete pending", domain.SwapPending, domain.SwapCompleted, senderID, ErrInvalidTransition},
		{"cannot complete cancelled", domain.SwapCancelled, domain.SwapCompleted, recipientID, ErrInvalidTransition},
		{"cannot move to pending", domain.SwapAccepted, domain.SwapPending, recipientID, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := makeReq(tt.current)
			updated := makeReq(tt.target)
			updated.ID = req.ID

			svc := NewSwapService(&mockSwapRepo{
				getByID: func(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
					if tt.wantErr == nil {
						// First call returns the current row, the refetch
						// after the update returns the new state.
						defer func() { req = updated }()
					}
					return req, nil
				},
				updateStatus: func(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus, update repository.StatusUpdate) (bool, error) {
					assert.Equal(t, tt.current, from)
					assert.Equal(t, tt.target, to)
					return true, nil
				},
			}, &mockUserRepo{})

			got, err := svc.UpdateStatus(context.Background(), tt.actor, req.ID, UpdateSwapStatusInput{Status: tt.target})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, got.Status)
		})
	}

	t.Run("not found", func(t *testing.T) {
		svc := NewSwapService(&mockSwapRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) { return nil, nil },
		}, &mockUserRepo{})
		_, err := svc.UpdateStatus(context.Background(), recipientID, uuid.New(), UpdateSwapStatusInput{Status: domain.SwapAccepted})
		assert.ErrorIs(t, err, ErrSwapNotFound)
	})

	t.Run("lost the race", func(t *testing.T) {
		req := makeReq(domain.SwapPending)
		svc := NewSwapService(&mockSwapRepo{
			getByID: func(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) { return req, nil },
			updateStatus: func(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus, update repository.StatusUpdate) (bool, error) {
				// Another transition won between the read and the update.
				return false, nil
			},
		}, &mockUserRepo{})

		_, err := svc.UpdateStatus(context.Background(), recipientID, req.ID, UpdateSwapStatusInput{Status: domain.SwapAccepted})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestSwapDelete(t *testing.T) {
	senderID := uuid.New()
	recipientID := uuid.New()

	tests := []struct {
		name    string
		status  domain.SwapStatus
		actor   uuid.UUID
		wantErr error
	}{
		{"sender deletes pending", domain.SwapPending, senderID, nil},
		{"sender deletes rejected", domain.SwapRejected, senderID, nil},
		{"recipient cannot delete", domain.SwapPending, recipientID, ErrNotSender},
		{"cannot delete accepted", domain.SwapAccepted, senderID, ErrNotDeletable},
		{"cannot delete completed", domain.SwapCompleted, senderID, ErrNotDeletable},
		{"cannot delete cancelled", domain.SwapCancelled, senderID, ErrNotDeletable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			svc := NewSwapService(&mockSwapRepo{
				getByID: func(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
					return &domain.SwapRequest{ID: id, FromUser: senderID, ToUser: recipientID, Status: tt.status}, nil
				},
				delete: func(ctx context.Context, id uuid.UUID) error {
					deleted = true
					return nil
				},
			}, &mockUserRepo{})

			err := svc.Delete(context.Background(), tt.actor, uuid.New())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, deleted)
				return
			}
			require.NoError(t, err)
			assert.True(t, deleted)
		})
	}
}

func TestSwapGet(t *testing.T) {
	senderID := uuid.New()
	recipientID := uuid.New()
	req := &domain.SwapRequest{ID: uuid.New(), FromUser: senderID, ToUser: recipientID, Status: domain.SwapPending}

	svc := NewSwapService(&mockSwapRepo{
		getByID: func(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) { return req, nil },
	}, &mockUserRepo{})

	t.Run("party sees the request", func(t *testing.T) {
		got, err := svc.Get(context.Background(), senderID, req.ID)
		require.NoError(t, err)
		assert.Equal(t, req.ID, got.ID)
	})

	t.Run("outsider gets not found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), uuid.New(), req.ID)
		assert.ErrorIs(t, err, ErrSwapNotFound)
	})
}
