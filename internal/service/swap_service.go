package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

var (
	ErrSwapNotFound      = errors.New("swap request not found")
	ErrSelfSwap          = errors.New("cannot send a swap request to yourself")
	ErrRecipientNotFound = errors.New("target user not found or inactive")
	ErrPrivateProfile    = errors.New("cannot send request to private profile")
	ErrSkillNotOffered   = errors.New("you must offer this skill in your profile")
	ErrSkillNotAvailable = errors.New("target user does not offer the requested skill")
	ErrDuplicateRequest  = errors.New("a pending request for this skill exchange already exists")
	ErrNotRecipient      = errors.New("only the recipient can perform this action")
	ErrNotSender         = errors.New("only the sender can perform this action")
	ErrNotParticipant    = errors.New("only parties involved can perform this action")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotDeletable      = errors.New("only pending or rejected requests can be deleted")
)

type SwapService struct {
	swapRepo repository.SwapRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository) *SwapService {
	return &SwapService{
		swapRepo: swapRepo,
		userRepo: userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *SwapService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreateSwapInput struct {
	ToUser         uuid.UUID  `json:"toUser"`
	OfferedSkill   string     `json:"offeredSkill"`
	RequestedSkill string     `json:"requestedSkill"`
	Message        string     `json:"message"`
	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	Duration       string     `json:"duration"`
	MeetingType    string     `json:"meetingType"`
	MeetingDetails string     `json:"meetingDetails"`
}

type ListSwapsInput struct {
	Type   string
	Status domain.SwapStatus
	Page   int
	Limit  int
}

type UpdateSwapStatusInput struct {
	Status             domain.SwapStatus `json:"status"`
	RejectionReason    string            `json:"rejectionReason"`
	CancellationReason string            `json:"cancellationReason"`
}

// Create validates and stores a new pending swap request from the sender.
func (s *SwapService) Create(ctx context.Context, sender *domain.User, input CreateSwapInput) (*domain.SwapRequest, error) {
	if sender.ID == input.ToUser {
		return nil, ErrSelfSwap
	}

	target, err := s.userRepo.GetByID(ctx, input.ToUser)
	if err != nil {
		return nil, fmt.Errorf("looking up target user: %w", err)
	}
	if target == nil || !target.IsActive {
		return nil, ErrRecipientNotFound
	}
	if !target.IsPublic {
		return nil, ErrPrivateProfile
	}

	if !sender.OffersSkill(input.OfferedSkill) {
		return nil, ErrSkillNotOffered
	}
	if !target.OffersSkill(input.RequestedSkill) {
		return nil, ErrSkillNotAvailable
	}

	// Friendly pre-check; the partial unique index is the atomic backstop.
	exists, err := s.swapRepo.ExistsPending(ctx, sender.ID, target.ID, input.OfferedSkill, input.RequestedSkill)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	meetingType := input.MeetingType
	if meetingType == "" {
		meetingType = domain.MeetingOnline
	}

	now := time.Now()
	req := &domain.SwapRequest{
		ID:             uuid.New(),
		FromUser:       sender.ID,
		ToUser:         target.ID,
		OfferedSkill:   input.OfferedSkill,
		RequestedSkill: input.RequestedSkill,
		Message:        input.Message,
		Status:         domain.SwapPending,
		ScheduledDate:  input.ScheduledDate,
		Duration:       input.Duration,
		MeetingType:    meetingType,
		MeetingDetails: input.MeetingDetails,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.swapRepo.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("creating swap request: %w", err)
	}

	req.FromUserName = sender.Name
	req.FromUserPhoto = sender.ProfilePhoto
	req.ToUserName = target.Name
	req.ToUserPhoto = target.ProfilePhoto

	if s.notifier != nil {
		s.notifier.NotifySwapCreated(req)
	}

	return req, nil
}

// List returns the user's swap requests, filtered and paginated.
func (s *SwapService) List(ctx context.Context, userID uuid.UUID, input ListSwapsInput) ([]domain.SwapRequest, *Pagination, error) {
	reqs, total, err := s.swapRepo.ListByUser(ctx, repository.SwapFilter{
		UserID: userID,
		Type:   input.Type,
		Status: input.Status,
		Offset: (input.Page - 1) * input.Limit,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	if reqs == nil {
		reqs = []domain.SwapRequest{}
	}
	return reqs, NewPagination(input.Page, input.Limit, total), nil
}

// Get returns a swap request visible only to its two parties.
func (s *SwapService) Get(ctx context.Context, userID, requestID uuid.UUID) (*domain.SwapRequest, error) {
	req, err := s.swapRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil || !req.Party(userID) {
		return nil, ErrSwapNotFound
	}
	return req, nil
}

// UpdateStatus applies one lifecycle transition:
//
//	pending  -> accepted   (recipient)
//	pending  -> rejected   (recipient)
//	pending  -> cancelled  (sender)
//	accepted -> completed  (either party)
//
// Anything else fails with an authorization or invalid-state error.
func (s *SwapService) UpdateStatus(ctx context.Context, userID, requestID uuid.UUID, input UpdateSwapStatusInput) (*domain.SwapRequest, error) {
	req, err := s.swapRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrSwapNotFound
	}

	var from domain.SwapStatus
	var reason string

	switch input.Status {
	case domain.SwapAccepted, domain.SwapRejected:
		if req.ToUser != userID {
			return nil, ErrNotRecipient
		}
		from = domain.SwapPending
		reason = input.RejectionReason
	case domain.SwapCancelled:
		if req.FromUser != userID {
			return nil, ErrNotSender
		}
		from = domain.SwapPending
		reason = input.CancellationReason
	case domain.SwapCompleted:
		if !req.Party(userID) {
			return nil, ErrNotParticipant
		}
		from = domain.SwapAccepted
	default:
		return nil, ErrInvalidTransition
	}

	if req.Status != from {
		return nil, ErrInvalidTransition
	}

	ok, err := s.swapRepo.UpdateStatus(ctx, requestID, from, input.Status, repository.StatusUpdate{
		Reason: reason,
		At:     time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("updating swap status: %w", err)
	}
	if !ok {
		// Someone else moved the request first.
		return nil, ErrInvalidTransition
	}

	updated, err := s.swapRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrSwapNotFound
	}

	if s.notifier != nil {
		s.notifier.NotifySwapUpdated(updated, userID)
	}

	return updated, nil
}

// Delete removes a request; sender only, and only while pending or rejected.
func (s *SwapService) Delete(ctx context.Context, userID, requestID uuid.UUID) error {
	req, err := s.swapRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrSwapNotFound
	}
	if req.FromUser != userID {
		return ErrNotSender
	}
	if !req.Deletable() {
		return ErrNotDeletable
	}

	return s.swapRepo.Delete(ctx, requestID)
}
