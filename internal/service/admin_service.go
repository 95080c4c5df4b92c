package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

var (
	ErrSelfAction      = errors.New("cannot perform this action on yourself")
	ErrAdminTarget     = errors.New("cannot perform this action on another administrator")
	ErrConfirmRequired = errors.New("confirmation required")
)

type AdminService struct {
	userRepo repository.UserRepository
	swapRepo repository.SwapRepository
}

func NewAdminService(userRepo repository.UserRepository, swapRepo repository.SwapRepository) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		swapRepo: swapRepo,
	}
}

type AdminListUsersInput struct {
	Status string
	Role   string
	Search string
	Page   int
	Limit  int
}

type AdminListSwapsInput struct {
	Status domain.SwapStatus
	Sort   string
	Page   int
	Limit  int
}

type UserStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Public int `json:"public"`
	Admins int `json:"admins"`
	Recent int `json:"recent"`
}

type SwapStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Completed int `json:"completed"`
	Recent    int `json:"recent"`
}

type PlatformStats struct {
	Users         UserStats           `json:"users"`
	Requests      SwapStats           `json:"requests"`
	PopularSkills []domain.SkillCount `json:"popularSkills"`
}

type ReportPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ReportSummary struct {
	TotalUsers     int `json:"totalUsers"`
	TotalRequests  int `json:"totalRequests"`
	ActiveUsers    int `json:"activeUsers"`
	CompletedSwaps int `json:"completedSwaps"`
}

type ActivityReport struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Period      ReportPeriod         `json:"period"`
	Summary     ReportSummary        `json:"summary"`
	Users       []domain.User        `json:"users"`
	Requests    []domain.SwapRequest `json:"requests"`
}

func (s *AdminService) ListUsers(ctx context.Context, input AdminListUsersInput) ([]domain.User, *Pagination, error) {
	users, total, err := s.userRepo.ListAll(ctx, repository.AdminUserFilter{
		Status: input.Status,
		Role:   input.Role,
		Search: input.Search,
		Offset: (input.Page - 1) * input.Limit,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, NewPagination(input.Page, input.Limit, total), nil
}

func (s *AdminService) ListSwaps(ctx context.Context, input AdminListSwapsInput) ([]domain.SwapRequest, *Pagination, error) {
	reqs, total, err := s.swapRepo.ListAll(ctx, repository.AdminSwapFilter{
		Status: input.Status,
		Sort:   input.Sort,
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

// Stats aggregates platform counters. The counts are independent reads,
// so they run concurrently.
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	var stats PlatformStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { stats.Users.Total, err = s.userRepo.CountTotal(ctx); return })
	g.Go(func() (err error) { stats.Users.Active, err = s.userRepo.CountActive(ctx); return })
	g.Go(func() (err error) { stats.Users.Public, err = s.userRepo.CountPublic(ctx); return })
	g.Go(func() (err error) { stats.Users.Admins, err = s.userRepo.CountAdmins(ctx); return })
	g.Go(func() (err error) {
		stats.Users.Recent, err = s.userRepo.CountCreatedSince(ctx, thirtyDaysAgo)
		return
	})

	g.Go(func() (err error) { stats.Requests.Total, err = s.swapRepo.CountTotal(ctx); return })
	g.Go(func() (err error) {
		stats.Requests.Pending, err = s.swapRepo.CountByStatus(ctx, domain.SwapPending)
		return
	})
	g.Go(func() (err error) {
		stats.Requests.Accepted, err = s.swapRepo.CountByStatus(ctx, domain.SwapAccepted)
		return
	})
	g.Go(func() (err error) {
		stats.Requests.Completed, err = s.swapRepo.CountByStatus(ctx, domain.SwapCompleted)
		return
	})
	g.Go(func() (err error) {
		stats.Requests.Recent, err = s.swapRepo.CountCreatedSince(ctx, thirtyDaysAgo)
		return
	})

	g.Go(func() (err error) { stats.PopularSkills, err = s.userRepo.TopOfferedSkills(ctx, 10); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if stats.PopularSkills == nil {
		stats.PopularSkills = []domain.SkillCount{}
	}
	return &stats, nil
}

// Report builds the activity report for an optional date range.
func (s *AdminService) Report(ctx context.Context, start, end *time.Time) (*ActivityReport, error) {
	users, err := s.userRepo.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	reqs, err := s.swapRepo.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	if reqs == nil {
		reqs = []domain.SwapRequest{}
	}

	var activeUsers, completed int
	for _, u := range users {
		if u.IsActive {
			activeUsers++
		}
	}
	for _, r := range reqs {
		if r.Status == domain.SwapCompleted {
			completed++
		}
	}

	period := ReportPeriod{StartDate: "Beginning", EndDate: "Now"}
	if start != nil {
		period.StartDate = start.Format(time.RFC3339)
	}
	if end != nil {
		period.EndDate = end.Format(time.RFC3339)
	}

	return &ActivityReport{
		GeneratedAt: time.Now(),
		Period:      period,
		Summary: ReportSummary{
			TotalUsers:     len(users),
			TotalRequests:  len(reqs),
			ActiveUsers:    activeUsers,
			CompletedSwaps: completed,
		},
		Users:    users,
		Requests: reqs,
	}, nil
}

// ToggleBan flips the target's active flag and returns the new state.
func (s *AdminService) ToggleBan(ctx context.Context, adminID, targetID uuid.UUID) (bool, error) {
	if adminID == targetID {
		return false, ErrSelfAction
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, ErrUserNotFound
	}
	if target.IsAdmin() {
		return false, ErrAdminTarget
	}

	newState := !target.IsActive
	if err := s.userRepo.SetActive(ctx, targetID, newState); err != nil {
		return false, err
	}
	if !newState {
		// A banned user keeps no session.
		if err := s.userRepo.UpdateRefreshToken(ctx, targetID, ""); err != nil {
			return false, err
		}
	}
	return newState, nil
}

// DeleteUser removes the user permanently; swaps and feedbacks cascade.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, targetID uuid.UUID, confirm bool) error {
	if !confirm {
		return ErrConfirmRequired
	}
	if adminID == targetID {
		return ErrSelfAction
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.IsAdmin() {
		return ErrAdminTarget
	}

	return s.userRepo.Delete(ctx, targetID)
}
