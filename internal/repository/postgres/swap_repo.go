package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

const swapColumns = `r.id, r.from_user, r.to_user, r.offered_skill, r.requested_skill, r.message,
	r.status, r.rejection_reason, r.cancellation_reason, r.scheduled_date, r.duration,
	r.meeting_type, r.meeting_details, r.accepted_at, r.rejected_at, r.cancelled_at,
	r.completed_at, r.created_at, r.updated_at,
	uf.name, ut.name, uf.profile_photo, ut.profile_photo`

const swapJoins = `
	FROM swap_requests r
	JOIN users uf ON r.from_user = uf.id
	JOIN users ut ON r.to_user = ut.id`

type SwapRepo struct {
	pool *pgxpool.Pool
}

func NewSwapRepo(pool *pgxpool.Pool) *SwapRepo {
	return &SwapRepo{pool: pool}
}

func (r *SwapRepo) Create(ctx context.Context, req *domain.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (id, from_user, to_user, offered_skill, requested_skill,
			message, status, scheduled_date, duration, meeting_type, meeting_details,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		req.ID, req.FromUser, req.ToUser, req.OfferedSkill, req.RequestedSkill,
		req.Message, req.Status, req.ScheduledDate, req.Duration, req.MeetingType,
		req.MeetingDetails, req.CreatedAt, req.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *SwapRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	var req domain.SwapRequest
	err := scanSwapRow(r.pool.QueryRow(ctx, "SELECT "+swapColumns+swapJoins+" WHERE r.id = $1", id), &req)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *SwapRepo) ExistsPending(ctx context.Context, fromUser, toUser uuid.UUID, offeredSkill, requestedSkill string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM swap_requests
			WHERE from_user = $1 AND to_user = $2
				AND offered_skill = $3 AND requested_skill = $4
				AND status = 'pending')`,
		fromUser, toUser, offeredSkill, requestedSkill,
	).Scan(&exists)
	return exists, err
}

func (r *SwapRepo) ListByUser(ctx context.Context, filter repository.SwapFilter) ([]domain.SwapRequest, int, error) {
	args := []any{filter.UserID}
	var where string
	switch filter.Type {
	case "sent":
		where = "r.from_user = $1"
	case "received":
		where = "r.to_user = $1"
	default:
		where = "(r.from_user = $1 OR r.to_user = $1)"
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM swap_requests r WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d",
		swapColumns, swapJoins, where, len(args)-1, len(args))

	reqs, err := r.querySwaps(ctx, query, args...)
	return reqs, total, err
}

func (r *SwapRepo) ListAll(ctx context.Context, filter repository.AdminSwapFilter) ([]domain.SwapRequest, int, error) {
	where := "TRUE"
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}

	var order string
	switch filter.Sort {
	case "oldest":
		order = "r.created_at ASC"
	case "status":
		order = "r.status ASC, r.created_at DESC"
	default:
		order = "r.created_at DESC"
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM swap_requests r WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		swapColumns, swapJoins, where, order, len(args)-1, len(args))

	reqs, err := r.querySwaps(ctx, query, args...)
	return reqs, total, err
}

func (r *SwapRepo) ListCreatedBetween(ctx context.Context, start, end *time.Time) ([]domain.SwapRequest, error) {
	where := "TRUE"
	args := []any{}
	if start != nil {
		args = append(args, *start)
		where += fmt.Sprintf(" AND r.created_at >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		where += fmt.Sprintf(" AND r.created_at <= $%d", len(args))
	}
	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY r.created_at DESC", swapColumns, swapJoins, where)
	return r.querySwaps(ctx, query, args...)
}

// UpdateStatus moves a request from one status to another atomically.
// The WHERE clause on the expected status makes concurrent transitions
// race-safe: the loser sees zero rows and reports false.
func (r *SwapRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus, update repository.StatusUpdate) (bool, error) {
	var set string
	args := []any{id, from, to, update.At}
	switch to {
	case domain.SwapAccepted:
		set = "accepted_at = $4"
	case domain.SwapRejected:
		set = "rejected_at = $4, rejection_reason = $5"
		args = append(args, update.Reason)
	case domain.SwapCancelled:
		set = "cancelled_at = $4, cancellation_reason = $5"
		args = append(args, update.Reason)
	case domain.SwapCompleted:
		set = "completed_at = $4"
	default:
		return false, fmt.Errorf("unsupported target status %q", to)
	}

	query := fmt.Sprintf(`
		UPDATE swap_requests
		SET status = $3, updated_at = $4, %s
		WHERE id = $1 AND status = $2`, set)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SwapRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM swap_requests WHERE id = $1`, id)
	return err
}

func (r *SwapRepo) CountTotal(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM swap_requests`).Scan(&n)
	return n, err
}

func (r *SwapRepo) CountByStatus(ctx context.Context, status domain.SwapStatus) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM swap_requests WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *SwapRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM swap_requests WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

func (r *SwapRepo) querySwaps(ctx context.Context, query string, args ...any) ([]domain.SwapRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.SwapRequest
	for rows.Next() {
		var req domain.SwapRequest
		if err := scanSwapRow(rows, &req); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func scanSwapRow(row pgx.Row, req *domain.SwapRequest) error {
	return row.Scan(
		&req.ID, &req.FromUser, &req.ToUser, &req.OfferedSkill, &req.RequestedSkill,
		&req.Message, &req.Status, &req.RejectionReason, &req.CancellationReason,
		&req.ScheduledDate, &req.Duration, &req.MeetingType, &req.MeetingDetails,
		&req.AcceptedAt, &req.RejectedAt, &req.CancelledAt, &req.CompletedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.FromUserName, &req.ToUserName, &req.FromUserPhoto, &req.ToUserPhoto,
	)
}
