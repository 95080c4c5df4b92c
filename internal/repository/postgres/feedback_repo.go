package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/repository"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

func (r *FeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, user_id, from_user, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, fb.ID, fb.UserID, fb.FromUser, fb.Rating, fb.Comment, fb.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *FeedbackRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Feedback, error) {
	query := `
		SELECT f.id, f.user_id, f.from_user, f.rating, f.comment, f.created_at,
			u.name, u.profile_photo
		FROM feedbacks f
		JOIN users u ON f.from_user = u.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fbs []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(
			&fb.ID, &fb.UserID, &fb.FromUser, &fb.Rating, &fb.Comment, &fb.CreatedAt,
			&fb.FromName, &fb.FromPhoto,
		); err != nil {
			return nil, err
		}
		fbs = append(fbs, fb)
	}
	return fbs, rows.Err()
}

func (r *FeedbackRepo) ExistsFrom(ctx context.Context, userID, fromUser uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedbacks WHERE user_id = $1 AND from_user = $2)`,
		userID, fromUser,
	).Scan(&exists)
	return exists, err
}
