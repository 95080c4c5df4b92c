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

const userColumns = `id, email, name, password_hash, location, bio, skills_offered, skills_wanted,
	availability, profile_photo, is_public, role, rating,
	(SELECT COUNT(*) FROM feedbacks f WHERE f.user_id = users.id) AS feedback_count,
	refresh_token, is_active, last_login, created_at, updated_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, location, bio, skills_offered,
			skills_wanted, availability, is_public, role, rating, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Location, user.Bio,
		user.SkillsOffered, user.SkillsWanted, user.Availability,
		user.IsPublic, user.Role, user.Rating, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, location = $3, bio = $4, skills_offered = $5, skills_wanted = $6,
			availability = $7, is_public = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Location, user.Bio, user.SkillsOffered,
		user.SkillsWanted, user.Availability, user.IsPublic, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`, id, token)
	return err
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	return err
}

func (r *UserRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET rating = $2, updated_at = NOW() WHERE id = $1`, id, rating)
	return err
}

func (r *UserRepo) UpdatePhoto(ctx context.Context, id uuid.UUID, path string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET profile_photo = $2, updated_at = NOW() WHERE id = $1`, id, path)
	return err
}

func (r *UserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Feedbacks and swap requests go with the row via ON DELETE CASCADE.
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UserRepo) ListPublic(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	where := `is_public AND is_active`
	args := []any{}

	if filter.ExcludeID != uuid.Nil {
		args = append(args, filter.ExcludeID)
		where += fmt.Sprintf(" AND id <> $%d", len(args))
	}
	if filter.Skill != "" {
		args = append(args, "%"+filter.Skill+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (EXISTS (SELECT 1 FROM unnest(skills_offered) s WHERE s ILIKE $%d)
			OR EXISTS (SELECT 1 FROM unnest(skills_wanted) s WHERE s ILIKE $%d))`, n, n)
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		where += fmt.Sprintf(" AND location ILIKE $%d", len(args))
	}
	if filter.Availability != "" {
		args = append(args, filter.Availability)
		where += fmt.Sprintf(" AND $%d = ANY(availability)", len(args))
	}

	var order string
	switch filter.Sort {
	case "newest":
		order = "created_at DESC"
	case "name":
		order = "name ASC"
	default:
		order = "rating DESC, feedback_count DESC"
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		userColumns, where, order, len(args)-1, len(args))

	users, err := r.queryUsers(ctx, query, args...)
	return users, total, err
}

func (r *UserRepo) ListAll(ctx context.Context, filter repository.AdminUserFilter) ([]domain.User, int, error) {
	where := `TRUE`
	args := []any{}

	switch filter.Status {
	case "active":
		where += " AND is_active"
	case "inactive":
		where += " AND NOT is_active"
	}
	if filter.Role != "" && filter.Role != "all" {
		args = append(args, filter.Role)
		where += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR location ILIKE $%d)", n, n, n)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)-1, len(args))

	users, err := r.queryUsers(ctx, query, args...)
	return users, total, err
}

func (r *UserRepo) ListCreatedBetween(ctx context.Context, start, end *time.Time) ([]domain.User, error) {
	where := `TRUE`
	args := []any{}
	if start != nil {
		args = append(args, *start)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s ORDER BY created_at DESC", userColumns, where)
	return r.queryUsers(ctx, query, args...)
}

func (r *UserRepo) CountTotal(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *UserRepo) CountActive(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE is_active`)
}

func (r *UserRepo) CountPublic(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE is_public AND is_active`)
}

func (r *UserRepo) CountAdmins(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE role = 'admin'`)
}

func (r *UserRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE is_active AND created_at >= $1`, since)
}

func (r *UserRepo) TopOfferedSkills(ctx context.Context, limit int) ([]domain.SkillCount, error) {
	query := `
		SELECT s.skill, COUNT(*) AS cnt
		FROM users u
		CROSS JOIN LATERAL unnest(u.skills_offered) AS s(skill)
		WHERE u.is_active
		GROUP BY s.skill
		ORDER BY cnt DESC, s.skill ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.SkillCount
	for rows.Next() {
		var sc domain.SkillCount
		if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (r *UserRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *UserRepo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUserRow(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := scanUserRow(r.pool.QueryRow(ctx, query, arg), &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUserRow(row pgx.Row, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Location, &u.Bio,
		&u.SkillsOffered, &u.SkillsWanted, &u.Availability, &u.ProfilePhoto,
		&u.IsPublic, &u.Role, &u.Rating, &u.FeedbackCount,
		&u.RefreshToken, &u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
}
