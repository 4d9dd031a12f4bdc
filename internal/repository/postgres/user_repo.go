package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, user_type, status,
	profile_photo_url, preferred_language, timezone, is_email_verified, is_2fa_enabled,
	deleted_at, created_at, updated_at, last_login_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// classifyUnique maps a unique-constraint violation to a domain-specific
// conflict by the offending constraint. Unknown constraints stay 500.
func classifyUnique(pgErr *pgconn.PgError) *apperror.AppError {
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return apperror.Conflict("Email already registered")
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return apperror.Conflict("Phone number already registered")
	default:
		return apperror.Internal(pgErr)
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.UserType, &u.Status,
		&u.ProfilePhotoURL, &u.PreferredLanguage, &u.Timezone, &u.IsEmailVerified, &u.Is2FAEnabled,
		&u.DeletedAt, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, user_type, status,
			preferred_language, timezone, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.UserType, user.Status, user.PreferredLanguage, user.Timezone,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return classifyUnique(pgErr)
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1) AND deleted_at IS NULL`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) UpdatePhotoURL(ctx context.Context, id string, url string) error {
	query := `UPDATE users SET profile_photo_url = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmdTag, err := r.db.Exec(ctx, query, id, url)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
