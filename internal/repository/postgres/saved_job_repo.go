package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type savedJobRepo struct {
	db *pgxpool.Pool
}

func NewSavedJobRepository(db *pgxpool.Pool) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Exists(ctx context.Context, candidateID string, jobID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID).Scan(&exists)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (r *savedJobRepo) Insert(ctx context.Context, candidateID string, jobID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (candidate_id, job_id, saved_at) VALUES ($1, $2, NOW())`,
		candidateID, jobID)
	if err != nil {
		// A concurrent save of the same job is not an error: the job
		// ends up saved either way.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *savedJobRepo) Delete(ctx context.Context, candidateID string, jobID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *savedJobRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.SavedJob, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sj.job_id, j.title, c.name, c.logo_url, sj.saved_at
		FROM saved_jobs sj
		JOIN jobs j ON j.id = sj.job_id
		JOIN companies c ON c.id = j.company_id
		WHERE sj.candidate_id = $1
		ORDER BY sj.saved_at DESC`, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	saved := []domain.SavedJob{}
	for rows.Next() {
		var s domain.SavedJob
		if err := rows.Scan(&s.JobID, &s.Title, &s.CompanyName, &s.CompanyLogoURL, &s.SavedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		saved = append(saved, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return saved, nil
}
