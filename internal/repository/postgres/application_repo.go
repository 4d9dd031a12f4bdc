package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Upsert(ctx context.Context, app *domain.Application) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO job_applications (job_id, candidate_id, stage, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			stage = EXCLUDED.stage,
			status = EXCLUDED.status,
			applied_at = NOW(),
			updated_at = NOW()
		RETURNING id, applied_at, updated_at`,
		app.JobID, app.CandidateID, app.Stage, app.Status,
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *applicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.job_id, a.candidate_id, a.stage, a.status, a.applied_at, a.updated_at,
			j.title, c.name, c.logo_url,
			COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}')
		FROM job_applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN companies c ON c.id = j.company_id
		LEFT JOIN job_skills js ON js.job_id = j.id
		LEFT JOIN skills s ON s.id = js.skill_id
		WHERE a.candidate_id = $1
		GROUP BY a.id, j.title, c.name, c.logo_url
		ORDER BY a.applied_at DESC`, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Stage, &a.Status,
			&a.AppliedAt, &a.UpdatedAt, &a.JobTitle, &a.CompanyName, &a.CompanyLogoURL,
			pq.Array(&a.Skills)); err != nil {
			return nil, apperror.Internal(err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}
