package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) ListPublished(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT j.id, j.title, j.description, j.location, j.employment_type,
			j.salary_min, j.salary_max, j.status,
			c.name, c.logo_url,
			COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}'),
			j.created_at
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		LEFT JOIN job_skills js ON js.job_id = j.id
		LEFT JOIN skills s ON s.id = js.skill_id
		WHERE j.status = $1
		GROUP BY j.id, c.name, c.logo_url
		ORDER BY j.created_at DESC`, domain.JobStatusPublished)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Location, &j.EmploymentType,
			&j.SalaryMin, &j.SalaryMax, &j.Status,
			&j.CompanyName, &j.CompanyLogoURL,
			pq.Array(&j.Skills), &j.CreatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (r *jobRepo) Exists(ctx context.Context, jobID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1 AND status = $2)`,
		jobID, domain.JobStatusPublished).Scan(&exists)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}
