package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("resource not found")

const (
	JobStatusPublished = "published"
	JobStatusDraft     = "draft"
	JobStatusClosed    = "closed"
)

type Job struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	Location       *string   `json:"location,omitempty"`
	EmploymentType *string   `json:"employment_type,omitempty"`
	SalaryMin      *int64    `json:"salary_min,omitempty"`
	SalaryMax      *int64    `json:"salary_max,omitempty"`
	Status         string    `json:"status"`
	CompanyName    string    `json:"company_name"`
	CompanyLogoURL *string   `json:"company_logo_url,omitempty"`
	Skills         []string  `json:"skills"`
	CreatedAt      time.Time `json:"created_at"`
}

type SavedJob struct {
	JobID          int64     `json:"job_id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	CompanyLogoURL *string   `json:"company_logo_url,omitempty"`
	SavedAt        time.Time `json:"saved_at"`
}

type JobRepository interface {
	// ListPublished returns published jobs with joined company and
	// skill names, newest first.
	ListPublished(ctx context.Context) ([]Job, error)
	Exists(ctx context.Context, jobID int64) (bool, error)
}

type SavedJobRepository interface {
	Exists(ctx context.Context, candidateID string, jobID int64) (bool, error)
	// Insert is idempotent: a unique-constraint conflict is absorbed,
	// not surfaced.
	Insert(ctx context.Context, candidateID string, jobID int64) error
	Delete(ctx context.Context, candidateID string, jobID int64) error
	ListByCandidate(ctx context.Context, candidateID string) ([]SavedJob, error)
}

type JobUsecase interface {
	ListPublished(ctx context.Context) ([]Job, error)
}

type SavedJobUsecase interface {
	// Toggle flips the saved state and reports the resulting state.
	Toggle(ctx context.Context, candidateID string, jobID int64) (bool, error)
	List(ctx context.Context, candidateID string) ([]SavedJob, error)
}
