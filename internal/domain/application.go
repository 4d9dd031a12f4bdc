package domain

import (
	"context"
	"time"
)

const (
	ApplicationStageApplied = "applied"

	ApplicationStatusActive = "active"
)

type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	Stage       string    `json:"stage"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined job/company data for list views
	JobTitle       string   `json:"job_title,omitempty"`
	CompanyName    string   `json:"company_name,omitempty"`
	CompanyLogoURL *string  `json:"company_logo_url,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

type ApplicationRepository interface {
	// Upsert is keyed on (job_id, candidate_id): re-applying resets
	// stage, status, and applied_at instead of erroring.
	Upsert(ctx context.Context, app *Application) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Application, error)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, candidateID string, jobID int64) (*Application, error)
	GetMyApplications(ctx context.Context, candidateID string) ([]Application, error)
}
