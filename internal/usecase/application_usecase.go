package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

type applicationUsecase struct {
	appRepo domain.ApplicationRepository
	jobRepo domain.JobRepository
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{appRepo: appRepo, jobRepo: jobRepo}
}

// Apply records an application in the "applied" stage. Re-applying to
// the same job resets the existing application instead of duplicating
// or rejecting it.
func (u *applicationUsecase) Apply(ctx context.Context, candidateID string, jobID int64) (*domain.Application, error) {
	exists, err := u.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("Job not found")
	}

	app := &domain.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Stage:       domain.ApplicationStageApplied,
		Status:      domain.ApplicationStatusActive,
	}
	if err := u.appRepo.Upsert(ctx, app); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}

	logger.Log.Info("application submitted", "candidate_id", candidateID, "job_id", jobID)
	return app, nil
}

func (u *applicationUsecase) GetMyApplications(ctx context.Context, candidateID string) ([]domain.Application, error) {
	return u.appRepo.ListByCandidate(ctx, candidateID)
}
