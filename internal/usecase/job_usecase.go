package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) ListPublished(ctx context.Context) ([]domain.Job, error) {
	return u.jobRepo.ListPublished(ctx)
}

type savedJobUsecase struct {
	savedRepo domain.SavedJobRepository
	jobRepo   domain.JobRepository
}

func NewSavedJobUsecase(savedRepo domain.SavedJobRepository, jobRepo domain.JobRepository) domain.SavedJobUsecase {
	return &savedJobUsecase{savedRepo: savedRepo, jobRepo: jobRepo}
}

// Toggle flips the saved state of a published job and reports whether
// the job is saved afterwards.
func (u *savedJobUsecase) Toggle(ctx context.Context, candidateID string, jobID int64) (bool, error) {
	exists, err := u.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperror.NotFound("Job not found")
	}

	saved, err := u.savedRepo.Exists(ctx, candidateID, jobID)
	if err != nil {
		return false, err
	}
	if saved {
		if err := u.savedRepo.Delete(ctx, candidateID, jobID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := u.savedRepo.Insert(ctx, candidateID, jobID); err != nil {
		return false, err
	}
	return true, nil
}

func (u *savedJobUsecase) List(ctx context.Context, candidateID string) ([]domain.SavedJob, error) {
	return u.savedRepo.ListByCandidate(ctx, candidateID)
}
