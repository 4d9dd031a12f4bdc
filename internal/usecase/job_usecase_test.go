package usecase

import (
	"context"
	"net/http"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestToggleSavesUnsavedJob(t *testing.T) {
	savedRepo := new(MockSavedJobRepo)
	jobRepo := new(MockJobRepo)
	uc := NewSavedJobUsecase(savedRepo, jobRepo)

	jobRepo.On("Exists", mock.Anything, int64(42)).Return(true, nil)
	savedRepo.On("Exists", mock.Anything, "u1", int64(42)).Return(false, nil)
	savedRepo.On("Insert", mock.Anything, "u1", int64(42)).Return(nil)

	saved, err := uc.Toggle(context.Background(), "u1", 42)

	assert.NoError(t, err)
	assert.True(t, saved)
	savedRepo.AssertExpectations(t)
}

func TestToggleUnsavesSavedJob(t *testing.T) {
	savedRepo := new(MockSavedJobRepo)
	jobRepo := new(MockJobRepo)
	uc := NewSavedJobUsecase(savedRepo, jobRepo)

	jobRepo.On("Exists", mock.Anything, int64(42)).Return(true, nil)
	savedRepo.On("Exists", mock.Anything, "u1", int64(42)).Return(true, nil)
	savedRepo.On("Delete", mock.Anything, "u1", int64(42)).Return(nil)

	saved, err := uc.Toggle(context.Background(), "u1", 42)

	assert.NoError(t, err)
	assert.False(t, saved)
	savedRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleUnknownJobIs404(t *testing.T) {
	savedRepo := new(MockSavedJobRepo)
	jobRepo := new(MockJobRepo)
	uc := NewSavedJobUsecase(savedRepo, jobRepo)

	jobRepo.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	_, err := uc.Toggle(context.Background(), "u1", 99)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	savedRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplySubmitsApplication(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	uc := NewApplicationUsecase(appRepo, jobRepo)

	jobRepo.On("Exists", mock.Anything, int64(42)).Return(true, nil)
	appRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(app *domain.Application) bool {
		return app.JobID == 42 &&
			app.CandidateID == "u1" &&
			app.Stage == domain.ApplicationStageApplied &&
			app.Status == domain.ApplicationStatusActive
	})).Return(nil)

	app, err := uc.Apply(context.Background(), "u1", 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), app.JobID)
	appRepo.AssertExpectations(t)
}

func TestApplyUnknownJobIs404(t *testing.T) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	uc := NewApplicationUsecase(appRepo, jobRepo)

	jobRepo.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	_, err := uc.Apply(context.Background(), "u1", 99)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	appRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestListPublishedPassesThrough(t *testing.T) {
	jobRepo := new(MockJobRepo)
	uc := NewJobUsecase(jobRepo)

	jobRepo.On("ListPublished", mock.Anything).Return([]domain.Job{
		{ID: 1, Title: "Backend Engineer", Status: domain.JobStatusPublished},
	}, nil)

	jobs, err := uc.ListPublished(context.Background())

	assert.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
}
