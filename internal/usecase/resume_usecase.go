package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/aiclient"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/google/uuid"
)

type resumeUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	blobs       storage.BlobStore
	ai          *aiclient.Client
}

func NewResumeUsecase(
	profileRepo domain.ProfileRepository,
	userRepo domain.UserRepository,
	blobs storage.BlobStore,
	ai *aiclient.Client,
) domain.ResumeUsecase {
	return &resumeUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		blobs:       blobs,
		ai:          ai,
	}
}

// Upload validates and stores a resume, then runs AI text extraction
// for PDFs. Extraction failure degrades the upload (no resume_text)
// rather than failing it.
func (u *resumeUsecase) Upload(ctx context.Context, userID, filename string, data []byte, declaredMIME string) (*domain.ResumeInfo, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.DeletedAt != nil {
		return nil, apperror.NotFound("User not found")
	}

	result := security.ValidateResume(filename, data, declaredMIME)
	if !result.Valid {
		return nil, apperror.BadRequest(result.Error)
	}

	key := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.New().String(), result.Extension)
	url, err := u.blobs.Upload(ctx, key, data, declaredMIME)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var resumeText string
	if security.IsPDF(result.Extension) {
		text, err := u.ai.ParseResume(ctx, filename, data)
		if err != nil {
			logger.Log.Warn("resume text extraction failed", "user_id", userID, "error", err)
		} else {
			resumeText = text
		}
	}

	uploadedAt := time.Now()
	if err := u.profileRepo.UpsertResume(ctx, userID, url, resumeText, uploadedAt); err != nil {
		return nil, err
	}

	return u.profileRepo.GetResume(ctx, userID)
}

func (u *resumeUsecase) Get(ctx context.Context, userID string) (*domain.ResumeInfo, error) {
	info, err := u.profileRepo.GetResume(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, err
	}
	if info.ResumeURL == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	return info, nil
}
