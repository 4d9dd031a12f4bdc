package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	pkgvalidation "go-jobboard-backend/pkg/validation"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	blobs       storage.BlobStore
	validate    *validator.Validate
}

func NewProfileUsecase(
	profileRepo domain.ProfileRepository,
	userRepo domain.UserRepository,
	blobs storage.BlobStore,
	validate *validator.Validate,
) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		blobs:       blobs,
		validate:    validate,
	}
}

func (u *profileUsecase) GetFullProfile(ctx context.Context, userID string) (*domain.FullProfile, error) {
	full, err := u.profileRepo.GetFullProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return full, nil
}

// UpdateProfile applies a partial profile update: normalize, validate
// everything up front, partition the payload into its storage buckets,
// hand the whole write set to the repository as one transaction, then
// re-read so the response reflects exactly what storage now holds.
func (u *profileUsecase) UpdateProfile(ctx context.Context, userID string, upd *domain.ProfileUpdate) (*domain.FullProfile, error) {
	upd.Normalize()

	var errs []string
	if err := u.validate.Struct(upd); err != nil {
		errs = pkgvalidation.FormatValidationErrors(err)
	}
	if upd.ExpectedSalaryMin != nil && upd.ExpectedSalaryMax != nil &&
		*upd.ExpectedSalaryMin > *upd.ExpectedSalaryMax {
		errs = append(errs, "Minimum expected salary cannot exceed maximum expected salary")
	}
	if len(errs) > 0 {
		return nil, apperror.Unprocessable("Validation failed", errs)
	}

	write := &domain.ProfileWrite{
		UserFields:    upd.UserFields(),
		ProfileFields: upd.ProfileFields(),
	}
	if upd.Experience != nil {
		rows := toExperience(*upd.Experience)
		write.Experience = &rows
	}
	if upd.Education != nil {
		rows := toEducation(*upd.Education)
		write.Education = &rows
	}
	if upd.Skills != nil {
		rows := toSkills(*upd.Skills)
		write.Skills = &rows
	}
	if upd.Languages != nil {
		rows := toLanguages(*upd.Languages)
		write.Languages = &rows
	}
	if upd.Certifications != nil {
		rows := toCertifications(*upd.Certifications)
		write.Certifications = &rows
	}

	if err := u.profileRepo.ApplyUpdate(ctx, userID, write); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	return u.GetFullProfile(ctx, userID)
}

// UploadAvatar stores a validated image and points the user record at
// it. The previous blob is removed best effort after the swap.
func (u *profileUsecase) UploadAvatar(ctx context.Context, user *domain.User, filename string, data []byte, declaredMIME string) (string, error) {
	result := security.ValidateAvatar(filename, data, declaredMIME)
	if !result.Valid {
		return "", apperror.BadRequest(result.Error)
	}

	key := fmt.Sprintf("avatars/%s/%s%s", user.ID, uuid.New().String(), result.Extension)
	url, err := u.blobs.Upload(ctx, key, data, contentTypeForExt(result.Extension))
	if err != nil {
		return "", apperror.Internal(err)
	}

	if err := u.userRepo.UpdatePhotoURL(ctx, user.ID, url); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("User not found")
		}
		return "", apperror.Internal(err)
	}

	if user.ProfilePhotoURL != nil {
		if oldKey := u.blobs.KeyFromURL(*user.ProfilePhotoURL); oldKey != "" {
			go func(key string) {
				cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := u.blobs.Delete(cleanupCtx, key); err != nil {
					logger.Log.Warn("failed to delete previous avatar", "key", key, "error", err)
				}
			}(oldKey)
		}
	}

	return url, nil
}

func (u *profileUsecase) GetPublicProfile(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.DeletedAt != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user.Public(), nil
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// The Input-to-entity converters strip client-supplied IDs: replacement
// rows are always inserted fresh with server-assigned identifiers.

func toExperience(in []domain.ExperienceInput) []domain.Experience {
	out := make([]domain.Experience, 0, len(in))
	for _, e := range in {
		out = append(out, domain.Experience{
			CompanyName:    e.CompanyName,
			JobTitle:       e.JobTitle,
			EmploymentType: e.EmploymentType,
			Location:       e.Location,
			StartDate:      e.StartDate,
			EndDate:        e.EndDate,
			IsCurrent:      e.IsCurrent,
			Description:    e.Description,
			SortOrder:      e.SortOrder,
		})
	}
	return out
}

func toEducation(in []domain.EducationInput) []domain.Education {
	out := make([]domain.Education, 0, len(in))
	for _, e := range in {
		out = append(out, domain.Education{
			InstitutionName: e.InstitutionName,
			Degree:          e.Degree,
			FieldOfStudy:    e.FieldOfStudy,
			StartYear:       e.StartYear,
			EndYear:         e.EndYear,
			Grade:           e.Grade,
			Description:     e.Description,
			SortOrder:       e.SortOrder,
		})
	}
	return out
}

func toSkills(in []domain.SkillInput) []domain.CandidateSkill {
	out := make([]domain.CandidateSkill, 0, len(in))
	for _, s := range in {
		out = append(out, domain.CandidateSkill{
			SkillID:         s.SkillID,
			Proficiency:     s.Proficiency,
			YearsExperience: s.YearsExperience,
			IsHighlighted:   s.IsHighlighted,
		})
	}
	return out
}

func toLanguages(in []domain.LanguageInput) []domain.CandidateLanguage {
	out := make([]domain.CandidateLanguage, 0, len(in))
	for _, l := range in {
		out = append(out, domain.CandidateLanguage{
			LanguageCode: l.LanguageCode,
			LanguageName: l.LanguageName,
			Proficiency:  l.Proficiency,
		})
	}
	return out
}

func toCertifications(in []domain.CertificationInput) []domain.Certification {
	out := make([]domain.Certification, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Certification{
			Title:         c.Title,
			IssuingOrg:    c.IssuingOrg,
			IssuedDate:    c.IssuedDate,
			ExpiryDate:    c.ExpiryDate,
			CredentialID:  c.CredentialID,
			CredentialURL: c.CredentialURL,
		})
	}
	return out
}
