package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthUsecase(userRepo *MockUserRepo) domain.AuthUsecase {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthUsecase(userRepo, tokens)
}

func TestSignupIssuesTokenForNewUser(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := newAuthUsecase(userRepo)

	var created *domain.User
	userRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
		}).
		Return(nil)

	result, err := uc.Signup(context.Background(), &domain.SignupInput{
		Email:     "ada@example.com",
		Password:  "supersecret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.UserTypeCandidate, created.UserType)
	assert.Equal(t, domain.UserStatusActive, created.Status)
	assert.NotEqual(t, "supersecret", created.PasswordHash)

	// The token subject must round-trip to the created user id.
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	subject, err := tokens.Verify(result.Token)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, subject)
}

func TestSignupDuplicateEmailSurfacesConflict(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := newAuthUsecase(userRepo)

	userRepo.On("Create", mock.Anything, mock.Anything).
		Return(apperror.Conflict("Email already registered"))

	_, err := uc.Signup(context.Background(), &domain.SignupInput{
		Email:     "taken@example.com",
		Password:  "supersecret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestLoginUnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := newAuthUsecase(userRepo)

	hash, _ := auth.HashPassword("correct-password")
	userRepo.On("GetByEmail", mock.Anything, "known@example.com").Return(&domain.User{
		ID:           "u1",
		Email:        "known@example.com",
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}, nil)
	userRepo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)

	_, errWrongPass := uc.Login(context.Background(), "known@example.com", "wrong-password")
	_, errNoUser := uc.Login(context.Background(), "unknown@example.com", "whatever")

	var appErr1, appErr2 *apperror.AppError
	assert.ErrorAs(t, errWrongPass, &appErr1)
	assert.ErrorAs(t, errNoUser, &appErr2)
	assert.Equal(t, appErr1.Code, appErr2.Code)
	assert.Equal(t, appErr1.Message, appErr2.Message)
	assert.Equal(t, http.StatusUnauthorized, appErr1.Code)
}

func TestLoginSuccessTouchesLastLogin(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := newAuthUsecase(userRepo)

	hash, _ := auth.HashPassword("correct-password")
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&domain.User{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}, nil)
	userRepo.On("TouchLastLogin", mock.Anything, "u1").Return(nil)

	result, err := uc.Login(context.Background(), "ada@example.com", "correct-password")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	userRepo.AssertCalled(t, "TouchLastLogin", mock.Anything, "u1")
}

func TestLoginSuspendedAccountIsForbidden(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := newAuthUsecase(userRepo)

	hash, _ := auth.HashPassword("correct-password")
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&domain.User{
		ID:           "u1",
		PasswordHash: hash,
		Status:       domain.UserStatusSuspended,
	}, nil)

	_, err := uc.Login(context.Background(), "ada@example.com", "correct-password")

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Code)
}
