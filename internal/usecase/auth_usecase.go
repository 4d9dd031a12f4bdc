package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"

	"github.com/google/uuid"
)

// loginFailedMsg is deliberately identical for unknown email and wrong
// password so the endpoint cannot be used to probe registered emails.
const loginFailedMsg = "Invalid email or password"

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Signup(ctx context.Context, in *domain.SignupInput) (*domain.AuthResult, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	userType := in.UserType
	if userType == "" {
		userType = domain.UserTypeCandidate
	}

	user := &domain.User{
		ID:                uuid.New().String(),
		Email:             in.Email,
		PasswordHash:      hash,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		UserType:          userType,
		Status:            domain.UserStatusActive,
		PreferredLanguage: "en",
		Timezone:          "UTC",
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("user signed up", "user_id", user.ID, "user_type", user.UserType)
	return &domain.AuthResult{Token: token, User: user}, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized(loginFailedMsg)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperror.Unauthorized(loginFailedMsg)
	}
	if user.Status != domain.UserStatusActive {
		return nil, apperror.Forbidden("Account is not active")
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Last-login tracking is best effort; a failed write never blocks
	// the login itself.
	if err := u.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Log.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	return &domain.AuthResult{Token: token, User: user}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.DeletedAt != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
