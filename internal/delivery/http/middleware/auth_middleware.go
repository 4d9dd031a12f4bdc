package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates the bearer token and loads a fresh user
// record for every request. Token claims are never trusted for account
// state: suspension and deletion take effect immediately, not at token
// expiry.
func AuthMiddleware(tokens *auth.TokenManager, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		if user == nil {
			abortUnauthorized(c, "User not found")
			return
		}
		if user.DeletedAt != nil {
			abortUnauthorized(c, "Account deleted")
			return
		}
		if user.Status != domain.UserStatusActive {
			response.Error(c, http.StatusForbidden, "Account is not active", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUser), user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	response.Error(c, http.StatusUnauthorized, msg, nil)
	c.Abort()
}

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(string(domain.KeyUser))
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// CurrentUserID returns the authenticated user id attached by
// AuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}
