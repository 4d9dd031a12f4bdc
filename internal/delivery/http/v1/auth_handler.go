package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers the auth surface. Login carries a stricter
// rate limit than the rest of the group, hence the separate router
// group for it.
func NewAuthHandler(public *gin.RouterGroup, login *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	public.POST("/auth/signup", handler.Signup)
	public.POST("/auth/logout", handler.Logout)
	login.POST("/auth/login", handler.Login)

	protected.GET("/dashboard", handler.Dashboard)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body domain.SignupInput true "Signup payload"
// @Success      201 {object} response.Response
// @Failure      409 {object} response.Response
// @Failure      422 {object} response.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var in domain.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.Unprocessable("Validation failed", validation.FormatValidationErrors(err)))
		return
	}

	result, err := h.authUC.Signup(c.Request.Context(), &in)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Account created", result)
}

// Login godoc
// @Summary      Authenticate and receive a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body loginRequest true "Credentials"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.Unprocessable("Validation failed", validation.FormatValidationErrors(err)))
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Logged in", result)
}

// Logout godoc
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; the client discards its copy.
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Dashboard godoc
// @Summary      Current account summary
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /dashboard [get]
func (h *AuthHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}
	response.Success(c, http.StatusOK, "Dashboard data", gin.H{"user": user})
}
