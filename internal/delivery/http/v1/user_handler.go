package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxAvatarSize caps avatar uploads at 5 MB.
const maxAvatarSize = 5 << 20

type UserHandler struct {
	profileUC domain.ProfileUsecase
}

func NewUserHandler(public *gin.RouterGroup, protected *gin.RouterGroup, uploadLimited *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &UserHandler{profileUC: profileUC}

	me := protected.Group("/users/me")
	{
		me.GET("", handler.GetMe)
		me.PUT("", handler.UpdateMe)
	}
	uploadLimited.POST("/users/me/avatar", handler.UploadAvatar)

	public.GET("/users/:id", handler.GetPublicProfile)
}

// GetMe godoc
// @Summary      Get the authenticated user's full profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	full, err := h.profileUC.GetFullProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", full)
}

// UpdateMe godoc
// @Summary      Partially update the authenticated user's profile
// @Description  Accepts any subset of profile fields; submitted nested
// @Description  collections replace the stored ones wholesale. Unknown
// @Description  fields are rejected.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload body domain.ProfileUpdate true "Profile fields"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response
// @Failure      422 {object} response.Response
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var upd domain.ProfileUpdate
	if err := decodeStrict(c.Request.Body, &upd); err != nil {
		c.Error(apperror.Unprocessable("Validation failed", []string{err.Error()}))
		return
	}

	full, err := h.profileUC.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", full)
}

// UploadAvatar godoc
// @Summary      Upload a profile photo
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Image file (jpg, png, webp)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Router       /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthorized("Authentication required"))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperror.BadRequest("Avatar file is required"))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.Error(apperror.BadRequest("Avatar must be 5MB or smaller"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if len(data) > maxAvatarSize {
		c.Error(apperror.BadRequest("Avatar must be 5MB or smaller"))
		return
	}

	url, err := h.profileUC.UploadAvatar(c.Request.Context(), user, fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Avatar uploaded", gin.H{"profile_photo_url": url})
}

// GetPublicProfile godoc
// @Summary      Get a user's public profile
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	pub, err := h.profileUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", pub)
}

// decodeStrict decodes JSON rejecting unknown fields, so typos and
// non-updatable columns fail loudly instead of being silently dropped.
func decodeStrict(r io.Reader, dst interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
