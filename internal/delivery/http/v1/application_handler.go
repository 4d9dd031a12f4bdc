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

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	apps := protected.Group("/applications")
	{
		apps.POST("", handler.Apply)
		apps.GET("", handler.List)
	}
}

type applyRequest struct {
	JobID int64 `json:"jobId" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Re-applying to the same job resets the existing
// @Description  application instead of creating a duplicate.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload body applyRequest true "Job reference"
// @Success      201 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var in applyRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperror.Unprocessable("Validation failed", validation.FormatValidationErrors(err)))
		return
	}

	app, err := h.appUC.Apply(c.Request.Context(), middleware.CurrentUserID(c), in.JobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// List godoc
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.appUC.GetMyApplications(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}
