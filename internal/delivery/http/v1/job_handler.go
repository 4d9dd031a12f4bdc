package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC   domain.JobUsecase
	savedUC domain.SavedJobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase, savedUC domain.SavedJobUsecase) {
	handler := &JobHandler{jobUC: jobUC, savedUC: savedUC}

	public.GET("/jobs", handler.List)

	saved := protected.Group("/jobs/saved")
	{
		saved.GET("", handler.ListSaved)
		saved.POST("/:jobId", handler.ToggleSaved)
	}
}

// List godoc
// @Summary      List published jobs
// @Tags         jobs
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListPublished(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// ListSaved godoc
// @Summary      List the caller's saved jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /jobs/saved [get]
func (h *JobHandler) ListSaved(c *gin.Context) {
	saved, err := h.savedUC.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Saved jobs retrieved", saved)
}

// ToggleSaved godoc
// @Summary      Save or unsave a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        jobId path int true "Job ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /jobs/saved/{jobId} [post]
func (h *JobHandler) ToggleSaved(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job id"))
		return
	}

	saved, err := h.savedUC.Toggle(c.Request.Context(), middleware.CurrentUserID(c), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Job removed from saved jobs"
	if saved {
		msg = "Job saved"
	}
	response.Success(c, http.StatusOK, msg, gin.H{"job_id": jobID, "saved": saved})
}
