package v1

import (
	"io"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxResumeSize caps resume uploads at 10 MB.
const maxResumeSize = 10 << 20

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(public *gin.RouterGroup, uploadLimited *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	uploadLimited.POST("/resumes/upload", handler.Upload)
	public.GET("/resumes/:id", handler.Get)
}

// Upload godoc
// @Summary      Upload a resume
// @Description  Stores the file and, for PDFs, extracts its text for
// @Description  search and matching. Extraction failure does not fail
// @Description  the upload.
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        userId formData string true "Owner user ID"
// @Param        resume formData file true "Resume file (pdf, doc, docx)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /resumes/upload [post]
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID := c.PostForm("userId")
	if userID == "" {
		c.Error(apperror.BadRequest("userId is required"))
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.BadRequest("Resume file is required"))
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.Error(apperror.BadRequest("Resume must be 10MB or smaller"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeSize+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if len(data) > maxResumeSize {
		c.Error(apperror.BadRequest("Resume must be 10MB or smaller"))
		return
	}

	info, err := h.resumeUC.Upload(c.Request.Context(), userID, fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume uploaded", info)
}

// Get godoc
// @Summary      Get a user's resume metadata
// @Tags         resumes
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /resumes/{id} [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	info, err := h.resumeUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume retrieved", info)
}
