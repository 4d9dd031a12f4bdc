package v1

import (
	"io"
	"net/http"

	"go-jobboard-backend/pkg/aiclient"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// InterviewHandler proxies interview endpoints to the AI service
// verbatim: request bodies and upstream responses pass through
// untouched so the service owns its own contract.
type InterviewHandler struct {
	ai *aiclient.Client
}

func NewInterviewHandler(public *gin.RouterGroup, ai *aiclient.Client) {
	handler := &InterviewHandler{ai: ai}

	interview := public.Group("/interview")
	{
		interview.POST("/start", handler.proxy("/interview/start"))
		interview.POST("/answer", handler.proxy("/interview/answer"))
		interview.POST("/stop", handler.proxy("/interview/stop"))
	}
}

// proxy godoc
// @Summary      Relay an interview request to the AI service
// @Tags         interview
// @Accept       json
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      502 {object} response.Response
// @Router       /interview/start [post]
func (h *InterviewHandler) proxy(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Error(apperror.BadRequest("Unable to read request body"))
			return
		}

		res, err := h.ai.Forward(c.Request.Context(), http.MethodPost, path, body, c.ContentType())
		if err != nil {
			c.Error(apperror.UpstreamUnavailable("AI service is unavailable. Please try again later.", err))
			return
		}

		contentType := res.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		c.Data(res.StatusCode, contentType, res.Body)
	}
}
