package v1

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResumeUC struct {
	uploadedFor string
}

func (s *stubResumeUC) Upload(ctx context.Context, userID, filename string, data []byte, declaredMIME string) (*domain.ResumeInfo, error) {
	s.uploadedFor = userID
	return &domain.ResumeInfo{UserID: userID}, nil
}

func (s *stubResumeUC) Get(ctx context.Context, userID string) (*domain.ResumeInfo, error) {
	return &domain.ResumeInfo{UserID: userID}, nil
}

func setupResumeRouter(uc domain.ResumeUsecase) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	group := r.Group("")
	NewResumeHandler(group, group, uc)
	return r
}

func resumeUploadRequest(t *testing.T, userID string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if userID != "" {
		assert.NoError(t, mw.WriteField("userId", userID))
	}
	fw, err := mw.CreateFormFile("resume", "cv.pdf")
	assert.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 test"))
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resumes/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestResumeUploadReadsUserIDField(t *testing.T) {
	uc := &stubResumeUC{}
	r := setupResumeRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, resumeUploadRequest(t, "u1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", uc.uploadedFor)
}

func TestResumeUploadRequiresUserID(t *testing.T) {
	uc := &stubResumeUC{}
	r := setupResumeRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, resumeUploadRequest(t, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, uc.uploadedFor)
}
