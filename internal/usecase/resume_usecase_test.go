package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/aiclient"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var pdfBytes = []byte("%PDF-1.4 fake resume content")

func activeUser(id string) *domain.User {
	return &domain.User{ID: id, Status: domain.UserStatusActive}
}

func TestResumeUploadExtractsTextFromPDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interview/parse-resume", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "text": "extracted resume text", "filename": "cv.pdf"}`))
	}))
	defer server.Close()

	profileRepo := new(MockProfileRepo)
	userRepo := new(MockUserRepo)
	blobs := new(MockBlobStore)
	uc := NewResumeUsecase(profileRepo, userRepo, blobs, aiclient.New(server.URL))

	userRepo.On("GetByID", mock.Anything, "u1").Return(activeUser("u1"), nil)
	blobs.On("Upload", mock.Anything, mock.Anything, pdfBytes, "application/pdf").
		Return("https://cdn.example.com/resumes/u1/cv.pdf", nil)
	profileRepo.On("UpsertResume", mock.Anything, "u1",
		"https://cdn.example.com/resumes/u1/cv.pdf", "extracted resume text", mock.Anything).
		Return(nil)
	url := "https://cdn.example.com/resumes/u1/cv.pdf"
	profileRepo.On("GetResume", mock.Anything, "u1").Return(&domain.ResumeInfo{
		UserID:    "u1",
		ResumeURL: &url,
	}, nil)

	info, err := uc.Upload(context.Background(), "u1", "cv.pdf", pdfBytes, "application/pdf")

	assert.NoError(t, err)
	assert.Equal(t, url, *info.ResumeURL)
	profileRepo.AssertExpectations(t)
}

func TestResumeUploadSurvivesExtractionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	profileRepo := new(MockProfileRepo)
	userRepo := new(MockUserRepo)
	blobs := new(MockBlobStore)
	uc := NewResumeUsecase(profileRepo, userRepo, blobs, aiclient.New(server.URL))

	userRepo.On("GetByID", mock.Anything, "u1").Return(activeUser("u1"), nil)
	blobs.On("Upload", mock.Anything, mock.Anything, pdfBytes, "application/pdf").
		Return("https://cdn.example.com/resumes/u1/cv.pdf", nil)
	// Extraction failed, so the stored text is empty.
	profileRepo.On("UpsertResume", mock.Anything, "u1",
		"https://cdn.example.com/resumes/u1/cv.pdf", "", mock.Anything).
		Return(nil)
	url := "https://cdn.example.com/resumes/u1/cv.pdf"
	profileRepo.On("GetResume", mock.Anything, "u1").Return(&domain.ResumeInfo{
		UserID:    "u1",
		ResumeURL: &url,
	}, nil)

	_, err := uc.Upload(context.Background(), "u1", "cv.pdf", pdfBytes, "application/pdf")

	assert.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestResumeUploadSkipsExtractionForDocx(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	docxBytes := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}

	profileRepo := new(MockProfileRepo)
	userRepo := new(MockUserRepo)
	blobs := new(MockBlobStore)
	uc := NewResumeUsecase(profileRepo, userRepo, blobs, aiclient.New(server.URL))

	userRepo.On("GetByID", mock.Anything, "u1").Return(activeUser("u1"), nil)
	blobs.On("Upload", mock.Anything, mock.Anything, docxBytes, mock.Anything).
		Return("https://cdn.example.com/resumes/u1/cv.docx", nil)
	profileRepo.On("UpsertResume", mock.Anything, "u1", mock.Anything, "", mock.Anything).
		Return(nil)
	url := "https://cdn.example.com/resumes/u1/cv.docx"
	profileRepo.On("GetResume", mock.Anything, "u1").Return(&domain.ResumeInfo{
		UserID:    "u1",
		ResumeURL: &url,
	}, nil)

	_, err := uc.Upload(context.Background(), "u1", "cv.docx",
		docxBytes, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	assert.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestResumeUploadRejectsSpoofedFile(t *testing.T) {
	uc := NewResumeUsecase(new(MockProfileRepo), mockUserWithActive("u1"), new(MockBlobStore), aiclient.New("http://localhost:0"))

	_, err := uc.Upload(context.Background(), "u1", "cv.pdf",
		[]byte("MZ executable content"), "application/pdf")

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestResumeGetWithoutUploadIs404(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	uc := NewResumeUsecase(profileRepo, new(MockUserRepo), new(MockBlobStore), aiclient.New("http://localhost:0"))

	profileRepo.On("GetResume", mock.Anything, "u1").Return(&domain.ResumeInfo{UserID: "u1"}, nil)

	_, err := uc.Get(context.Background(), "u1")

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func mockUserWithActive(id string) *MockUserRepo {
	repo := new(MockUserRepo)
	repo.On("GetByID", mock.Anything, id).Return(activeUser(id), nil)
	return repo
}
