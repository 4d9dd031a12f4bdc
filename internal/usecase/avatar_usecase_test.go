package usecase

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUploadAvatarStoresAndSwapsURL(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	userRepo := new(MockUserRepo)
	blobs := new(MockBlobStore)
	uc := newProfileUsecase(profileRepo, userRepo, blobs)

	user := &domain.User{ID: "u1"}
	data := pngBytes(t)

	blobs.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > 0
	}), data, "image/png").Return("https://cdn.example.com/avatars/u1/new.png", nil)
	userRepo.On("UpdatePhotoURL", mock.Anything, "u1", "https://cdn.example.com/avatars/u1/new.png").Return(nil)

	url, err := uc.UploadAvatar(context.Background(), user, "me.png", data, "image/png")

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/u1/new.png", url)
	blobs.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestUploadAvatarDeletesPreviousBlob(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	userRepo := new(MockUserRepo)
	blobs := new(MockBlobStore)
	uc := newProfileUsecase(profileRepo, userRepo, blobs)

	oldURL := "https://cdn.example.com/avatars/u1/old.png"
	user := &domain.User{ID: "u1", ProfilePhotoURL: &oldURL}
	data := pngBytes(t)

	deleted := make(chan string, 1)
	blobs.On("Upload", mock.Anything, mock.Anything, data, "image/png").
		Return("https://cdn.example.com/avatars/u1/new.png", nil)
	blobs.On("KeyFromURL", oldURL).Return("avatars/u1/old.png")
	blobs.On("Delete", mock.Anything, "avatars/u1/old.png").
		Run(func(args mock.Arguments) { deleted <- args.String(1) }).
		Return(nil)
	userRepo.On("UpdatePhotoURL", mock.Anything, "u1", mock.Anything).Return(nil)

	_, err := uc.UploadAvatar(context.Background(), user, "me.png", data, "image/png")
	assert.NoError(t, err)

	select {
	case key := <-deleted:
		assert.Equal(t, "avatars/u1/old.png", key)
	case <-time.After(2 * time.Second):
		t.Fatal("previous avatar was never deleted")
	}
}

func TestUploadAvatarRejectsSpoofedContent(t *testing.T) {
	uc := newProfileUsecase(new(MockProfileRepo), new(MockUserRepo), new(MockBlobStore))

	// PNG extension, PDF content.
	_, err := uc.UploadAvatar(context.Background(), &domain.User{ID: "u1"},
		"sneaky.png", []byte("%PDF-1.4 not an image"), "image/png")

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestUploadAvatarRejectsDisallowedExtension(t *testing.T) {
	uc := newProfileUsecase(new(MockProfileRepo), new(MockUserRepo), new(MockBlobStore))

	_, err := uc.UploadAvatar(context.Background(), &domain.User{ID: "u1"},
		"script.svg", []byte("<svg/>"), "image/svg+xml")

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
