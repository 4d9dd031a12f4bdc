package security

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestValidateAvatarAcceptsRealImages(t *testing.T) {
	res := ValidateAvatar("photo.png", encodePNG(t), "image/png")
	assert.True(t, res.Valid, res.Error)

	res = ValidateAvatar("photo.jpg", encodeJPEG(t), "image/jpeg")
	assert.True(t, res.Valid, res.Error)
}

func TestValidateAvatarRejectsBadExtension(t *testing.T) {
	res := ValidateAvatar("photo.gif", encodePNG(t), "image/gif")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "extension")
}

func TestValidateAvatarRejectsMissingExtension(t *testing.T) {
	res := ValidateAvatar("photo", encodePNG(t), "image/png")
	assert.False(t, res.Valid)
}

func TestValidateAvatarRejectsOctetStream(t *testing.T) {
	res := ValidateAvatar("photo.png", encodePNG(t), "application/octet-stream")
	assert.False(t, res.Valid)
}

func TestValidateAvatarRejectsContentMismatch(t *testing.T) {
	// Declared and named PNG, actual content is a PDF.
	res := ValidateAvatar("photo.png", []byte("%PDF-1.4"), "image/png")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "does not match")
}

func TestValidateAvatarRejectsTruncatedImage(t *testing.T) {
	// Correct magic bytes but not a decodable image.
	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	res := ValidateAvatar("photo.png", data, "image/png")
	assert.False(t, res.Valid)
}

func TestValidateResumeAcceptsPDF(t *testing.T) {
	res := ValidateResume("cv.pdf", []byte("%PDF-1.7 content"), "application/pdf")
	assert.True(t, res.Valid, res.Error)
	assert.Equal(t, ".pdf", res.Extension)
}

func TestValidateResumeAcceptsDocxAsOctetStream(t *testing.T) {
	// Browsers commonly send docx as octet-stream; the ZIP magic check
	// still applies.
	docx := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}
	res := ValidateResume("cv.docx", docx, "application/octet-stream")
	assert.True(t, res.Valid, res.Error)
}

func TestValidateResumeRejectsExecutable(t *testing.T) {
	res := ValidateResume("cv.pdf", []byte("MZ\x90\x00"), "application/pdf")
	assert.False(t, res.Valid)
}

func TestValidateResumeRejectsImage(t *testing.T) {
	res := ValidateResume("cv.png", encodePNG(t), "image/png")
	assert.False(t, res.Valid)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF(".pdf"))
	assert.True(t, IsPDF(".PDF"))
	assert.False(t, IsPDF(".docx"))
}
