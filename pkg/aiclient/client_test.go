package aiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForwardRelaysVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interview/start", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"session_id": "abc"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	res, err := c.Forward(context.Background(), http.MethodPost, "/interview/start",
		[]byte(`{"role": "backend"}`), "application/json")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"session_id": "abc"}`, string(res.Body))
}

func TestForwardDoesNotRetryErrorStatus(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := New(server.URL)
	res, err := c.Forward(context.Background(), http.MethodPost, "/interview/answer", nil, "")

	// An upstream error status is a successful relay, delivered once.
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestForwardUnreachableServiceReturnsErrUnavailable(t *testing.T) {
	// Grab a port and close it so nothing is listening.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New(url)
	_, err := c.Forward(context.Background(), http.MethodPost, "/interview/start", nil, "")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestParseResume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interview/parse-resume", r.URL.Path)

		file, header, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cv.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "text": "parsed text", "filename": "cv.pdf"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	text, err := c.ParseResume(context.Background(), "cv.pdf", []byte("%PDF-1.4"))

	assert.NoError(t, err)
	assert.Equal(t, "parsed text", text)
}

func TestParseResumeUnsuccessfulExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "text": ""}`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.ParseResume(context.Background(), "cv.pdf", []byte("%PDF-1.4"))

	assert.Error(t, err)
}
