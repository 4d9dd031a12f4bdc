package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable signals that the AI service could not be reached at all
// (as opposed to responding with an error status).
var ErrUnavailable = errors.New("ai service unreachable")

// Client talks to the external AI interview service. All calls carry a
// bounded timeout and retry once on transport-level failure; an error
// response from the service itself is never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Result is a raw upstream response handed back to the proxy handler.
type Result struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Forward relays a request body verbatim to the given service path.
func (c *Client) Forward(ctx context.Context, method, path string, body []byte, contentType string) (*Result, error) {
	return c.do(ctx, method, c.baseURL+path, body, contentType)
}

// ParseResume sends a PDF to the service's resume extraction endpoint and
// returns the extracted text.
func (c *Client) ParseResume(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	res, err := c.do(ctx, http.MethodPost, c.baseURL+"/interview/parse-resume", buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return "", err
	}
	if res.StatusCode >= 400 {
		return "", fmt.Errorf("parse-resume failed with status %d", res.StatusCode)
	}

	var parsed struct {
		Success bool   `json:"success"`
		Text    string `json:"text"`
	}
	if err := json.Unmarshal(res.Body, &parsed); err != nil {
		return "", fmt.Errorf("parse-resume: invalid response: %w", err)
	}
	if !parsed.Success {
		return "", errors.New("parse-resume: extraction unsuccessful")
	}
	return parsed.Text, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, contentType string) (*Result, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		return &Result{
			StatusCode:  resp.StatusCode,
			Body:        respBody,
			ContentType: resp.Header.Get("Content-Type"),
		}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}
