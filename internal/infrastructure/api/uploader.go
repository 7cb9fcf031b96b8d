package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// RetryPolicy defines retry behavior for transient upload failures
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy returns a sensible default retry policy
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
	}
}

// Uploader posts DICOM files to route endpoints as multipart form data,
// field name "image", matching what the receiving APIs have always been
// sent. Transport errors and server-side failures are retried with
// exponential backoff; client-side rejections are not.
type Uploader struct {
	client *http.Client
	policy RetryPolicy
}

// NewUploader creates an uploader with default timeout and retry policy
func NewUploader() *Uploader {
	return NewUploaderWithPolicy(30*time.Second, DefaultRetryPolicy())
}

// NewUploaderWithPolicy creates an uploader with explicit timeout and policy
func NewUploaderWithPolicy(timeout time.Duration, policy RetryPolicy) *Uploader {
	return &Uploader{
		client: &http.Client{Timeout: timeout},
		policy: policy,
	}
}

// Upload sends the file to the endpoint, retrying per the policy
func (u *Uploader) Upload(ctx context.Context, filePath, endpoint string) error {
	var lastErr error
	delay := u.policy.BaseDelay

	for attempt := 1; attempt <= u.policy.MaxAttempts; attempt++ {
		retryable, err := u.post(ctx, filePath, endpoint)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
		if attempt == u.policy.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("upload cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * u.policy.Multiplier)
		if delay > u.policy.MaxDelay {
			delay = u.policy.MaxDelay
		}
	}

	return fmt.Errorf("upload failed after %d attempts: %w", u.policy.MaxAttempts, lastErr)
}

// post performs one upload attempt. The bool reports whether the failure is
// worth retrying.
func (u *Uploader) post(ctx context.Context, filePath, endpoint string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filepath.Base(filePath))
	if err != nil {
		return false, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return false, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if err := writer.Close(); err != nil {
		return false, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return false, nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err = fmt.Errorf("API error %d from %s: %s", resp.StatusCode, endpoint, string(respBody))

	// 4xx means the request itself is wrong; retrying cannot fix it
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return false, err
	}
	return true, err
}
