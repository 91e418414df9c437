package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// ClientConfig holds HTTP client settings.
type ClientConfig struct {
	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds each single request, including reading the body.
	Timeout time.Duration

	// MaxRetries is the number of download attempts (at least one).
	MaxRetries int

	// RetryCooldown is the wait before the second attempt.
	RetryCooldown time.Duration

	// RetryExponent multiplies the wait after every further attempt.
	RetryExponent float64
}

// DefaultClientConfig returns the configuration used when none is given.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		UserAgent:     "webfont-packager",
		Timeout:       60 * time.Second,
		MaxRetries:    3,
		RetryCooldown: 200 * time.Millisecond,
		RetryExponent: 4.0,
	}
}

// Client wraps HTTP operations for the catalog API and font downloads.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - File download with retry
//   - A running total of downloaded bytes
//
// Client is safe for concurrent use.
//
// Example usage:
//
//	client := NewClient(nil)
//
//	// Fetch JSON content
//	body, err := client.Get(ctx, "https://google-webfonts-helper.herokuapp.com/api/fonts/")
//
//	// Download file
//	err = client.DownloadFile(ctx, woffURL, "/packages/lato/files/lato-latin-400-normal.woff")
type Client struct {
	httpClient *http.Client
	config     *ClientConfig

	receivedBytes atomic.Int64
}

// NewClient creates a new HTTP client.
//
// If cfg is nil, DefaultClientConfig() is used.
func NewClient(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultClientConfig()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
	}
}

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, e.Status, e.URL)
}

// Temporary reports whether retrying the request could succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// ProgressWriter wraps a writer to count written bytes.
//
// OnUpdate, if set, receives the number of bytes of every Write.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with the bytes just written.
	OnUpdate func(n int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(int64(n))
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (as *StatusError)
//   - Reading the body fails
//
// Failed requests are retried like DownloadFile.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.withRetry(ctx, func() error {
		var err error
		body, err = c.getOnce(ctx, url)
		return err
	})
	return body, err
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// DownloadFile downloads url to destPath, retrying failed attempts.
//
// Parent directories of destPath are created. The body is streamed to a
// temporary file next to destPath and renamed on success, so an
// interrupted download never leaves a truncated file behind.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	return c.withRetry(ctx, func() error {
		return c.downloadOnce(ctx, url, destPath)
	})
}

// withRetry runs attempt up to MaxRetries times, waiting between attempts.
// Client errors (4xx other than 429) are not retried.
func (c *Client) withRetry(ctx context.Context, attempt func() error) error {
	attempts := c.config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for tries := 0; tries < attempts; tries++ {
		err = attempt()
		if err == nil || !retryable(err) || ctx.Err() != nil {
			break
		}
		if tries < attempts-1 {
			c.waitForRetry(ctx, tries)
		}
	}
	return err
}

// ReceivedBytes returns the number of body bytes written by DownloadFile.
func (c *Client) ReceivedBytes() int64 {
	return c.receivedBytes.Load()
}

func (c *Client) downloadOnce(ctx context.Context, url, destPath string) error {
	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpPath := destPath + ".part"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	writer := &ProgressWriter{
		Writer: file,
		OnUpdate: func(n int64) {
			c.receivedBytes.Add(n)
		},
	}

	_, err = io.Copy(writer, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, destPath)
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}

func (c *Client) waitForRetry(ctx context.Context, tries int) {
	cooldown := float64(c.config.RetryCooldown) * math.Pow(c.config.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown)):
	}
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
