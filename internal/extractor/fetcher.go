package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blogpipe/internal/apperr"
	"blogpipe/pkg/utils"
)

// Fetch errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrEmptyBody            = errors.New("empty response body")
	ErrInvalidURL           = errors.New("invalid url")
	ErrBodyTooLarge         = errors.New("response body exceeds buffer size")
)

// Fetcher downloads web pages with a bounded body size.
type Fetcher struct {
	client       *http.Client
	headers      *utils.HTTPHelper
	bufferSizeKb int
}

// NewFetcher creates a fetcher with its own HTTP client.
func NewFetcher(userAgent string, timeout time.Duration, bufferSizeKb int) *Fetcher {
	return NewFetcherWithClient(&http.Client{Timeout: timeout}, userAgent, bufferSizeKb)
}

// NewFetcherWithClient creates a fetcher around an existing HTTP client (useful for testing).
func NewFetcherWithClient(client *http.Client, userAgent string, bufferSizeKb int) *Fetcher {
	if bufferSizeKb <= 0 {
		bufferSizeKb = 1024
	}

	return &Fetcher{
		client:       client,
		headers:      utils.NewHTTPHelper(userAgent),
		bufferSizeKb: bufferSizeKb,
	}
}

// FetchWithMetrics returns (content, statusCode, duration, error).
// Every failure is wrapped with apperr.ErrFetch.
func (f *Fetcher) FetchWithMetrics(ctx context.Context, rawURL string) (string, int, time.Duration, error) {
	if !f.headers.IsValidURL(rawURL) {
		return "", 0, 0, fmt.Errorf("%w: %w: %q", apperr.ErrFetch, ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: failed to create request: %w", apperr.ErrFetch, err)
	}

	req.Header = f.headers.BuildHeaders(nil)

	startTime := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, time.Since(startTime), fmt.Errorf("%w: request failed: %w", apperr.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, time.Since(startTime),
			fmt.Errorf("%w: %w: %d", apperr.ErrFetch, ErrUnexpectedStatusCode, resp.StatusCode)
	}

	// bufferSizeKb is in KB, convert to bytes
	limit := int64(f.bufferSizeKb) * 1024

	// One byte past the limit tells a full page from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	duration := time.Since(startTime)

	if err != nil {
		return "", resp.StatusCode, duration, fmt.Errorf("%w: failed to read response body: %w", apperr.ErrFetch, err)
	}

	if int64(len(body)) > limit {
		return "", resp.StatusCode, duration,
			fmt.Errorf("%w: %w: %s is larger than %d KB", apperr.ErrFetch, ErrBodyTooLarge, rawURL, f.bufferSizeKb)
	}

	if strings.TrimSpace(string(body)) == "" {
		return "", resp.StatusCode, duration, fmt.Errorf("%w: %w: %s", apperr.ErrFetch, ErrEmptyBody, rawURL)
	}

	return string(body), resp.StatusCode, duration, nil
}
