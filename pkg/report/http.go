package report

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shivanshkc/repstat/pkg/httpx"
)

// DefaultRequestTimeout bounds a single attempt of an HTTPSource request.
const DefaultRequestTimeout = 10 * time.Second

// HTTPSource fetches reports from an agent that serves them at
// GET <baseURL>/v1/reports/<index>.
type HTTPSource struct {
	baseURL     string
	httpClient  *httpx.RetryClient
	maxAttempts int
	delay       time.Duration
}

// NewHTTPSource returns a new HTTPSource. Transient failures are retried up to
// maxAttempts times, waiting delay in between. Each attempt is abandoned after
// timeout, or DefaultRequestTimeout when timeout is not positive.
func NewHTTPSource(baseURL string, maxAttempts int, delay, timeout time.Duration) *HTTPSource {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPSource{
		baseURL:     baseURL,
		httpClient:  &httpx.RetryClient{Client: &http.Client{Timeout: timeout}},
		maxAttempts: maxAttempts,
		delay:       delay,
	}
}

// ReportAt implements Source.
func (h *HTTPSource) ReportAt(ctx context.Context, index uint64) (*Report, error) {
	// Form the API endpoint URL.
	endpoint, err := url.JoinPath(h.baseURL, "v1/reports", strconv.FormatUint(index, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to form report endpoint URL: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpRequest.Header.Set("Accept", "application/json")

	// Execute request with retries.
	response, err := h.httpClient.DoRetry(httpRequest, h.maxAttempts, h.delay)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("index %d: %w", index, ErrNotFound)
	default:
		// In case of error, return the status code with the body.
		responseBody, err := io.ReadAll(response.Body)
		if err != nil {
			responseBody = []byte("failed to read response body: " + err.Error())
		}
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", response.StatusCode, string(responseBody))
	}

	rep, err := Decode(response.Body)
	if err != nil {
		return nil, fmt.Errorf("index %d: %w: %w", index, ErrCorrupt, err)
	}
	return rep, nil
}
