// Package httpx holds small extensions of the standard HTTP client.
package httpx

import (
	"fmt"
	"net/http"
	"time"
)

// RetryClient is an extension of the standard HTTP client.
// It provides a DoRetry method that keeps executing the given request until it succeeds.
// Here, success means the `Do` method does not return a transient error and the
// server did not answer with a 5xx status.
type RetryClient struct {
	*http.Client
}

// DoRetry internally calls the `Do` method of the standard HTTP client on the given request.
// If `Do` returns an error or a 5xx response, the operation is retried up to maxAttempts times.
//
// Requests with a body must be rewindable, i.e. have GetBody set.
func (rc *RetryClient) DoRetry(req *http.Request, maxAttempts int, delay time.Duration) (*http.Response, error) {
	hasBody := req.Body != nil && req.Body != http.NoBody
	// Request must be rewindable for retries.
	if hasBody && req.GetBody == nil {
		return nil, fmt.Errorf("GetBody function must be set on the request for retrying")
	}

	// This will hold the error that will be returned if all retries fail.
	var errFinal error

	for i := 0; i < maxAttempts; i++ {
		// Clone the request for each attempt.
		reqClone := req.Clone(req.Context())
		reqClone.RequestURI = ""

		// Create a fresh body for this attempt.
		if hasBody {
			bodyReader, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("error in the GetBody call: %w", err)
			}
			reqClone.Body = bodyReader
		}

		// Attempt the request.
		response, err := rc.Do(reqClone)
		switch {
		case err != nil:
			errFinal = err
		case response.StatusCode >= http.StatusInternalServerError:
			// The body is not handed to the caller, so it is closed here.
			_ = response.Body.Close()
			errFinal = fmt.Errorf("server error: %s", response.Status)
		default:
			// Success! The caller is now responsible for closing the response body.
			return response, nil
		}

		// Don't execute the waiting code if this is the last iteration.
		if i == maxAttempts-1 {
			break
		}

		// Timer to wait before next retry.
		timer := time.NewTimer(delay)
		// Wait before the next retry while respecting the request's context.
		select {
		case <-reqClone.Context().Done():
			timer.Stop()                         // Cleanup the timer. `time.After` does not allow this optimization.
			return nil, reqClone.Context().Err() // Return the context's error.
		case <-timer.C:
			// Continue to the next attempt.
		}
	}

	return nil, fmt.Errorf("all %d attempts failed, last error: %w", maxAttempts, errFinal)
}
