package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Transport defaults shared by the provider clients.
const (
	defaultTimeout    = 120 * time.Second
	defaultMaxRetries = 3
	defaultRetryWait  = 1 * time.Second
)

// transport posts JSON to a provider endpoint with retries for transient
// failures. Non-transient statuses are handed back to the caller for
// provider-specific decoding.
type transport struct {
	client     *http.Client
	maxRetries int
	retryWait  time.Duration
}

func newTransport(client *http.Client) *transport {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &transport{
		client:     client,
		maxRetries: defaultMaxRetries,
		retryWait:  defaultRetryWait,
	}
}

func (t *transport) post(ctx context.Context, url string, headers map[string]string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	var lastErr error
	for attempt := range t.maxRetries {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < t.maxRetries-1 {
				if err := wait(ctx, t.retryWait*time.Duration(1<<attempt)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("provider request failed: %w", err)
		}

		// Retry rate limits and server errors
		if (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) && attempt < t.maxRetries-1 {
			delay := retryDelay(resp, t.retryWait, attempt)
			resp.Body.Close()
			if err := wait(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// retryDelay honors the Retry-After header before exponential backoff.
func retryDelay(resp *http.Response, base time.Duration, attempt int) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return base * time.Duration(1<<attempt)
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
