package lexisphere

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned by a TermLoader when no record exists for the
// requested id.
var ErrNotFound = errors.New("term not found")

// TermLoader fetches the record for a term by id. Implementations are
// called off the frame tick; the transition machine polls for the result
// at step boundaries.
type TermLoader interface {
	LoadTermByID(ctx context.Context, id string) (*TermRecord, error)
}

// TermLoaderFunc adapts a plain function to the TermLoader interface.
type TermLoaderFunc func(ctx context.Context, id string) (*TermRecord, error)

// LoadTermByID calls f.
func (f TermLoaderFunc) LoadTermByID(ctx context.Context, id string) (*TermRecord, error) {
	return f(ctx, id)
}

// HTTPLoader fetches term records from the lexisphere term API
// (GET {BaseURL}/terms/{id}). Transient failures and rate limiting are
// retried with exponential backoff plus jitter; a 404 maps to ErrNotFound
// without retrying.
type HTTPLoader struct {
	// BaseURL is the API root, e.g. "http://localhost:8876".
	BaseURL string
	// Client defaults to a client with a 10 second timeout.
	Client *http.Client
	// MaxRetries bounds the attempts per load. Defaults to 3.
	MaxRetries int
	// Logger receives retry warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

func (l *HTTPLoader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (l *HTTPLoader) retries() int {
	if l.MaxRetries > 0 {
		return l.MaxRetries
	}
	return 3
}

func (l *HTTPLoader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// LoadTermByID implements TermLoader.
func (l *HTTPLoader) LoadTermByID(ctx context.Context, id string) (*TermRecord, error) {
	u := fmt.Sprintf("%s/terms/%s", l.BaseURL, url.PathEscape(id))

	var lastErr error
	for attempt := 0; attempt < l.retries(); attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter between attempts.
			wait := time.Duration(float64(time.Second) * (backoffFactor(attempt) + rand.Float64()))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		rec, retryable, err := l.fetch(ctx, u)
		if err == nil {
			return rec, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
		l.logger().Warn("term load retrying", "id", id, "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("load term %q: %w", id, lastErr)
}

// fetch performs one attempt. retryable distinguishes transient failures
// (network errors, 429, 5xx) from hard ones (404, malformed body).
func (l *HTTPLoader) fetch(ctx context.Context, u string) (rec *TermRecord, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := l.client().Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("term api: http %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("term api: http %d", resp.StatusCode)
	}

	var record TermRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, false, fmt.Errorf("decode term record: %w", err)
	}
	return &record, false, nil
}

// backoffFactor returns 2^(attempt-1), the exponential backoff growth curve.
func backoffFactor(attempt int) float64 {
	return float64(int(1) << (attempt - 1))
}
