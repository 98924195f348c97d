package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"PickRank/internal/domain/repository"
	"PickRank/pkg/config"
	xhttp "PickRank/pkg/http"
)

const defaultBackoff = 200 * time.Millisecond

// HTTPServiceBase is the shared foundation of the upstream clients: JSON GET
// with throttling, a circuit breaker and bounded retry on transient failures.
type HTTPServiceBase struct {
	name    string
	baseURL string
	apiKey  string
	client  *xhttp.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	retries int
	backoff time.Duration
}

// NewHTTPServiceBase builds a base for one provider from its config section.
func NewHTTPServiceBase(name string, cfg config.Provider, opts ...xhttp.ClientOption) *HTTPServiceBase {
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &HTTPServiceBase{
		name:    name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  xhttp.NewClient(append([]xhttp.ClientOption{xhttp.WithTimeout(cfg.Timeout)}, opts...)...),
		limiter: rate.NewLimiter(limit, burst),
		breaker: newBreaker(name),
		retries: cfg.MaxRetries,
		backoff: defaultBackoff,
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 5 {
				return true
			}
			return counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.5
		},
		// client errors say nothing about upstream health
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *xhttp.StatusError
			return errors.As(err, &se) && !se.Temporary()
		},
	})
}

// Configured reports whether both an endpoint and a key are present.
func (b *HTTPServiceBase) Configured() bool {
	return b.baseURL != "" && b.apiKey != ""
}

// GetJSON fetches baseURL+path with query and decodes the body into dest.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if !b.Configured() {
		return fmt.Errorf("%s: %w", b.name, repository.ErrNotConfigured)
	}

	var err error
	for attempt := 0; attempt <= b.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * b.backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err = b.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: throttle: %w", b.name, err)
		}

		_, err = b.breaker.Execute(func() (interface{}, error) {
			return nil, b.client.SendAndParse(ctx, &xhttp.RequestOptions{
				Method:      xhttp.MethodGet,
				URL:         b.baseURL + path,
				QueryParams: query,
			}, dest)
		})
		if err == nil || !retryable(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%s: get %s: %w", b.name, path, err)
	}
	return nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	var ue *url.Error
	return errors.As(err, &ue)
}
