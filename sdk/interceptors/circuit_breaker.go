package interceptors

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sotoon/request-builder-go/sdk/constants"
)

// statusError is what the breaker records for a tripping status code.
type statusError int

func (s statusError) Error() string {
	return fmt.Sprintf("%d", int(s))
}

// CircuitBreakerOptions configures NewCircuitBreakerSettings.
type CircuitBreakerOptions struct {
	Name string
	// TripStatuses are the response status codes counted as failures.
	// Empty means 429 and every 5xx.
	TripStatuses []int
	// ConsecutiveFailures opens the breaker once reached. Zero means 1.
	ConsecutiveFailures uint32
	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
}

// NewCircuitBreakerSettings builds gobreaker settings that trip on response
// status codes instead of transport errors.
func NewCircuitBreakerSettings(opts CircuitBreakerOptions) gobreaker.Settings {
	if opts.ConsecutiveFailures == 0 {
		opts.ConsecutiveFailures = 1
	}
	threshold := opts.ConsecutiveFailures
	return gobreaker.Settings{
		Name:     opts.Name,
		Interval: opts.Interval,
		Timeout:  opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			status, ok := err.(statusError)
			if !ok {
				return err == nil
			}
			return !trips(int(status), opts.TripStatuses)
		},
	}
}

func trips(status int, tripStatuses []int) bool {
	if len(tripStatuses) == 0 {
		return status == http.StatusTooManyRequests || status >= 500
	}
	for _, s := range tripStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type CircuitBreakerInterceptor struct {
	abortOnFailure bool
	cb             *gobreaker.CircuitBreaker
}

// NewCircuitBreakerInterceptor creates a new circuit breaker interceptor.
// Every response status code is reported to the breaker as a statusError so
// the settings' IsSuccessful decides what counts as a failure.
func NewCircuitBreakerInterceptor(cb *gobreaker.CircuitBreaker, abortOnFailure bool) *CircuitBreakerInterceptor {
	if cb == nil {
		panic("cb should not be nil")
	}

	return &CircuitBreakerInterceptor{
		abortOnFailure: abortOnFailure,
		cb:             cb,
	}
}

// BeforeRequest rejects requests while the breaker is open.
func (c *CircuitBreakerInterceptor) BeforeRequest(data InterceptorData) (InterceptorData, error) {
	if c.cb.State() != gobreaker.StateOpen {
		return data, nil
	}
	if c.abortOnFailure {
		return data, constants.ErrCircuitBreakerOpen
	}
	data.Error = constants.ErrCircuitBreakerOpen
	return data, nil
}

// AfterResponse records the response status in the breaker.
func (c *CircuitBreakerInterceptor) AfterResponse(data InterceptorData) (InterceptorData, error) {
	if data.Response == nil {
		return data, nil
	}

	// The returned error only mirrors the recorded status; an open breaker
	// is reported on the next BeforeRequest.
	_, _ = c.cb.Execute(func() (interface{}, error) {
		return nil, statusError(data.Response.StatusCode)
	})

	if data.Error != nil && c.abortOnFailure {
		return data, data.Error
	}
	return data, nil
}

// State exposes the breaker state for diagnostics.
func (c *CircuitBreakerInterceptor) State() gobreaker.State {
	return c.cb.State()
}
