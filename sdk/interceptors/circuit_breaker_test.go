package interceptors

import (
	"net/http"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotoon/request-builder-go/sdk/constants"
)

func TestCircuitBreaker_opensOnTripStatus(t *testing.T) {
	cb := gobreaker.NewCircuitBreaker(NewCircuitBreakerSettings(CircuitBreakerOptions{
		Name:                "test",
		ConsecutiveFailures: 2,
		Timeout:             time.Minute,
	}))
	breaker := NewCircuitBreakerInterceptor(cb, true)
	hits := 0
	it := NewInterceptorTransport(statusTransport(http.StatusTooManyRequests, "", &hits), []Interceptor{breaker})

	for i := 0; i < 2; i++ {
		resp, err := it.RoundTrip(newRequest(t))
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	}
	assert.Equal(t, gobreaker.StateOpen, breaker.State())

	_, err := it.RoundTrip(newRequest(t))
	assert.ErrorIs(t, err, constants.ErrCircuitBreakerOpen)
	assert.Equal(t, 2, hits)
}

func TestCircuitBreaker_ignoresOtherStatuses(t *testing.T) {
	cb := gobreaker.NewCircuitBreaker(NewCircuitBreakerSettings(CircuitBreakerOptions{
		Name:         "custom",
		TripStatuses: []int{http.StatusServiceUnavailable},
	}))
	breaker := NewCircuitBreakerInterceptor(cb, false)
	hits := 0
	it := NewInterceptorTransport(statusTransport(http.StatusInternalServerError, "", &hits), []Interceptor{breaker})

	for i := 0; i < 3; i++ {
		_, err := it.RoundTrip(newRequest(t))
		require.NoError(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
}

func TestCircuitBreaker_softFailureWhenNotAborting(t *testing.T) {
	cb := gobreaker.NewCircuitBreaker(NewCircuitBreakerSettings(CircuitBreakerOptions{Name: "soft", Timeout: time.Minute}))
	breaker := NewCircuitBreakerInterceptor(cb, false)
	hits := 0
	it := NewInterceptorTransport(statusTransport(http.StatusBadGateway, "", &hits), []Interceptor{breaker})

	_, err := it.RoundTrip(newRequest(t))
	require.NoError(t, err)

	_, err = it.RoundTrip(newRequest(t))
	assert.ErrorIs(t, err, constants.ErrCircuitBreakerOpen)
	assert.Equal(t, 1, hits)
}

func TestNewCircuitBreakerInterceptor_nilPanics(t *testing.T) {
	assert.Panics(t, func() { NewCircuitBreakerInterceptor(nil, true) })
}
