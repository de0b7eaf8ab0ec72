package constants

import "errors"

var (
	ErrUnknown            = errors.New("unknown transport error")
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrInvalidURL         = errors.New("invalid URL provided")
	ErrNilRequest         = errors.New("request is nil")
	ErrInvalidMethod      = errors.New("invalid HTTP method")
)
