// Package interceptors holds the round-trip hooks run by the real transport
// underneath a session. Hooks see every request that is not answered by a
// session-level chain link such as the mock interceptor.
package interceptors

import (
	"context"
	"net/http"
)

// InterceptorData is threaded through every hook of a single round trip.
type InterceptorData struct {
	ID             string
	Ctx            context.Context
	InitialRequest *http.Request
	Request        *http.Request
	Response       *http.Response
	Error          error
}

type Interceptor interface {
	BeforeRequest(data InterceptorData) (InterceptorData, error)
	AfterResponse(data InterceptorData) (InterceptorData, error)
}

// Funcs adapts plain functions to Interceptor. A nil field is a no-op.
type Funcs struct {
	Before func(data InterceptorData) (InterceptorData, error)
	After  func(data InterceptorData) (InterceptorData, error)
}

func (f Funcs) BeforeRequest(data InterceptorData) (InterceptorData, error) {
	if f.Before == nil {
		return data, nil
	}
	return f.Before(data)
}

func (f Funcs) AfterResponse(data InterceptorData) (InterceptorData, error) {
	if f.After == nil {
		return data, nil
	}
	return f.After(data)
}
