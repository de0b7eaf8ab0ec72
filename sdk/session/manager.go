// Package session defines the Session Manager boundary: a base address,
// default encoders, request builders and a chain of interceptors in front of
// the real transport.
package session

import (
	"context"
	"net/http"
	"net/url"
)

// Handler executes a prepared request. The payload is the raw body for the
// real transport and any value for synthesized responses.
type Handler interface {
	Data(ctx context.Context, req *http.Request) (any, *http.Response, error)
}

type HandlerFunc func(ctx context.Context, req *http.Request) (any, *http.Response, error)

func (f HandlerFunc) Data(ctx context.Context, req *http.Request) (any, *http.Response, error) {
	return f(ctx, req)
}

// Interceptor is a chain link. It must either return a terminal result or
// forward the request to parent exactly once.
type Interceptor interface {
	Intercept(ctx context.Context, req *http.Request, parent Handler) (any, *http.Response, error)
}

type InterceptorFunc func(ctx context.Context, req *http.Request, parent Handler) (any, *http.Response, error)

func (f InterceptorFunc) Intercept(ctx context.Context, req *http.Request, parent Handler) (any, *http.Response, error) {
	return f(ctx, req, parent)
}

type Manager interface {
	Handler

	Base() *url.URL
	DefaultEncoder() Encoder
	DefaultDecoder() Decoder

	// Request returns a builder for u, or for the base address when u is nil.
	Request(u *url.URL) *Builder

	// Interceptor installs link in front of the manager and returns the new
	// chain head.
	Interceptor(link Interceptor) Manager
}

// NewRequest returns a builder for the manager's base address.
func NewRequest(m Manager) *Builder {
	return m.Request(nil)
}

// Result is the single value delivered by Publish.
type Result struct {
	Payload  any
	Response *http.Response
	Err      error
}

// Publish executes req on its own goroutine. The returned channel receives
// exactly one Result and is then closed.
func Publish(ctx context.Context, h Handler, req *http.Request) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		payload, resp, err := h.Data(ctx, req)
		out <- Result{Payload: payload, Response: resp, Err: err}
	}()
	return out
}
