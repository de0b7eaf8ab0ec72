package session

import (
	"context"
	"net/http"
	"net/url"
)

// chain is one link of the singly linked interceptor list. It owns its
// parent; nothing points back at it.
type chain struct {
	parent Manager
	link   Interceptor
}

// Chain installs link in front of parent.
func Chain(parent Manager, link Interceptor) Manager {
	return &chain{parent: parent, link: link}
}

func (c *chain) Base() *url.URL          { return c.parent.Base() }
func (c *chain) DefaultEncoder() Encoder { return c.parent.DefaultEncoder() }
func (c *chain) DefaultDecoder() Decoder { return c.parent.DefaultDecoder() }

func (c *chain) Request(u *url.URL) *Builder {
	return newBuilder(c, u)
}

func (c *chain) Data(ctx context.Context, req *http.Request) (any, *http.Response, error) {
	return c.link.Intercept(ctx, req, c.parent)
}

func (c *chain) Interceptor(link Interceptor) Manager {
	return Chain(c, link)
}

// Unwrap returns the next manager towards the transport.
func (c *chain) Unwrap() Manager { return c.parent }

// Link returns the interceptor installed at this position.
func (c *chain) Link() Interceptor { return c.link }

// wrapper is implemented by chain heads that wrap another manager.
type wrapper interface {
	Link() Interceptor
	Unwrap() Manager
}

// Find returns the link closest to the chain head that has type T.
func Find[T any](m Manager) (T, bool) {
	for m != nil {
		l, ok := m.(wrapper)
		if !ok {
			break
		}
		if t, ok := l.Link().(T); ok {
			return t, true
		}
		m = l.Unwrap()
	}
	var zero T
	return zero, false
}
