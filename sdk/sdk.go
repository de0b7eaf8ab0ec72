// Package requestbuilder wires a URLSession, its round-trip hooks and any
// session interceptors into a ready chain.
package requestbuilder

import (
	"github.com/sotoon/request-builder-go/sdk/interceptors"
	"github.com/sotoon/request-builder-go/sdk/mock"
	"github.com/sotoon/request-builder-go/sdk/session"
)

type SDK struct {
	// Session is the chain head; requests built from it pass every link.
	Session session.Manager
	// URLSession is the real transport at the end of the chain.
	URLSession *session.URLSession
}

type SDKOption func(SDK) SDK

func NewSDK(serverAddress string, opts ...SDKOption) (*SDK, error) {
	urlSession, err := session.NewURLSession(serverAddress)
	if err != nil {
		return nil, err
	}

	sdk := SDK{
		Session:    urlSession,
		URLSession: urlSession,
	}
	for _, opt := range opts {
		sdk = opt(sdk)
	}
	return &sdk, nil
}

// WithHooks adds round-trip hooks to the real transport.
func WithHooks(hooks ...interceptors.Interceptor) SDKOption {
	return func(s SDK) SDK {
		s.URLSession.AddHooks(hooks...)
		return s
	}
}

// WithInterceptor installs links at the chain head, in order, so the last one
// sees requests first.
func WithInterceptor(links ...session.Interceptor) SDKOption {
	return func(s SDK) SDK {
		for _, link := range links {
			s.Session = s.Session.Interceptor(link)
		}
		return s
	}
}

// WithMocks installs a mock interceptor at the chain head.
func WithMocks(opts ...mock.Option) SDKOption {
	return WithInterceptor(mock.New(opts...))
}

// Mock returns the mock interceptor in the chain, or nil.
func (s *SDK) Mock() *mock.Interceptor {
	m, _ := mock.From(s.Session)
	return m
}
