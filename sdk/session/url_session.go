package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sotoon/request-builder-go/sdk/constants"
	"github.com/sotoon/request-builder-go/sdk/interceptors"
)

// URLSession is the real transport at the end of every chain.
type URLSession struct {
	base                 *url.URL
	client               *http.Client
	interceptorTransport *interceptors.InterceptorTransport
	encoder              Encoder
	decoder              Decoder
}

type Option func(*URLSession) *URLSession

// WithHooks appends round-trip hooks to the session's transport.
func WithHooks(hooks ...interceptors.Interceptor) Option {
	return func(s *URLSession) *URLSession {
		s.interceptorTransport.AddInterceptors(hooks...)
		return s
	}
}

// WithRoundTripper replaces the transport the hooks wrap.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(s *URLSession) *URLSession {
		s.interceptorTransport.SetRoundTripper(rt)
		return s
	}
}

func WithEncoder(e Encoder) Option {
	return func(s *URLSession) *URLSession {
		s.encoder = e
		return s
	}
}

func WithDecoder(d Decoder) Option {
	return func(s *URLSession) *URLSession {
		s.decoder = d
		return s
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *URLSession) *URLSession {
		s.client.Timeout = timeout
		return s
	}
}

func NewURLSession(serverAddress string, opts ...Option) (*URLSession, error) {
	base, err := url.Parse(serverAddress)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidURL, serverAddress)
	}

	interceptorTransport := interceptors.NewDefaultInterceptorTransport()
	s := &URLSession{
		base: base,
		client: &http.Client{
			Transport: interceptorTransport,
		},
		interceptorTransport: interceptorTransport,
		encoder:              JSON{},
		decoder:              JSON{},
	}
	for _, opt := range opts {
		s = opt(s)
	}
	return s, nil
}

func (s *URLSession) Base() *url.URL {
	u := *s.base
	return &u
}

func (s *URLSession) DefaultEncoder() Encoder { return s.encoder }
func (s *URLSession) DefaultDecoder() Decoder { return s.decoder }

func (s *URLSession) Request(u *url.URL) *Builder {
	return newBuilder(s, u)
}

func (s *URLSession) Interceptor(link Interceptor) Manager {
	return Chain(s, link)
}

// AddHooks appends round-trip hooks after construction.
func (s *URLSession) AddHooks(hooks ...interceptors.Interceptor) {
	s.interceptorTransport.AddInterceptors(hooks...)
}

// Data sends req and returns the whole response body as []byte.
func (s *URLSession) Data(ctx context.Context, req *http.Request) (any, *http.Response, error) {
	if req == nil {
		return nil, nil, constants.ErrNilRequest
	}

	resp, err := s.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp, nil
}
