package interceptors

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sotoon/request-builder-go/sdk/constants"
)

// InterceptorTransport is an http.RoundTripper that runs hooks around the
// wrapped transport.
type InterceptorTransport struct {
	rt           http.RoundTripper
	interceptors []Interceptor
}

// NewDefaultInterceptorTransport wraps http.DefaultTransport with the default
// header hook.
func NewDefaultInterceptorTransport() *InterceptorTransport {
	return &InterceptorTransport{
		rt: http.DefaultTransport,
		interceptors: []Interceptor{
			NewHeaders(DefaultHeaders()),
		},
	}
}

func NewInterceptorTransport(rt http.RoundTripper, interceptors []Interceptor) *InterceptorTransport {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &InterceptorTransport{
		rt:           rt,
		interceptors: interceptors,
	}
}

func (it *InterceptorTransport) AddInterceptors(interceptors ...Interceptor) {
	it.interceptors = append(it.interceptors, interceptors...)
}

// SetRoundTripper replaces the wrapped transport.
func (it *InterceptorTransport) SetRoundTripper(rt http.RoundTripper) {
	if rt != nil {
		it.rt = rt
	}
}

func (it *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return it.RoundTripWithID(req, uuid.New().String())
}

// RoundTripWithID runs every BeforeRequest hook in order, the wrapped
// transport, then every AfterResponse hook in order. A BeforeRequest hook
// that sets Response answers the request without touching the transport.
func (it *InterceptorTransport) RoundTripWithID(req *http.Request, id string) (*http.Response, error) {
	if req == nil {
		return nil, constants.ErrNilRequest
	}

	data := InterceptorData{
		ID:             id,
		Ctx:            req.Context(),
		InitialRequest: req.Clone(req.Context()),
		Request:        req,
	}

	var err error
	for _, interceptor := range it.interceptors {
		data, err = interceptor.BeforeRequest(data)
		if err != nil {
			return nil, err
		}
		if data.Response != nil {
			return data.Response, nil
		}
	}
	if data.Error != nil {
		return nil, data.Error
	}

	resp, err := it.rt.RoundTrip(data.Request)
	if err != nil {
		return nil, err
	}
	data.Response = resp

	for _, interceptor := range it.interceptors {
		data, err = interceptor.AfterResponse(data)
		if err != nil {
			closeBody(data.Response)
			return nil, err
		}
	}
	if data.Error != nil {
		closeBody(data.Response)
		return nil, data.Error
	}
	return data.Response, nil
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
