package interceptors

import "net/http"

const userAgent = "request-builder-go"

// DefaultHeaders are set on every outgoing request unless the caller already
// provided a value.
func DefaultHeaders() http.Header {
	return http.Header{
		"Accept":     []string{"application/json"},
		"User-Agent": []string{userAgent},
	}
}

// Headers fills in missing request headers.
type Headers struct {
	headers http.Header
}

func NewHeaders(headers http.Header) *Headers {
	return &Headers{
		headers: headers.Clone(),
	}
}

func (h *Headers) BeforeRequest(data InterceptorData) (InterceptorData, error) {
	if data.Request.Header == nil {
		data.Request.Header = make(http.Header)
	}
	for name, values := range h.headers {
		if data.Request.Header.Get(name) != "" {
			continue
		}
		for _, v := range values {
			data.Request.Header.Add(name, v)
		}
	}
	return data, nil
}

func (h *Headers) AfterResponse(data InterceptorData) (InterceptorData, error) {
	return data, nil
}
