package mock

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"github.com/sotoon/request-builder-go/sdk/constants"
)

const (
	DefaultStatus = http.StatusOK
	// ErrorStatus is the status recorded for error mocks when the caller has
	// no better one.
	ErrorStatus = 999
)

// Producer yields the payload of a stubbed response. A nil result, typed or
// not, means the response fails. It is called once per intercepted request.
type Producer func() any

// Value adapts a typed function to a Producer.
func Value[T any](fn func() T) Producer {
	return func() any { return fn() }
}

// Entry is one stubbed response.
type Entry struct {
	Status int
	Data   Producer
	Err    error
}

// Synthesize answers req from entry. path becomes the URL of the synthetic
// response.
func Synthesize(req *http.Request, entry Entry, path string) (any, *http.Response, error) {
	var payload any
	if entry.Data != nil {
		payload = entry.Data()
	}

	if absent(payload) {
		if entry.Err != nil {
			return nil, nil, entry.Err
		}
		return nil, nil, fmt.Errorf("mock %s returned no data (status %d): %w", path, entry.Status, constants.ErrUnknown)
	}

	resp := &http.Response{
		Status:     fmt.Sprintf("%d %s", entry.Status, http.StatusText(entry.Status)),
		StatusCode: entry.Status,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Body:       http.NoBody,
		Request:    responseRequest(req, path),
	}
	if b, ok := payload.([]byte); ok {
		resp.Body = io.NopCloser(bytes.NewReader(b))
		resp.ContentLength = int64(len(b))
	}
	return payload, resp, nil
}

// absent reports whether v is nil or a nil pointer, slice, map, interface,
// func or chan.
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func responseRequest(req *http.Request, path string) *http.Request {
	out := &http.Request{Method: http.MethodGet, Header: make(http.Header)}
	if req != nil {
		out = req.Clone(req.Context())
	}
	if u, err := url.Parse(path); err == nil {
		out.URL = u
	}
	return out
}
