package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/sotoon/request-builder-go/sdk/constants"
)

// Builder assembles a request and executes it through the manager that
// created it.
type Builder struct {
	manager Manager
	method  string
	url     *url.URL
	query   []string
	header  http.Header
	body    any
	hasBody bool
	encoder Encoder
	decoder Decoder
	err     error
}

func newBuilder(m Manager, u *url.URL) *Builder {
	if u == nil {
		u = m.Base()
	} else {
		c := *u
		u = &c
	}
	b := &Builder{
		manager: m,
		method:  http.MethodGet,
		url:     u,
		header:  make(http.Header),
		encoder: m.DefaultEncoder(),
		decoder: m.DefaultDecoder(),
	}
	if u != nil && u.RawQuery != "" {
		b.query = strings.Split(u.RawQuery, "&")
	}
	return b
}

func (b *Builder) Method(method string) *Builder {
	if !isValidMethod(method) {
		b.fail(fmt.Errorf("%w: %q", constants.ErrInvalidMethod, method))
		return b
	}
	b.method = method
	return b
}

func (b *Builder) Get() *Builder    { return b.Method(http.MethodGet) }
func (b *Builder) Post() *Builder   { return b.Method(http.MethodPost) }
func (b *Builder) Put() *Builder    { return b.Method(http.MethodPut) }
func (b *Builder) Delete() *Builder { return b.Method(http.MethodDelete) }

// Path joins elements onto the current URL path.
func (b *Builder) Path(elem ...string) *Builder {
	if b.url == nil {
		b.fail(constants.ErrInvalidURL)
		return b
	}
	b.url = b.url.JoinPath(elem...)
	return b
}

// Query appends a form-styled query parameter. Parameters keep the order in
// which they were added.
func (b *Builder) Query(name string, value any) *Builder {
	param, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		b.fail(fmt.Errorf("invalid query parameter %q: %w", name, err))
		return b
	}
	if param != "" {
		b.query = append(b.query, param)
	}
	return b
}

func (b *Builder) Header(name, value string) *Builder {
	b.header.Add(name, value)
	return b
}

// Body sets a value encoded with the builder's encoder at Build time.
// A []byte is sent as is.
func (b *Builder) Body(v any) *Builder {
	b.body = v
	b.hasBody = true
	return b
}

func (b *Builder) Encoder(e Encoder) *Builder {
	b.encoder = e
	return b
}

func (b *Builder) Decoder(d Decoder) *Builder {
	b.decoder = d
	return b
}

func (b *Builder) fail(err error) {
	b.err = errors.Join(b.err, err)
}

// Build returns the prepared request.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.url == nil {
		return nil, constants.ErrInvalidURL
	}

	u := *b.url
	u.RawQuery = strings.Join(b.query, "&")

	var body io.Reader
	if b.hasBody {
		raw, ok := b.body.([]byte)
		if !ok {
			var err error
			raw, err = b.encoder.Encode(b.body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, b.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, values := range b.header {
		req.Header[name] = append([]string(nil), values...)
	}
	if b.hasBody && req.Header.Get("Content-Type") == "" {
		if _, raw := b.body.([]byte); !raw {
			req.Header.Set("Content-Type", b.encoder.ContentType())
		}
	}
	return req, nil
}

// Data builds the request and executes it through the manager.
func (b *Builder) Data(ctx context.Context) (any, *http.Response, error) {
	req, err := b.Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	return b.manager.Data(ctx, req)
}

// Publish builds the request and executes it asynchronously.
func (b *Builder) Publish(ctx context.Context) <-chan Result {
	req, err := b.Build(ctx)
	if err != nil {
		out := make(chan Result, 1)
		out <- Result{Err: err}
		close(out)
		return out
	}
	return Publish(ctx, b.manager, req)
}

// Decode executes the request and stores the payload in out, which must be a
// non-nil pointer.
func (b *Builder) Decode(ctx context.Context, out any) (*http.Response, error) {
	payload, resp, err := b.Data(ctx)
	if err != nil {
		return resp, err
	}
	return resp, assign(payload, out, b.encoder, b.decoder)
}

func assign(payload, out any, enc Encoder, dec Decoder) error {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", out)
	}

	switch p := payload.(type) {
	case nil:
		return nil
	case []byte:
		switch o := out.(type) {
		case *[]byte:
			*o = append([]byte(nil), p...)
			return nil
		case *string:
			*o = string(p)
			return nil
		}
		if len(p) == 0 {
			return nil
		}
		return dec.Decode(p, out)
	}

	value := reflect.ValueOf(payload)
	elem := target.Elem()
	if value.Type().AssignableTo(elem.Type()) {
		elem.Set(value)
		return nil
	}
	if value.Kind() == reflect.Pointer && !value.IsNil() && value.Elem().Type().AssignableTo(elem.Type()) {
		elem.Set(value.Elem())
		return nil
	}

	raw, err := enc.Encode(payload)
	if err != nil {
		return fmt.Errorf("failed to re-encode payload: %w", err)
	}
	return dec.Decode(raw, out)
}

func isValidMethod(method string) bool {
	switch method {
	case http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodConnect,
		http.MethodOptions,
		http.MethodTrace:
		return true
	default:
		return false
	}
}
