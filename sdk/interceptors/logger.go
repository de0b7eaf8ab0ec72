package interceptors

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/pion/logging"
)

// LoggerOptions defines configuration options for the logger interceptor
type LoggerOptions struct {
	// Logger receives the log lines. Defaults to a "requestbuilder" scoped
	// logger from pion's default factory.
	Logger logging.LeveledLogger

	// Logging control flags
	LogBasicInfo bool // Log method, URL, status code
	LogHeaders   bool // Log HTTP headers
	LogBody      bool // Log request/response bodies

	// MaxBodyLogSize is the maximum size of request/response body to log (in bytes). default is 1024 bytes
	MaxBodyLogSize int
	// SkipHeaders is a list of headers to exclude from logs (e.g., for security reasons)
	SkipHeaders []string
	// SkipPaths is a list of URL path prefixes to exclude from logging
	SkipPaths []string
}

// Logger is an interceptor that logs HTTP requests and responses
type Logger struct {
	opts LoggerOptions
}

// NewLogger creates a new logger interceptor with the given options
func NewLogger(opts LoggerOptions) *Logger {
	if opts.Logger == nil {
		opts.Logger = logging.NewDefaultLoggerFactory().NewLogger("requestbuilder")
	}
	if opts.MaxBodyLogSize == 0 {
		opts.MaxBodyLogSize = 1024
	}

	skip := make([]string, len(opts.SkipHeaders))
	for i, header := range opts.SkipHeaders {
		skip[i] = strings.ToLower(header)
	}
	opts.SkipHeaders = skip

	return &Logger{opts: opts}
}

// BeforeRequest logs the outgoing request
func (l *Logger) BeforeRequest(data InterceptorData) (InterceptorData, error) {
	if l.skipped(data.Request) {
		return data, nil
	}

	if l.opts.LogBasicInfo {
		l.opts.Logger.Infof("[%s] --> %s %s", data.ID, data.Request.Method, data.Request.URL.String())
	}
	if l.opts.LogHeaders {
		l.logHeaders("REQ", data.ID, data.Request.Header)
	}
	if l.opts.LogBody && data.Request.Body != nil && data.Request.Body != http.NoBody {
		var body []byte
		body, data.Request.Body = l.drain(data.ID, "request", data.Request.Body)
		if body != nil {
			l.logBody("REQ", data.ID, body)
		}
	}

	return data, nil
}

// AfterResponse logs the received response
func (l *Logger) AfterResponse(data InterceptorData) (InterceptorData, error) {
	if l.skipped(data.Request) || data.Response == nil {
		return data, nil
	}

	if l.opts.LogBasicInfo {
		l.opts.Logger.Infof("[%s] <-- %d %s", data.ID,
			data.Response.StatusCode, http.StatusText(data.Response.StatusCode))
	}
	if l.opts.LogHeaders {
		l.logHeaders("RESP", data.ID, data.Response.Header)
	}
	if l.opts.LogBody && data.Response.Body != nil {
		var body []byte
		body, data.Response.Body = l.drain(data.ID, "response", data.Response.Body)
		if body != nil {
			l.logBody("RESP", data.ID, body)
		}
	}

	return data, nil
}

func (l *Logger) skipped(req *http.Request) bool {
	for _, path := range l.opts.SkipPaths {
		if strings.HasPrefix(req.URL.Path, path) {
			return true
		}
	}
	return false
}

// drain reads body fully and hands back a replacement reader.
func (l *Logger) drain(id, kind string, body io.ReadCloser) ([]byte, io.ReadCloser) {
	b, err := io.ReadAll(body)
	_ = body.Close()
	if err != nil {
		l.opts.Logger.Warnf("[%s] error reading %s body: %v", id, kind, err)
	}
	return b, io.NopCloser(bytes.NewReader(b))
}

func (l *Logger) logBody(prefix, id string, body []byte) {
	suffix := ""
	if len(body) > l.opts.MaxBodyLogSize {
		body = body[:l.opts.MaxBodyLogSize]
		suffix = " [truncated...]"
	}
	l.opts.Logger.Debugf("[%s] %s BODY: %s%s", id, prefix, string(body), suffix)
}

func (l *Logger) logHeaders(prefix string, id string, headers http.Header) {
	for name, values := range headers {
		if l.shouldSkipHeader(name) {
			continue
		}
		for _, value := range values {
			l.opts.Logger.Debugf("[%s] %s HEADER: %s: %s", id, prefix, name, value)
		}
	}
}

// shouldSkipHeader determines if a header should be skipped in logs
func (l *Logger) shouldSkipHeader(name string) bool {
	lowerName := strings.ToLower(name)
	for _, skip := range l.opts.SkipHeaders {
		if skip == lowerName {
			return true
		}
	}
	return false
}
