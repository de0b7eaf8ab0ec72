package mock

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/pion/logging"

	"github.com/sotoon/request-builder-go/sdk/session"
)

// EnvEnabled names the environment variable read by New to decide whether
// stubs are served. Unset or unparsable means enabled.
const EnvEnabled = "REQUESTBUILDER_MOCKS"

// Call records one request answered by the interceptor.
type Call struct {
	Method string
	URL    string
	// Path is the registry key that matched, AnyPath for the wildcard.
	Path   string
	Status int
}

// Interceptor is a session chain link that answers requests from a registry
// of stubs and forwards everything else to its parent.
type Interceptor struct {
	registry *Registry
	enabled  bool
	logger   logging.LeveledLogger

	mu    sync.Mutex
	calls []Call
}

var _ session.Interceptor = (*Interceptor)(nil)

// Option configures an Interceptor built by New.
type Option func(*Interceptor)

// WithEnabled overrides the environment-derived switch.
func WithEnabled(enabled bool) Option {
	return func(i *Interceptor) {
		i.enabled = enabled
	}
}

func WithLogger(logger logging.LeveledLogger) Option {
	return func(i *Interceptor) {
		i.logger = logger
	}
}

// New returns an interceptor with an empty registry.
func New(opts ...Option) *Interceptor {
	i := &Interceptor{
		registry: NewRegistry(),
		enabled:  enabledFromEnv(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = logging.NewDefaultLoggerFactory().NewLogger("mock")
	}
	return i
}

func enabledFromEnv() bool {
	v, ok := os.LookupEnv(EnvEnabled)
	if !ok {
		return true
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return enabled
}

func (i *Interceptor) Enabled() bool { return i.enabled }

// Intercept answers req from the registry or forwards it to parent.
func (i *Interceptor) Intercept(ctx context.Context, req *http.Request, parent session.Handler) (any, *http.Response, error) {
	if !i.enabled || i.registry.Len() == 0 || req == nil || req.URL == nil {
		return parent.Data(ctx, req)
	}

	for _, path := range requestPaths(req) {
		if entry, ok := i.registry.Lookup(path); ok {
			i.logger.Debugf("mock hit %s %s", req.Method, path)
			i.record(req, Normalize(path), entry)
			return Synthesize(req, entry, path)
		}
	}

	if entry, ok := i.registry.Lookup(AnyPath); ok {
		i.logger.Debugf("mock wildcard hit %s %s", req.Method, req.URL.String())
		i.record(req, AnyPath, entry)
		return Synthesize(req, entry, "/")
	}

	i.logger.Tracef("mock miss %s %s, registered %v", req.Method, req.URL.String(), i.registry.Paths())
	return parent.Data(ctx, req)
}

// requestPaths lists the keys tried for req: the absolute URL, then the path
// with its query.
func requestPaths(req *http.Request) []string {
	full := req.URL.String()
	uri := req.URL.RequestURI()
	if full == uri {
		return []string{full}
	}
	return []string{full, uri}
}

func (i *Interceptor) record(req *http.Request, path string, entry Entry) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls = append(i.calls, Call{
		Method: req.Method,
		URL:    req.URL.String(),
		Path:   path,
		Status: entry.Status,
	})
}

// Calls returns a copy of the requests answered since the last Reset.
func (i *Interceptor) Calls() []Call {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]Call(nil), i.calls...)
}

// Reset clears every stub and the recorded calls.
func (i *Interceptor) Reset() {
	i.registry.Reset()
	i.mu.Lock()
	i.calls = nil
	i.mu.Unlock()
}

func (i *Interceptor) Remove(path string) { i.registry.Remove(path) }

// RemoveAny removes the wildcard stub.
func (i *Interceptor) RemoveAny() { i.registry.Remove(AnyPath) }

// Mock registers entry as the wildcard stub.
func (i *Interceptor) Mock(entry Entry) { i.registry.Register(AnyPath, entry) }

func (i *Interceptor) MockPath(path string, entry Entry) { i.registry.Register(path, entry) }

// MockStatus answers every request with status and an empty body.
func (i *Interceptor) MockStatus(status int) {
	i.Mock(statusEntry(status))
}

func (i *Interceptor) MockStatusPath(path string, status int) {
	i.MockPath(path, statusEntry(status))
}

// MockData answers with a fixed body. A nil body makes the request fail.
func (i *Interceptor) MockData(data []byte, status int) {
	i.Mock(dataEntry(data, status))
}

func (i *Interceptor) MockDataPath(path string, data []byte, status int) {
	i.MockPath(path, dataEntry(data, status))
}

// MockValue answers with whatever producer returns at request time.
func (i *Interceptor) MockValue(producer Producer, status int) {
	i.Mock(Entry{Status: status, Data: producer})
}

func (i *Interceptor) MockValuePath(path string, producer Producer, status int) {
	i.MockPath(path, Entry{Status: status, Data: producer})
}

// MockError makes every request fail with err.
func (i *Interceptor) MockError(err error, status int) {
	i.Mock(Entry{Status: status, Err: err})
}

func (i *Interceptor) MockErrorPath(path string, err error, status int) {
	i.MockPath(path, Entry{Status: status, Err: err})
}

func statusEntry(status int) Entry {
	return Entry{Status: status, Data: func() any { return []byte{} }}
}

func dataEntry(data []byte, status int) Entry {
	return Entry{Status: status, Data: func() any {
		if data == nil {
			return nil
		}
		return data
	}}
}

// From returns the mock interceptor installed in m's chain, if any.
func From(m session.Manager) (*Interceptor, bool) {
	return session.Find[*Interceptor](m)
}

// Configure calls fn with the mock interceptor installed in m's chain. It
// reports whether one was found.
func Configure(m session.Manager, fn func(*Interceptor)) bool {
	i, ok := From(m)
	if ok {
		fn(i)
	}
	return ok
}
