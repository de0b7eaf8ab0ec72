// Package mock provides a session interceptor that answers requests from a
// registry of stubbed responses.
//
// Lookups are keyed by the request URL with its query tokens sorted, so the
// order in which query parameters were added does not matter. Resolution is
// exact path first, then the AnyPath wildcard, then the parent handler. An
// empty registry always passes requests through.
//
//	m := mock.New()
//	head := urlSession.Interceptor(m)
//	m.MockDataPath("/users?page=1&sort=asc", []byte(`{"ok":true}`), mock.DefaultStatus)
package mock
