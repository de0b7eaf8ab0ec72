package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	type testData struct {
		name string
		path string
		exp  string
	}

	testCases := []testData{
		{name: "noQuery", path: "/users", exp: "/users"},
		{name: "absoluteNoQuery", path: "https://example.com/a/b", exp: "https://example.com/a/b"},
		{name: "wildcard", path: AnyPath, exp: AnyPath},
		{name: "empty", path: "", exp: ""},
		{name: "alreadySorted", path: "/x?a=1&b=2", exp: "/x?a=1&b=2"},
		{name: "reversed", path: "/x?b=2&a=1", exp: "/x?a=1&b=2"},
		{name: "lexicographicNotNumeric", path: "/x?a=2&a=10", exp: "/x?a=10&a=2"},
		{name: "wholeTokenCompare", path: "/x?ab=1&a=2", exp: "/x?a=2&ab=1"},
		{name: "emptyQuery", path: "/x?", exp: "/x?"},
		{name: "noCaseFolding", path: "/x?b=1&B=2", exp: "/x?B=2&b=1"},
		{name: "noUnescaping", path: "/x?q=%20&p=+", exp: "/x?p=+&q=%20"},
		{name: "splitsOnFirstQuestionMark", path: "/x?b=?&a=1", exp: "/x?a=1&b=?"},
	}

	for _, td := range testCases {
		t.Run(td.name, func(t *testing.T) {
			assert.Equal(t, td.exp, Normalize(td.path))
		})
	}
}

func TestNormalize_permutationInvariant(t *testing.T) {
	perms := []string{
		"/users?sort=asc&page=1&limit=5",
		"/users?page=1&sort=asc&limit=5",
		"/users?limit=5&page=1&sort=asc",
		"/users?limit=5&sort=asc&page=1",
	}
	exp := Normalize(perms[0])
	for _, p := range perms[1:] {
		assert.Equal(t, exp, Normalize(p), p)
	}
}

func TestNormalize_idempotent(t *testing.T) {
	p := "/x?c=3&a=1&b=2"
	assert.Equal(t, Normalize(p), Normalize(Normalize(p)))
}
