package auth_test

import (
	"net/url"

	qt "github.com/frankban/quicktest"
)

// decode undoes the query escaping gin applies to cookie values.
func decode(c *qt.C, v string) string {
	s, err := url.QueryUnescape(v)
	c.Assert(err, qt.IsNil)
	return s
}
