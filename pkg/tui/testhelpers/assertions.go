package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertViewContains fails the test unless every fragment appears in the
// rendered view. The full view is printed on failure.
func AssertViewContains(t *testing.T, view string, fragments ...string) bool {
	t.Helper()

	ok := true
	for _, f := range fragments {
		ok = assert.Contains(t, view, f, "rendered view:\n%s", view) && ok
	}
	return ok
}

// AssertViewNotContains fails the test if any fragment appears in the view
func AssertViewNotContains(t *testing.T, view string, fragments ...string) bool {
	t.Helper()

	ok := true
	for _, f := range fragments {
		ok = assert.NotContains(t, view, f, "rendered view:\n%s", view) && ok
	}
	return ok
}
