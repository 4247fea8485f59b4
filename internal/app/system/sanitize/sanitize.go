// Package sanitize strips markup from user-supplied free text before it is
// stored. Names and titles are length-checked elsewhere; this covers the
// fields that are echoed back to other users (descriptions, comments).
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
