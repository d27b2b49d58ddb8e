// Package sanitize strips markup from user-supplied free text before it
// is stored. Prayer requests, group names and descriptions, messages,
// and feedback are plain text as far as this API is concerned; anything
// that looks like HTML is removed, not escaped.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
