// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied text before it is
// stored. Group names, poll questions and activity descriptions are plain
// text; anything that looks like HTML is hostile input, not formatting.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML elements and attributes from s and trims
// surrounding whitespace. Entities introduced by the sanitizer are left
// encoded; templates and JSON encoding handle them correctly.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
