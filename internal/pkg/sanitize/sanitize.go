// Package sanitize strips markup from user entered text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxPasses bounds the decode and strip rounds for nested entity encodings
const maxPasses = 10

// Text removes every HTML element from s, including elements hidden behind
// entity encoding, and trims surrounding whitespace. Plain characters such as
// '&' and quotes are returned unescaped.
func Text(s string) string {
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(html.UnescapeString(s)))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// still changing, keep the escaped form
	return strings.TrimSpace(strict.Sanitize(s))
}

// TextPtr applies Text to a non-nil pointer and returns a new pointer.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}

// FileName reduces a client supplied file name to its base name without markup
// or path separators. An empty result becomes "file".
func FileName(name string) string {
	name = Text(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == '"' {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
