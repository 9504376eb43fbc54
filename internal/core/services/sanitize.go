package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const maxSanitizePasses = 4

var strictPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup and scripts but keeps plain text byte-for-byte.
// bluemonday escapes entities in its output, so the result is unescaped and
// sanitised again until it stops changing; that also catches markup smuggled
// in as entities. ok is false when the text is still changing after
// maxSanitizePasses, in which case the input is rejected rather than stored
// half-decoded.
//
// The tokenizer treats '<' followed by a letter as the start of a tag, so
// text such as "a<b" loses everything after the '<'.
func sanitizeText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for i := 0; i < maxSanitizePasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
		if next == s {
			return s, true
		}
		s = next
	}
	return "", false
}

func sanitizeOptional(s *string) (*string, bool) {
	if s == nil {
		return nil, true
	}
	out, ok := sanitizeText(*s)
	if !ok {
		return nil, false
	}
	if out == "" {
		return nil, true
	}
	return &out, true
}
