package service

import (
	"strings"
	"unicode/utf8"
)

// sanitizeUTF8 strips invalid byte sequences from model output before it
// reaches Postgres, which rejects malformed UTF-8 in text columns.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	return b.String()
}
