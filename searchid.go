package symdex

import (
	"strings"
	"unicode/utf8"
)

// SearchKey returns the case-insensitive key a token is matched on.
func SearchKey(name string) string {
	return strings.ToLower(name)
}

// SearchID encodes a token the way generated search ids are written:
// lower-cased, with every byte that is not an ASCII letter or digit
// replaced by "_" and two hex digits ("test_case" becomes "test_5fcase").
func SearchID(name string) string {
	const hex = "0123456789abcdef"

	key := SearchKey(name)
	var sb strings.Builder
	sb.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('_')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

// GroupChar returns the character that selects the per-letter file a token
// is written to. Returns utf8.RuneError for an empty name.
func GroupChar(name string) rune {
	r, _ := utf8.DecodeRuneInString(SearchKey(name))
	return r
}
