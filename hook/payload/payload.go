package payload

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// PreviewLength is the number of characters kept in an entry preview
const PreviewLength = 600

/* Inspection describes a raw delivery body as the dashboard renders it
 * ByteSize always counts the raw bytes, even when Text had to repair them
 */
type Inspection struct {
	// IsJSON is true when the body parses as a single JSON value
	IsJSON bool

	// Formatted is the body re-indented with two spaces, empty unless IsJSON
	Formatted string

	// Preview is the first PreviewLength characters of Formatted, or of the raw body
	Preview string

	// ByteSize is the length in bytes of the raw body
	ByteSize int
}

// Inspect classifies body and builds its pretty and preview renderings
func Inspect(body []byte) Inspection {
	in := Inspection{ByteSize: len(body)}

	if formatted, ok := Format(body); ok {
		in.IsJSON = true
		in.Formatted = formatted
		in.Preview = Truncate(formatted, PreviewLength)
		return in
	}

	in.Preview = Truncate(Text(body), PreviewLength)
	return in
}

// Text returns body as a string, replacing each run of invalid UTF-8 with U+FFFD
// so that every engine stores and returns the same text
func Text(body []byte) string {
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

// Format indents a JSON document with two spaces, keeping key order and number text
func Format(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}

// Truncate keeps the first n characters of s
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
