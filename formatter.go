package symdex

import "strings"

// FormatResults formats search results for display.
// Each entry is a header line followed by one indented line per reference.
// Entries are separated by blank lines.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		var b strings.Builder
		b.WriteString(r.Entry.Name)
		b.WriteString(" [")
		b.WriteString(r.Section)
		b.WriteString("]")
		for _, ref := range r.Entry.References {
			b.WriteString("\n  ")
			b.WriteString(ref.Label)
			if ref.Document != "" {
				b.WriteString("  ")
				b.WriteString(ref.Document)
			}
			b.WriteString("  ")
			b.WriteString(ref.URL)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}
