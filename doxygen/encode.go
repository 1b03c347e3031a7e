package doxygen

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/symdex"
)

// htmlEscaper re-applies the entity encoding the generator uses for names
// and scopes.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\u00a0", "&#160;",
)

// jsEscaper escapes text for a single-quoted JavaScript string.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Encode writes entries as one per-letter index file. Search ids are
// recomputed from entry names and positions, so encoding the same entries
// always produces the same bytes.
func Encode(w io.Writer, entries []*symdex.Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("var searchData=\n[\n")
	for i, e := range entries {
		bw.WriteString("  [")
		writeString(bw, EntryID(e.Name, i))
		bw.WriteString(",[")
		writeString(bw, htmlEscaper.Replace(e.Name))
		for _, ref := range e.References {
			bw.WriteString(",[")
			writeString(bw, ref.URL)
			bw.WriteByte(',')
			if ref.Local {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
			bw.WriteByte(',')
			writeString(bw, htmlEscaper.Replace(ref.Scope))
			bw.WriteByte(']')
		}
		bw.WriteString("]]")
		if i < len(entries)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("];\n")
	return bw.Flush()
}

// EntryID returns the search id of the n-th entry (zero based) of a file.
func EntryID(name string, n int) string {
	return symdex.SearchID(name) + "_" + strconv.Itoa(n)
}

func writeString(bw *bufio.Writer, s string) {
	bw.WriteByte('\'')
	bw.WriteString(jsEscaper.Replace(s))
	bw.WriteByte('\'')
}
