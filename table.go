package symdex

import (
	"strings"
)

// Section names used by generated search indexes.
const (
	SectionAll        = "all"
	SectionClasses    = "classes"
	SectionNamespaces = "namespaces"
	SectionFiles      = "files"
	SectionFunctions  = "functions"
	SectionVariables  = "variables"
	SectionTypedefs   = "typedefs"
	SectionEnums      = "enums"
	SectionEnumValues = "enumvalues"
	SectionDefines    = "defines"
	SectionPages      = "pages"
)

// MatchMode selects how a query is compared against entry keys.
type MatchMode string

// MatchMode constants. MatchPrefix mirrors the browser search widget.
const (
	MatchPrefix    MatchMode = "prefix"
	MatchSubstring MatchMode = "substring"
	MatchExact     MatchMode = "exact"
)

// ParseMatchMode converts a user-supplied mode name into a MatchMode.
// The empty string selects MatchPrefix.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(s)) {
	case "", MatchPrefix:
		return MatchPrefix, nil
	case MatchSubstring:
		return MatchSubstring, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", Errorf(EINVALID, "unknown match mode %q", s)
}

// Table is one section of a search index: an ordered sequence of entries.
// Entry order is the generator's insertion order and carries no meaning.
// A Table is not modified after it is loaded and is safe for concurrent reads.
type Table struct {
	Section string   `json:"section" yaml:"section"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Entries []*Entry `json:"entries" yaml:"entries"`
}

// Validate returns an error if the table or any of its entries is invalid.
func (t *Table) Validate() error {
	if t.Section == "" {
		return Errorf(EINVALID, "table section required")
	}
	for i, e := range t.Entries {
		if err := e.Validate(); err != nil {
			return Errorf(EINVALID, "%s[%d]: %s", t.Section, i, ErrorMessage(err))
		}
	}
	return nil
}

// Search returns the entries whose key matches query under mode, in table
// order. An empty or whitespace-only query matches nothing.
func (t *Table) Search(query string, mode MatchMode) []*Entry {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}

	var matches []*Entry
	for _, e := range t.Entries {
		if match(e.Key(), q, mode) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Lookup returns the entry whose token equals name, ignoring case.
// Returns nil when there is none.
func (t *Table) Lookup(name string) *Entry {
	if m := t.Search(name, MatchExact); len(m) > 0 {
		return m[0]
	}
	return nil
}

// ReferenceCount returns the total number of references in the table.
func (t *Table) ReferenceCount() int {
	var n int
	for _, e := range t.Entries {
		n += len(e.References)
	}
	return n
}

func normalizeQuery(query string) string {
	return SearchKey(strings.TrimSpace(query))
}

func match(key, query string, mode MatchMode) bool {
	switch mode {
	case MatchExact:
		return key == query
	case MatchSubstring:
		return strings.Contains(key, query)
	default:
		return strings.HasPrefix(key, query)
	}
}
