package symdex

// KeyFilter answers whether a search key may be present in a catalog.
// False positives are allowed; false negatives are not.
type KeyFilter interface {
	Test(key string) bool
}

// SearchOptions configures Catalog.Search.
type SearchOptions struct {
	// Section restricts the search to one table. When empty, the "all"
	// table is searched if present, otherwise every table.
	Section string `json:"section,omitempty"`

	// Mode defaults to MatchPrefix.
	Mode MatchMode `json:"mode,omitempty"`

	// Maximum number of results to return. Zero means no limit.
	Limit int `json:"limit,omitempty"`
}

// SearchResult is one matching entry and the section it was found in.
type SearchResult struct {
	Section string `json:"section" yaml:"section"`
	Entry   *Entry `json:"entry" yaml:"entry"`
}

// Catalog is the set of tables that make up one search index.
type Catalog struct {
	Tables []*Table

	// Filter, when set, short-circuits exact lookups for absent keys.
	Filter KeyFilter
}

// NewCatalog returns a catalog over tables.
func NewCatalog(tables ...*Table) *Catalog {
	return &Catalog{Tables: tables}
}

// Table returns the table for section, or nil.
func (c *Catalog) Table(section string) *Table {
	for _, t := range c.Tables {
		if t.Section == section {
			return t
		}
	}
	return nil
}

// Sections returns the section names in catalog order.
func (c *Catalog) Sections() []string {
	sections := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		sections = append(sections, t.Section)
	}
	return sections
}

// Validate validates every table in the catalog.
func (c *Catalog) Validate() error {
	for _, t := range c.Tables {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns every distinct search key in the catalog.
func (c *Catalog) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, t := range c.Tables {
		for _, e := range t.Entries {
			k := e.Key()
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Search queries the catalog. No matches is an empty result, not an error.
func (c *Catalog) Search(query string, opts SearchOptions) []SearchResult {
	mode := opts.Mode
	if mode == "" {
		mode = MatchPrefix
	}

	if mode == MatchExact && c.Filter != nil {
		if q := normalizeQuery(query); q != "" && !c.Filter.Test(q) {
			return nil
		}
	}

	var tables []*Table
	switch {
	case opts.Section != "":
		if t := c.Table(opts.Section); t != nil {
			tables = []*Table{t}
		}
	case c.Table(SectionAll) != nil:
		tables = []*Table{c.Table(SectionAll)}
	default:
		tables = c.Tables
	}

	type seenKey struct{ name, url string }
	seen := make(map[seenKey]bool)

	var results []SearchResult
	for _, t := range tables {
		for _, e := range t.Search(query, mode) {
			if len(tables) > 1 {
				k := seenKey{name: e.Name}
				if len(e.References) > 0 {
					k.url = e.References[0].URL
				}
				if seen[k] {
					continue
				}
				seen[k] = true
			}
			results = append(results, SearchResult{Section: t.Section, Entry: e})
			if opts.Limit > 0 && len(results) >= opts.Limit {
				return results
			}
		}
	}
	return results
}
