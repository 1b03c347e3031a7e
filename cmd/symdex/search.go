package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/bloom"
	"gopkg.in/yaml.v3"
)

// Output formats of the search command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	mode, err := symdex.ParseMatchMode(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	_, catalog, err := loadCatalog(deps, c.Name)
	if err != nil {
		return err
	}
	catalog.Filter = bloom.NewCatalogFilter(catalog)

	results := catalog.Search(c.Query, symdex.SearchOptions{
		Section: c.Section,
		Mode:    mode,
		Limit:   c.Limit,
	})
	if results == nil {
		results = []symdex.SearchResult{}
	}

	switch c.Format {
	case FormatJSON:
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(deps.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		if len(results) == 0 {
			fmt.Fprintf(deps.Stdout, "No matches for %q.\n", c.Query)
			return nil
		}
		fmt.Fprintln(deps.Stdout, symdex.FormatResults(results))
		return nil
	}

	fmt.Fprintf(deps.Stderr, "error: unknown format %q\n", c.Format)
	return symdex.Errorf(symdex.EINVALID, "unknown format %q", c.Format)
}
