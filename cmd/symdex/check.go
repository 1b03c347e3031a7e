package main

import (
	"fmt"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/sqlite"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	index, catalog, err := loadCatalog(deps, c.Name)
	if err != nil {
		return err
	}

	var failed error
	for _, t := range catalog.Tables {
		status := "ok"
		if err := t.Validate(); err != nil {
			status = symdex.ErrorMessage(err)
			if failed == nil {
				failed = err
			}
		}
		fmt.Fprintf(deps.Stdout, "%-12s %6d entries %6d references  %s\n",
			t.Section, len(t.Entries), t.ReferenceCount(), status)
	}
	if failed != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(failed))
		return failed
	}

	if hash := sqlite.HashTables(catalog.Tables); index.ContentHash != "" && hash != index.ContentHash {
		fmt.Fprintf(deps.Stderr, "error: content hash mismatch: stored %s, computed %s\n", index.ContentHash, hash)
		return symdex.Errorf(symdex.ECONFLICT, "content hash mismatch for index %q", c.Name)
	}

	fmt.Fprintf(deps.Stdout, "Index %q is valid (%s)\n", c.Name, summarize(catalog))
	return nil
}
