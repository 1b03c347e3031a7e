package main

import (
	"fmt"

	"github.com/fwojciec/symdex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	indexes, err := deps.Indexes.FindIndexes(deps.Ctx, symdex.IndexFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	if len(indexes) == 0 {
		fmt.Fprintln(deps.Stdout, "No indexes found. Use 'symdex add' to create one.")
		return nil
	}

	for _, i := range indexes {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", i.ID, i.Name, i.SourceURL)
	}

	return nil
}
