package main

import (
	"fmt"

	"github.com/fwojciec/symdex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return symdex.Errorf(symdex.EINVALID, "use --force to confirm deletion")
	}

	index, err := findIndex(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Indexes.DeleteIndex(deps.Ctx, index.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted index %q\n", index.Name)
	return nil
}
