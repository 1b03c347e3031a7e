package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/crawl"
	"github.com/fwojciec/symdex/doxygen"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	_, catalog, err := loadCatalog(deps, c.Name)
	if err != nil {
		return err
	}

	files, err := doxygen.EncodeSite(catalog.Tables)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	store := deps.NewSiteStore(c.Dir)
	var bytes int
	for _, f := range files {
		if err := store.Save(deps.Ctx, f.Name, f.Data); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
			return err
		}
		bytes += len(f.Data)
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d files (%s) to %s\n",
		len(files), crawl.FormatBytes(bytes), filepath.Join(c.Dir, crawl.SearchDir))
	return nil
}
