package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/crawl"
	"github.com/fwojciec/symdex/sqlite"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	source := c.Source
	if !crawl.IsRemote(source) {
		abs, err := filepath.Abs(source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		source = abs
	}

	existing, err := deps.Indexes.FindIndexes(deps.Ctx, symdex.IndexFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}
	if len(existing) > 0 && !c.Force {
		fmt.Fprintf(deps.Stderr, "error: index %q already exists. Use --force to replace it.\n", c.Name)
		return symdex.Errorf(symdex.ECONFLICT, "index %q already exists", c.Name)
	}

	catalog, summary, err := c.load(deps, source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error loading %s: %s\n", source, symdex.ErrorMessage(err))
		return err
	}
	hash := sqlite.HashTables(catalog.Tables)

	if len(existing) > 0 {
		index := existing[0]
		if index.ContentHash == hash && index.SourceURL == source {
			fmt.Fprintf(deps.Stdout, "Index %q unchanged (%s)\n", c.Name, index.ID)
			fmt.Fprintf(deps.Stdout, "  %s\n", summary)
			return nil
		}
		if err := deps.Tables.ReplaceTables(deps.Ctx, index.ID, catalog.Tables); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
			return err
		}
		if _, err := deps.Indexes.UpdateIndex(deps.Ctx, index.ID, symdex.IndexUpdate{
			SourceURL:   &source,
			ContentHash: &hash,
		}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Updated index %q (%s)\n", c.Name, index.ID)
		fmt.Fprintf(deps.Stdout, "  %s\n", summary)
		return nil
	}

	index := &symdex.Index{
		Name:        c.Name,
		SourceURL:   source,
		ContentHash: hash,
	}
	if err := deps.Indexes.CreateIndex(deps.Ctx, index); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}
	if err := deps.Tables.ReplaceTables(deps.Ctx, index.ID, catalog.Tables); err != nil {
		_ = deps.Indexes.DeleteIndex(deps.Ctx, index.ID)
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added index %q (%s)\n", c.Name, index.ID)
	fmt.Fprintf(deps.Stdout, "  %s\n", summary)
	return nil
}

// load reads the catalog at source and returns it with a one-line summary.
func (c *AddCmd) load(deps *Dependencies, source string) (*symdex.Catalog, string, error) {
	if c.XML {
		if deps.XMLSource == nil {
			return nil, "", symdex.Errorf(symdex.EINTERNAL, "no XML source configured")
		}
		catalog, err := deps.XMLSource.Load(deps.Ctx, source)
		if err != nil {
			return nil, "", err
		}
		return catalog, summarize(catalog), nil
	}

	if deps.Loader == nil {
		return nil, "", symdex.Errorf(symdex.EINTERNAL, "no loader configured")
	}
	if c.Concurrency > 0 {
		deps.Loader.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d index files\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  %s\n", crawl.FormatProgress(event, maxProgressURLLen))
		}
	}

	result, err := deps.Loader.LoadWithProgress(deps.Ctx, source, progress)
	if err != nil {
		return nil, "", err
	}
	return result.Catalog, crawl.FormatResult(result), nil
}

// maxProgressURLLen bounds URLs in progress lines.
const maxProgressURLLen = 80

// summarize counts the sections, entries and references of a catalog.
func summarize(c *symdex.Catalog) string {
	var entries, refs int
	for _, t := range c.Tables {
		entries += len(t.Entries)
		refs += t.ReferenceCount()
	}
	return fmt.Sprintf("%d sections, %d entries, %d references", len(c.Tables), entries, refs)
}
