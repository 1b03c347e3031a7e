package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Indexes   symdex.IndexService
	Tables    symdex.TableService
	Loader    *crawl.Loader
	XMLSource symdex.Source
	Fetcher   symdex.Fetcher
	Detector  symdex.GeneratorDetector
	Extractor symdex.MemberExtractor
	Converter symdex.Converter

	// Factories for writers bound to a command's output directory.
	NewSiteStore    func(dir string) symdex.SiteStore
	NewMemberWriter func(dir string) symdex.MemberWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Add    AddCmd    `cmd:"" help:"Load and store the search index of a documentation site"`
	List   ListCmd   `cmd:"" help:"List all stored indexes"`
	Delete DeleteCmd `cmd:"" help:"Delete an index and its tables"`
	Search SearchCmd `cmd:"" help:"Search an index for symbols"`
	Show   ShowCmd   `cmd:"" help:"Show the documentation of a symbol as Markdown"`
	Check  CheckCmd  `cmd:"" help:"Validate the stored tables of an index"`
	Export ExportCmd `cmd:"" help:"Regenerate the search directory of an index"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name        string `arg:"" help:"Index name"`
	Source      string `arg:"" help:"Documentation URL or HTML output directory"`
	XML         bool   `short:"x" name:"xml" help:"Read Doxygen XML output (index.xml) instead of search/*.js"`
	Force       bool   `short:"f" help:"Replace an existing index"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Index name"`
	Force bool   `help:"Confirm deletion"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Name    string `arg:"" help:"Index name"`
	Query   string `arg:"" help:"Symbol or symbol prefix"`
	Mode    string `short:"m" default:"prefix" enum:"prefix,substring,exact" help:"Match mode (prefix, substring, exact)"`
	Section string `short:"s" help:"Restrict the search to one section (e.g. functions)"`
	Limit   int    `short:"n" default:"0" help:"Maximum number of results (0 for no limit)"`
	Format  string `short:"o" default:"text" enum:"text,json,yaml" help:"Output format (text, json, yaml)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name    string `arg:"" help:"Index name"`
	Token   string `arg:"" help:"Symbol name"`
	Section string `short:"s" help:"Restrict the lookup to one section"`
	Base    string `help:"HTML documentation location when it differs from the index source"`
	Out     string `help:"Write Markdown files to this directory instead of stdout"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Name string `arg:"" help:"Index name"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name string `arg:"" help:"Index name"`
	Dir  string `arg:"" help:"Output directory; files are written to <dir>/search"`
}

// findIndex returns the index named name, reporting failures on stderr.
func findIndex(deps *Dependencies, name string) (*symdex.Index, error) {
	indexes, err := deps.Indexes.FindIndexes(deps.Ctx, symdex.IndexFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return nil, err
	}
	if len(indexes) == 0 {
		fmt.Fprintf(deps.Stderr, "error: index %q not found. Use 'symdex list' to see available indexes.\n", name)
		return nil, symdex.Errorf(symdex.ENOTFOUND, "index %q not found", name)
	}
	return indexes[0], nil
}

// loadCatalog returns the stored catalog of the index named name.
func loadCatalog(deps *Dependencies, name string) (*symdex.Index, *symdex.Catalog, error) {
	index, err := findIndex(deps, name)
	if err != nil {
		return nil, nil, err
	}
	tables, err := deps.Tables.FindTables(deps.Ctx, index.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return nil, nil, err
	}
	if len(tables) == 0 {
		fmt.Fprintf(deps.Stderr, "error: index %q has no tables. To reload it, run 'symdex add %s %s --force'.\n", name, name, index.SourceURL)
		return nil, nil, symdex.Errorf(symdex.ENOTFOUND, "index %q has no tables", name)
	}
	return index, symdex.NewCatalog(tables...), nil
}
