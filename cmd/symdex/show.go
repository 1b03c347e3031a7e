package main

import (
	"fmt"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/crawl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	index, catalog, err := loadCatalog(deps, c.Name)
	if err != nil {
		return err
	}

	results := catalog.Search(c.Token, symdex.SearchOptions{
		Section: c.Section,
		Mode:    symdex.MatchExact,
	})
	if len(results) == 0 {
		fmt.Fprintf(deps.Stderr, "error: symbol %q not found in index %q. Use 'symdex search %s %s' to find similar symbols.\n", c.Token, c.Name, c.Name, c.Token)
		return symdex.Errorf(symdex.ENOTFOUND, "symbol %q not found", c.Token)
	}

	base := c.Base
	if base == "" {
		base = index.SourceURL
	}

	var writer symdex.MemberWriter
	if c.Out != "" {
		writer = deps.NewMemberWriter(c.Out)
	}

	pages := make(map[string]string)
	var shown int
	for _, r := range results {
		for _, ref := range r.Entry.References {
			if !ref.Local {
				fmt.Fprintf(deps.Stderr, "  skip %s: external reference\n", ref.URL)
				continue
			}

			page, err := c.render(deps, base, r.Entry.Name, ref, pages)
			if symdex.ErrorCode(err) == symdex.ENOTFOUND {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", ref.URL, symdex.ErrorMessage(err))
				continue
			} else if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", ref.URL, symdex.ErrorMessage(err))
				return err
			}

			if writer != nil {
				if err := writer.WriteMember(deps.Ctx, page); err != nil {
					fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
					return err
				}
				fmt.Fprintf(deps.Stdout, "Wrote %s\n", page.URL)
			} else {
				if shown > 0 {
					fmt.Fprintln(deps.Stdout)
				}
				fmt.Fprintf(deps.Stdout, "## %s\n\n", page.Title)
				if page.Document != "" {
					fmt.Fprintf(deps.Stdout, "%s  %s\n\n", page.Document, page.URL)
				} else {
					fmt.Fprintf(deps.Stdout, "%s\n\n", page.URL)
				}
				fmt.Fprintln(deps.Stdout, page.Content)
			}
			shown++
		}
	}

	if shown == 0 {
		fmt.Fprintf(deps.Stderr, "error: no documentation found for %q\n", c.Token)
		return symdex.Errorf(symdex.ENOTFOUND, "no documentation found for %q", c.Token)
	}
	return nil
}

// render fetches the page a reference points at and converts the member
// to Markdown. Fetched pages are cached in pages by location.
func (c *ShowCmd) render(deps *Dependencies, base, token string, ref *symdex.Reference, pages map[string]string) (*symdex.MemberPage, error) {
	location, err := crawl.PageURL(base, ref.Path())
	if err != nil {
		return nil, err
	}

	html, ok := pages[location]
	if !ok {
		html, err = deps.Fetcher.Fetch(deps.Ctx, location)
		if err != nil {
			return nil, err
		}
		pages[location] = html
	}

	member, err := deps.Extractor.Extract(html, ref.Fragment())
	if err != nil {
		return nil, err
	}

	content, err := deps.Converter.Convert(member.HTML)
	if err != nil {
		return nil, err
	}

	title := member.Title
	if title == "" {
		title = ref.Label
	}

	return &symdex.MemberPage{
		Token:     token,
		URL:       ref.URL,
		Title:     title,
		Document:  ref.Document,
		Generator: deps.Detector.Detect(html),
		Content:   content,
	}, nil
}
