package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/symdex"
	main "github.com/fwojciec/symdex/cmd/symdex"
	"github.com/fwojciec/symdex/doxygen"
	"github.com/fwojciec/symdex/mock"
	"github.com/stretchr/testify/require"
)

// testTables returns a small catalog modelled on a real Doxygen index.
func testTables() []*symdex.Table {
	return []*symdex.Table{
		{
			Section: symdex.SectionAll,
			Label:   "All",
			Entries: []*symdex.Entry{
				{Name: "t", References: []*symdex.Reference{
					symdex.NewReference("t", "../test__bugs_8cc.html#a3c4", true, "t():\u00a0test_bugs.cc"),
					symdex.NewReference("t", "../test__net_8cc.html#a5d6", true, "t():\u00a0test_net.cc"),
					symdex.NewReference("t", "../test__state_8cc.html#a7f8", true, "t():\u00a0test_state.cc"),
				}},
				{Name: "togglePause", References: []*symdex.Reference{
					symdex.NewReference("togglePause", "../classSymmetri_1_1Application.html#a7e8", true, "Symmetri::Application"),
				}},
				{Name: "tryFire", References: []*symdex.Reference{
					symdex.NewReference("tryFire", "../classSymmetri_1_1Application.html#a9f0", true, "Symmetri::Application"),
				}},
			},
		},
		{
			Section: symdex.SectionFunctions,
			Label:   "Functions",
			Entries: []*symdex.Entry{
				{Name: "togglePause", References: []*symdex.Reference{
					symdex.NewReference("togglePause", "../classSymmetri_1_1Application.html#a7e8", true, "Symmetri::Application"),
				}},
			},
		},
	}
}

// siteFiles renders tables as the search directory of the site at base,
// keyed by file location.
func siteFiles(t *testing.T, base string, tables []*symdex.Table) map[string]string {
	t.Helper()

	files, err := doxygen.EncodeSite(tables)
	require.NoError(t, err)

	site := make(map[string]string, len(files))
	for _, f := range files {
		site[filepath.Join(base, "search", f.Name)] = string(f.Data)
	}
	return site
}

// siteFetcher serves a fixed set of files keyed by location.
func siteFetcher(files map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if content, ok := files[url]; ok {
				return content, nil
			}
			return "", symdex.Errorf(symdex.ENOTFOUND, "not found: %s", url)
		},
		CloseFn: func() error { return nil },
	}
}

// storedIndex returns index and table mocks holding one index named name.
func storedIndex(name string, tables []*symdex.Table) (*mock.IndexService, *mock.TableService) {
	index := &symdex.Index{ID: "idx-1", Name: name, SourceURL: "/docs/html"}
	indexes := &mock.IndexService{
		FindIndexesFn: func(_ context.Context, filter symdex.IndexFilter) ([]*symdex.Index, error) {
			if filter.Name != nil && *filter.Name == name {
				return []*symdex.Index{index}, nil
			}
			return []*symdex.Index{}, nil
		},
	}
	tableSvc := &mock.TableService{
		FindTablesFn: func(_ context.Context, indexID string) ([]*symdex.Table, error) {
			if indexID == index.ID {
				return tables, nil
			}
			return nil, nil
		},
	}
	return indexes, tableSvc
}

// testDeps returns dependencies writing to fresh buffers.
func testDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}
