package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/symdex"
	main "github.com/fwojciec/symdex/cmd/symdex"
	"github.com/fwojciec/symdex/doxygen"
	"github.com/fwojciec/symdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves every generated file and commits", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		deps.Indexes, deps.Tables = storedIndex("symmetri", testTables())
		saved := make(map[string][]byte)
		var order []string
		var committed bool
		deps.NewSiteStore = func(dir string) symdex.SiteStore {
			assert.Equal(t, "/tmp/out", dir)
			return &mock.SiteStore{
				SaveFn: func(_ context.Context, name string, data []byte) error {
					saved[name] = data
					order = append(order, name)
					return nil
				},
				CommitFn: func() error {
					committed = true
					return nil
				},
			}
		}

		err := (&main.ExportCmd{Name: "symmetri", Dir: "/tmp/out"}).Run(deps)

		require.NoError(t, err)
		assert.True(t, committed)
		assert.Equal(t, []string{doxygen.ManifestFile, "all_0.js", "functions_0.js"}, order)
		want, err := doxygen.EncodeSite(testTables())
		require.NoError(t, err)
		for _, f := range want {
			assert.Equal(t, string(f.Data), string(saved[f.Name]), f.Name)
		}
		assert.Contains(t, stdout.String(), "Wrote 3 files")
		assert.Contains(t, stdout.String(), "/tmp/out/search")
	})

	t.Run("aborts when a save fails", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		deps.Indexes, deps.Tables = storedIndex("symmetri", testTables())
		var aborted, committed bool
		deps.NewSiteStore = func(_ string) symdex.SiteStore {
			return &mock.SiteStore{
				SaveFn: func(_ context.Context, _ string, _ []byte) error {
					return errors.New("no space left on device")
				},
				CommitFn: func() error {
					committed = true
					return nil
				},
				AbortFn: func() error {
					aborted = true
					return nil
				},
			}
		}

		err := (&main.ExportCmd{Name: "symmetri", Dir: "/tmp/out"}).Run(deps)

		require.Error(t, err)
		assert.True(t, aborted)
		assert.False(t, committed)
		assert.Contains(t, stderr.String(), "no space left on device")
	})

	t.Run("refuses to export invalid tables", func(t *testing.T) {
		t.Parallel()

		tables := testTables()
		tables[0].Entries[0].References[0].URL = "../test__bugs_8cc.html#"
		deps, _, _ := testDeps()
		deps.Indexes, deps.Tables = storedIndex("symmetri", tables)
		deps.NewSiteStore = func(_ string) symdex.SiteStore {
			t.Fatal("no files should be written")
			return nil
		}

		err := (&main.ExportCmd{Name: "symmetri", Dir: "/tmp/out"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(err))
	})
}
