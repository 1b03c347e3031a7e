package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/symdex"
	main "github.com/fwojciec/symdex/cmd/symdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes index when --force is set", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		indexes, _ := storedIndex("symmetri", testTables())
		var deletedID string
		indexes.DeleteIndexFn = func(_ context.Context, id string) error {
			deletedID = id
			return nil
		}
		deps.Indexes = indexes

		err := (&main.DeleteCmd{Name: "symmetri", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "idx-1", deletedID)
		assert.Contains(t, stdout.String(), `Deleted index "symmetri"`)
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		deps.Indexes, _ = storedIndex("symmetri", testTables())

		err := (&main.DeleteCmd{Name: "symmetri"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("returns ENOTFOUND for unknown index", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		deps.Indexes, _ = storedIndex("symmetri", testTables())

		err := (&main.DeleteCmd{Name: "missing", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, symdex.ENOTFOUND, symdex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "symdex list")
	})
}
