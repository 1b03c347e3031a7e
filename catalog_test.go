package symdex_test

import (
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keySet is a KeyFilter without false positives.
type keySet map[string]bool

func (k keySet) Test(key string) bool { return k[key] }

func entry(name, url string) *symdex.Entry {
	return &symdex.Entry{Name: name, References: []*symdex.Reference{{URL: url, Local: true}}}
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()

	all := &symdex.Table{Section: symdex.SectionAll, Entries: []*symdex.Entry{
		entry("Application", "../classApplication.html"),
		entry("apply", "../model_8cc.html#a1"),
		entry("toIndex", "../namespacesymmetri.html#a2"),
	}}
	classes := &symdex.Table{Section: symdex.SectionClasses, Entries: []*symdex.Entry{
		entry("Application", "../classApplication.html"),
	}}
	functions := &symdex.Table{Section: symdex.SectionFunctions, Entries: []*symdex.Entry{
		entry("apply", "../model_8cc.html#a1"),
		entry("toIndex", "../namespacesymmetri.html#a2"),
	}}

	t.Run("searches the all section by default", func(t *testing.T) {
		t.Parallel()

		c := symdex.NewCatalog(classes, all, functions)

		results := c.Search("app", symdex.SearchOptions{})

		require.Len(t, results, 2)
		assert.Equal(t, symdex.SectionAll, results[0].Section)
		assert.Equal(t, "Application", results[0].Entry.Name)
		assert.Equal(t, "apply", results[1].Entry.Name)
	})

	t.Run("searches every section without duplicates when all is absent", func(t *testing.T) {
		t.Parallel()

		dup := &symdex.Table{Section: "related", Entries: []*symdex.Entry{entry("apply", "../model_8cc.html#a1")}}
		c := symdex.NewCatalog(classes, functions, dup)

		results := c.Search("app", symdex.SearchOptions{})

		require.Len(t, results, 2)
		assert.Equal(t, symdex.SectionClasses, results[0].Section)
		assert.Equal(t, symdex.SectionFunctions, results[1].Section)
	})

	t.Run("restricts to one section", func(t *testing.T) {
		t.Parallel()

		c := symdex.NewCatalog(all, classes, functions)

		results := c.Search("app", symdex.SearchOptions{Section: symdex.SectionFunctions})

		require.Len(t, results, 1)
		assert.Equal(t, "apply", results[0].Entry.Name)
	})

	t.Run("unknown section is an empty result", func(t *testing.T) {
		t.Parallel()

		c := symdex.NewCatalog(all)

		assert.Empty(t, c.Search("app", symdex.SearchOptions{Section: "pages"}))
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		c := symdex.NewCatalog(all)

		results := c.Search("a", symdex.SearchOptions{Limit: 1})

		require.Len(t, results, 1)
		assert.Equal(t, "Application", results[0].Entry.Name)
	})

	t.Run("exact lookup consults filter", func(t *testing.T) {
		t.Parallel()

		c := symdex.NewCatalog(all)
		c.Filter = keySet{"application": true}

		assert.Len(t, c.Search("Application", symdex.SearchOptions{Mode: symdex.MatchExact}), 1)
		assert.Empty(t, c.Search("toIndex", symdex.SearchOptions{Mode: symdex.MatchExact}))
		assert.Len(t, c.Search("to", symdex.SearchOptions{}), 1, "filter only applies to exact lookups")
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		t.Parallel()

		c := symdex.NewCatalog(all, classes, functions)

		assert.Empty(t, c.Search("", symdex.SearchOptions{}))
	})
}

func TestCatalog_Keys(t *testing.T) {
	t.Parallel()

	c := symdex.NewCatalog(
		&symdex.Table{Section: "all", Entries: []*symdex.Entry{entry("T", "a.html#1"), entry("t0", "b.html#2")}},
		&symdex.Table{Section: "functions", Entries: []*symdex.Entry{entry("t", "a.html#1")}},
	)

	assert.Equal(t, []string{"t", "t0"}, c.Keys())
	assert.Equal(t, []string{"all", "functions"}, c.Sections())
	assert.NotNil(t, c.Table("functions"))
	assert.Nil(t, c.Table("pages"))
}

func TestCatalog_Validate(t *testing.T) {
	t.Parallel()

	c := symdex.NewCatalog(&symdex.Table{Section: "all", Entries: []*symdex.Entry{{Name: "x"}}})

	err := c.Validate()

	assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(err))
}
