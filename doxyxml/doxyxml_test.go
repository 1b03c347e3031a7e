package doxyxml_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/doxygen"
	"github.com/fwojciec/symdex/doxyxml"
	"github.com/fwojciec/symdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Source implements symdex.Source at compile time.
var _ symdex.Source = (*doxyxml.Source)(nil)

func decodeTestdata(t *testing.T) *symdex.Catalog {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "index.xml"))
	require.NoError(t, err)
	defer f.Close()

	catalog, err := doxyxml.Decode(f)
	require.NoError(t, err)
	return catalog
}

func names(t *symdex.Table) []string {
	var out []string
	for _, e := range t.Entries {
		out = append(out, e.Name)
	}
	return out
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("emits non-empty sections in generator order", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)

		assert.Equal(t, []string{
			"all", "classes", "namespaces", "files", "functions", "variables",
			"typedefs", "enums", "enumvalues", "defines", "pages",
		}, catalog.Sections())
		assert.Equal(t, "Functions", catalog.Table("functions").Label)
	})

	t.Run("sorts entries by search key", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)

		assert.Equal(t, []string{"t", "testNet", "togglePause", "toIndex", "tryRunTransition"}, names(catalog.Table("functions")))
		assert.Equal(t, []string{"Application"}, names(catalog.Table("classes")))
		assert.Equal(t, []string{"Completed", "Started"}, names(catalog.Table("enumvalues")))
	})

	t.Run("assigns search ids by position", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)
		fns := catalog.Table("functions")

		assert.Equal(t, "t_0", fns.Entries[0].ID)
		assert.Equal(t, "togglepause_2", fns.Entries[2].ID)
	})

	t.Run("keeps file member references in index order", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)
		e := catalog.Table("functions").Lookup("t")
		require.NotNil(t, e)
		require.Len(t, e.References, 3)

		assert.Equal(t, "../test__bugs_8cc.html#abbf27440ac2e6a35bf46ba7422965a75", e.References[0].URL)
		assert.Equal(t, "t():\u00a0test_bugs.cc", e.References[0].Scope)
		assert.Equal(t, "t()", e.References[0].Label)
		assert.Equal(t, "test_bugs.cc", e.References[0].Document)
		assert.Equal(t, "test_external_input.cc", e.References[1].Document)
		assert.Equal(t, "test_priorities.cc", e.References[2].Document)
	})

	t.Run("scopes class members by their compound", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)
		e := catalog.Table("functions").Lookup("togglePause")
		require.NotNil(t, e)
		require.Len(t, e.References, 1)

		ref := e.References[0]
		assert.Equal(t, "../classsymmetri_1_1Application.html#a67a947ac003e67dfec42e08774e46aa0", ref.URL)
		assert.Equal(t, "togglePause", ref.Label)
		assert.Equal(t, "symmetri::Application", ref.Document)
	})

	t.Run("lists members documented in several compounds once", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)
		e := catalog.Table("functions").Lookup("toIndex")
		require.NotNil(t, e)

		require.Len(t, e.References, 1)
		assert.Equal(t, "symmetri", e.References[0].Document)
	})

	t.Run("references compounds as pages", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)
		e := catalog.Table("classes").Lookup("Application")
		require.NotNil(t, e)
		require.Len(t, e.References, 1)

		assert.Equal(t, "../classsymmetri_1_1Application.html", e.References[0].URL)
		assert.Empty(t, e.References[0].Fragment())
		assert.Equal(t, "symmetri", e.References[0].Document)
	})

	t.Run("keeps pages out of the all section", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)

		assert.NotNil(t, catalog.Table("pages").Lookup("index"))
		assert.Nil(t, catalog.Table("all").Lookup("index"))
		assert.Nil(t, catalog.Table("all").Lookup("src"))
	})

	t.Run("produces tables the site encoder accepts", func(t *testing.T) {
		t.Parallel()

		catalog := decodeTestdata(t)

		files, err := doxygen.EncodeSite(catalog.Tables)
		require.NoError(t, err)
		require.NotEmpty(t, files)
		assert.Equal(t, doxygen.ManifestFile, files[0].Name)

		again, err := doxygen.EncodeSite(decodeTestdata(t).Tables)
		require.NoError(t, err)
		require.Len(t, again, len(files))
		for i := range files {
			assert.True(t, bytes.Equal(files[i].Data, again[i].Data), files[i].Name)
		}
	})

	t.Run("rejects documents that are not a Doxygen index", func(t *testing.T) {
		t.Parallel()

		_, err := doxyxml.Decode(strings.NewReader(`<?xml version="1.0"?><urlset></urlset>`))

		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(err))
	})

	t.Run("rejects malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := doxyxml.Decode(strings.NewReader(`<doxygenindex><compound`))

		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(err))
	})
}

func TestSource_Load(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "index.xml"))
	require.NoError(t, err)

	var fetched string
	s := doxyxml.NewSource(&mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			fetched = url
			return string(data), nil
		},
	})

	catalog, err := s.Load(context.Background(), "https://docs.example.com/xml/")

	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/xml/index.xml", fetched)
	assert.NotNil(t, catalog.Table("all").Lookup("togglePause"))
}

func TestIndexURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		want string
	}{
		{name: "remote directory", base: "https://docs.example.com/xml", want: "https://docs.example.com/xml/index.xml"},
		{name: "remote index", base: "https://docs.example.com/xml/index.xml", want: "https://docs.example.com/xml/index.xml"},
		{name: "local directory", base: filepath.Join("build", "xml"), want: filepath.Join("build", "xml", "index.xml")},
		{name: "local index", base: filepath.Join("build", "xml", "index.xml"), want: filepath.Join("build", "xml", "index.xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := doxyxml.IndexURL(tt.base)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
