package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/symdex"
	main "github.com/fwojciec/symdex/cmd/symdex"
	"github.com/fwojciec/symdex/doxygen"
	"github.com/fwojciec/symdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"add", "list", "delete", "search", "show", "check", "export"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesSearchFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"search", "symmetri", "tog", "--mode", "substring", "-s", "functions", "-n", "5", "-o", "yaml"})

	require.NoError(t, err)
	assert.Equal(t, "symmetri", cli.Search.Name)
	assert.Equal(t, "tog", cli.Search.Query)
	assert.Equal(t, "substring", cli.Search.Mode)
	assert.Equal(t, "functions", cli.Search.Section)
	assert.Equal(t, 5, cli.Search.Limit)
	assert.Equal(t, "yaml", cli.Search.Format)
}

func TestCLI_AddDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"add", "symmetri", "./html"})

	require.NoError(t, err)
	assert.Equal(t, 4, cli.Add.Concurrency)
	assert.False(t, cli.Add.XML)
	assert.False(t, cli.Add.Force)
}

func TestCLI_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"search", "symmetri", "t", "--format", "xml"})

	require.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
	assert.NoFileExists(t, m.DBPath, "help should not create the database")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "symdex --help")
}

// TestMain_Run_RoundTrip loads a local search directory, queries it and
// exports it again through the real storage and filesystem layers.
func TestMain_Run_RoundTrip(t *testing.T) {
	t.Parallel()

	htmlDir := filepath.Join(t.TempDir(), "html")
	require.NoError(t, os.MkdirAll(filepath.Join(htmlDir, "search"), 0755))
	files, err := doxygen.EncodeSite(testTables())
	require.NoError(t, err)
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(htmlDir, "search", f.Name), f.Data, 0644))
	}

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.LogLevel = ""
	run := func(args ...string) string {
		t.Helper()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), args, stdout, stderr)
		require.NoError(t, err, "symdex %v: %s", args, stderr.String())
		return stdout.String()
	}

	out := run("add", "symmetri", htmlDir)
	assert.Contains(t, out, `Added index "symmetri"`)
	assert.Contains(t, out, "2 sections, 4 entries, 6 references")

	out = run("add", "symmetri", htmlDir, "--force")
	assert.Contains(t, out, "unchanged")

	out = run("search", "symmetri", "togglePause", "--mode", "exact")
	assert.Equal(t,
		"togglePause [all]\n  togglePause  Symmetri::Application  ../classSymmetri_1_1Application.html#a7e8\n",
		out)

	out = run("check", "symmetri")
	assert.Contains(t, out, "is valid")

	outDir := t.TempDir()
	run("export", "symmetri", outDir)
	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(outDir, "search", f.Name))
		require.NoError(t, err)
		assert.Equal(t, string(f.Data), string(got), "regenerated %s", f.Name)
	}

	out = run("delete", "symmetri", "--force")
	assert.Contains(t, out, "Deleted")
	out = run("list")
	assert.Contains(t, out, "No indexes found")
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("discards output without a level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := main.NewLogger("", &buf)
		logger.Error("fetch failed")

		assert.Empty(t, buf.String())
	})

	t.Run("honours the named level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := main.NewLogger("warn", &buf)
		logger.Info("load index")
		logger.Warn("retrying fetch")

		assert.NotContains(t, buf.String(), "load index")
		assert.Contains(t, buf.String(), "retrying fetch")
	})

	t.Run("falls back to debug for unknown levels", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := main.NewLogger("1", &buf)
		logger.Debug("find tables")

		assert.Contains(t, buf.String(), "find tables")
	})
}

func TestSourceFetcher_Fetch(t *testing.T) {
	t.Parallel()

	var remote, local []string
	f := &main.SourceFetcher{
		Remote: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				remote = append(remote, url)
				return "remote", nil
			},
			CloseFn: func() error { return nil },
		},
		Local: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				local = append(local, url)
				return "", symdex.Errorf(symdex.ENOTFOUND, "missing")
			},
			CloseFn: func() error { return nil },
		},
	}

	got, err := f.Fetch(context.Background(), "https://docs.example.com/search/all_0.js")
	require.NoError(t, err)
	assert.Equal(t, "remote", got)

	_, err = f.Fetch(context.Background(), "/docs/html/search/all_0.js")
	assert.Equal(t, symdex.ENOTFOUND, symdex.ErrorCode(err))

	assert.Equal(t, []string{"https://docs.example.com/search/all_0.js"}, remote)
	assert.Equal(t, []string{"/docs/html/search/all_0.js"}, local)
	assert.NoError(t, f.Close())
}
