package crawl_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/very/long/path/to/documentation"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../to/documentation", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns URL unchanged when exactly max length", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com"
		assert.Equal(t, url, crawl.TruncateURL(url, len(url)))
	})

	t.Run("returns empty string when maxLen is zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
	})

	t.Run("returns empty string when maxLen is negative", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		// When maxLen < 4, we can't fit "..." prefix, so return URL prefix
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
		assert.Equal(t, "ht", crawl.TruncateURL("https://example.com", 2))
		assert.Equal(t, "h", crawl.TruncateURL("https://example.com", 1))
	})

	t.Run("handles short URL with small maxLen", func(t *testing.T) {
		t.Parallel()
		// URL shorter than maxLen should return unchanged
		assert.Equal(t, "ab", crawl.TruncateURL("ab", 3))
		assert.Equal(t, "a", crawl.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()

	t.Run("formats completed events with a counter", func(t *testing.T) {
		t.Parallel()
		got := crawl.FormatProgress(crawl.ProgressEvent{
			Type:      crawl.ProgressCompleted,
			Completed: 2,
			Total:     5,
			URL:       "https://example.com/search/all_1.js",
		}, 80)
		assert.Equal(t, "[2/5] https://example.com/search/all_1.js", got)
	})

	t.Run("formats failed events with the error", func(t *testing.T) {
		t.Parallel()
		got := crawl.FormatProgress(crawl.ProgressEvent{
			Type:  crawl.ProgressFailed,
			URL:   "https://example.com/search/all_1.js",
			Error: errors.New("HTTP 500"),
		}, 20)
		assert.Equal(t, "failed ...m/search/all_1.js: HTTP 500", got)
	})

	t.Run("renders nothing for start and finish", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.FormatProgress(crawl.ProgressEvent{Type: crawl.ProgressStarted, Total: 3}, 80))
		assert.Empty(t, crawl.FormatProgress(crawl.ProgressEvent{Type: crawl.ProgressFinished}, 80))
	})
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	catalog := symdex.NewCatalog(
		&symdex.Table{Section: "all", Entries: []*symdex.Entry{
			{Name: "t", References: []*symdex.Reference{{URL: "../a.html#x"}, {URL: "../b.html#y"}}},
			{Name: "u", References: []*symdex.Reference{{URL: "../a.html#z"}}},
		}},
		&symdex.Table{Section: "functions", Entries: []*symdex.Entry{
			{Name: "t", References: []*symdex.Reference{{URL: "../a.html#x"}}},
		}},
	)

	got := crawl.FormatResult(&crawl.Result{Catalog: catalog, Files: 4, Bytes: 1536})

	assert.Equal(t, "2 sections, 3 entries, 4 references (4 files, 1.5 KB)", got)
}
