package crawl

import (
	"fmt"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatProgress renders a progress event as a single status line.
// Started and Finished events render as "".
func FormatProgress(event ProgressEvent, maxURLLen int) string {
	switch event.Type {
	case ProgressCompleted:
		return fmt.Sprintf("[%d/%d] %s", event.Completed, event.Total, TruncateURL(event.URL, maxURLLen))
	case ProgressFailed:
		return fmt.Sprintf("failed %s: %v", TruncateURL(event.URL, maxURLLen), event.Error)
	default:
		return ""
	}
}

// FormatResult summarizes a completed load.
func FormatResult(r *Result) string {
	var entries, refs int
	for _, t := range r.Catalog.Tables {
		entries += len(t.Entries)
		refs += t.ReferenceCount()
	}
	return fmt.Sprintf("%d sections, %d entries, %d references (%d files, %s)",
		len(r.Catalog.Tables), entries, refs, r.Files, FormatBytes(r.Bytes))
}
