package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/symdex"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches url, retrying once per delay after a failed
// attempt. Missing and malformed resources (ENOTFOUND, EINVALID) are not
// retried.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		data, err := fetch(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if attempt == len(delays) || !retryable(err) {
			break
		}
		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}

func retryable(err error) bool {
	switch symdex.ErrorCode(err) {
	case symdex.ENOTFOUND, symdex.EINVALID:
		return false
	}
	return true
}
