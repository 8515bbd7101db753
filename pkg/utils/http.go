package utils

import (
	"errors"
	"fmt"
	"io"
)

// DefaultMaxBodyBytes caps upstream bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 2 << 20

// ErrBodyTooLarge is returned by ReadLimitedBody when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("response body too large")

// ReadLimitedBody reads at most limit bytes from r. A body longer than limit is
// an error rather than a silently truncated document.
func ReadLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}
