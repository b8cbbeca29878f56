// Package security provides size limits for untrusted input.
package security

import (
	"errors"
	"fmt"
	"io"
)

// ErrSizeLimit is returned when a reader produces more bytes than allowed.
var ErrSizeLimit = errors.New("size limit exceeded")

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitedReader it reports ErrSizeLimit instead of a silent EOF,
// which prevents decompression bombs from being truncated into valid-looking data.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.Remaining <= 0 {
		// A source that ends exactly at the limit is fine.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n > 0 {
			return 0, ErrSizeLimit
		}
		if err == nil {
			return 0, nil
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// ReadAll reads r to EOF, failing with ErrSizeLimit once more than maxBytes
// have been produced. A maxBytes of zero or less disables the limit.
func ReadAll(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(NewLimitedReader(r, maxBytes))
	if err != nil {
		if errors.Is(err, ErrSizeLimit) {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrSizeLimit, maxBytes)
		}
		return nil, err
	}
	return data, nil
}
