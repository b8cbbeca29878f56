package security

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadAll(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxBytes int64
		wantErr  bool
	}{
		{name: "under limit", input: "hello", maxBytes: 10},
		{name: "exactly at limit", input: "hello", maxBytes: 5},
		{name: "over limit", input: "hello world", maxBytes: 5, wantErr: true},
		{name: "no limit", input: strings.Repeat("x", 1000), maxBytes: 0},
		{name: "empty input", input: "", maxBytes: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAll(strings.NewReader(tt.input), tt.maxBytes)
			if tt.wantErr {
				if !errors.Is(err, ErrSizeLimit) {
					t.Errorf("ReadAll() error = %v, want ErrSizeLimit", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAll() failed: %v", err)
			}
			if string(got) != tt.input {
				t.Errorf("ReadAll() = %q, want %q", got, tt.input)
			}
		})
	}
}

// oneByteReader returns data one byte per call to exercise short reads.
type oneByteReader struct {
	data []byte
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestLimitedReaderShortReads(t *testing.T) {
	lr := NewLimitedReader(&oneByteReader{data: []byte("abcdef")}, 3)
	var buf bytes.Buffer
	_, err := io.Copy(&buf, lr)
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("io.Copy() error = %v, want ErrSizeLimit", err)
	}
	if buf.String() != "abc" {
		t.Errorf("read %q before the limit, want %q", buf.String(), "abc")
	}
}
