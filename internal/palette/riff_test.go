package palette

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/jmylchreest/palettemap/internal/colour"
)

func TestRIFFRoundTrip(t *testing.T) {
	p, err := New([]colour.Color{
		colour.RGB(255, 0, 0),
		colour.RGB(0, 128, 255),
		{R: 10, G: 20, B: 30, A: 40},
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := p.WriteRIFF(&buf)
	if err != nil {
		t.Fatalf("WriteRIFF() failed: %v", err)
	}
	if n != int64(buf.Len()) || n != 24+3*4 {
		t.Errorf("WriteRIFF() = %d bytes, buffer holds %d", n, buf.Len())
	}

	got, err := ReadRIFF(&buf)
	if err != nil {
		t.Fatalf("ReadRIFF() failed: %v", err)
	}

	want := []colour.Color{
		colour.RGB(255, 0, 0),
		colour.RGB(0, 128, 255),
		colour.RGB(10, 20, 30), // PAL has no alpha.
	}
	if got.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", got.Len(), len(want))
	}
	for i, c := range want {
		if got.At(i) != c {
			t.Errorf("At(%d) = %v, want %v", i, got.At(i), c)
		}
	}
}

// riffPal builds a RIFF PAL file out of raw chunk bytes.
func riffPal(chunks ...[]byte) []byte {
	var body []byte
	for _, c := range chunks {
		body = append(body, c...)
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(4+len(body)))
	out = append(out, "PAL "...)
	return append(out, body...)
}

func chunk(id string, data []byte) []byte {
	out := []byte(id)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, data...)
	if len(data)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func palData(version uint16, colors ...[3]byte) []byte {
	out := binary.LittleEndian.AppendUint16(nil, version)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(colors)))
	for _, c := range colors {
		out = append(out, c[0], c[1], c[2], 0)
	}
	return out
}

func TestReadRIFFSkipsUnknownChunks(t *testing.T) {
	data := riffPal(
		chunk("INFO", []byte("abc")),
		chunk("data", palData(palVersion, [3]byte{1, 2, 3})),
		chunk("data", palData(palVersion, [3]byte{4, 5, 6}, [3]byte{7, 8, 9})),
	)

	p, err := ReadRIFF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRIFF() failed: %v", err)
	}
	if p.Len() != 3 || p.At(2) != colour.RGB(7, 8, 9) {
		t.Errorf("ReadRIFF() = %v", p)
	}
}

func TestReadRIFFErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "not riff", data: []byte("GIF89a....")},
		{name: "wrong form", data: append([]byte("RIFF\x04\x00\x00\x00"), "WAVE"...)},
		{name: "bad version", data: riffPal(chunk("data", palData(0x0100, [3]byte{1, 2, 3})))},
		{name: "no colours", data: riffPal(chunk("data", palData(palVersion)))},
		{name: "truncated entries", data: riffPal(chunk("data", palData(palVersion, [3]byte{1, 2, 3})[:6]))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRIFF(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidPalette) {
				t.Errorf("ReadRIFF() error = %v, want ErrInvalidPalette", err)
			}
		})
	}
}
