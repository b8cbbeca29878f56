package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/jmylchreest/palettemap/internal/colour"
	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadRIFF parses a Microsoft RIFF palette (.pal). Colours of every data
// chunk are concatenated in file order; PAL entries carry no alpha so all
// colours are opaque.
func ReadRIFF(r io.Reader) (*Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open RIFF stream: %w", ErrInvalidPalette, err)
	}
	if formType != palType {
		return nil, fmt.Errorf("%w: unsupported RIFF content type: %q", ErrInvalidPalette, string(formType[:]))
	}

	colors, err := readChunks(rd, "PAL")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPalette, err)
	}

	return New(colors)
}

func readChunks(r *riff.Reader, ident string) ([]colour.Color, error) {
	var colors []colour.Color

	for i := 0; ; i++ {
		id, size, data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return colors, nil
		}
		if err != nil {
			return nil, fmt.Errorf("could not read chunk %s#%d: %w", ident, i, err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return nil, fmt.Errorf("could not read list %s#%d: %w", ident, i, err)
			}
			if listType != palType {
				return nil, fmt.Errorf("list %s#%d has unsupported type: %q", ident, i, string(listType[:]))
			}

			nested, err := readChunks(list, fmt.Sprintf("%s#%d.%s", ident, i, listType[:]))
			if err != nil {
				return nil, err
			}
			colors = append(colors, nested...)
		case dataType:
			chunk, err := readPalChunk(data, fmt.Sprintf("%s#%d", ident, i))
			if err != nil {
				return nil, err
			}
			colors = append(colors, chunk...)
		default:
			// Other chunk types (e.g. INFO metadata) carry no colours.
		}
	}
}

func readPalChunk(r io.Reader, ident string) ([]colour.Color, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("could not read header of chunk %s: %w", ident, err)
	}

	if ver := binary.LittleEndian.Uint16(header[0:2]); ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %#04x", ident, ver)
	}

	count := int(binary.LittleEndian.Uint16(header[2:4]))
	entries := make([]byte, count*4)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("could not read %d colours from chunk %s: %w", count, ident, err)
	}

	colors := make([]colour.Color, count)
	for i := range count {
		colors[i] = colour.RGB(entries[i*4], entries[i*4+1], entries[i*4+2])
	}
	return colors, nil
}

// WriteRIFF writes the palette as a single-chunk RIFF palette. Alpha is
// dropped; PAL has no field for it. It returns the number of bytes written.
func (p *Palette) WriteRIFF(w io.Writer) (int64, error) {
	if len(p.colors) > 0xffff {
		return 0, fmt.Errorf("palette too large for RIFF: %d colours", len(p.colors))
	}

	chunkLen := 4 + len(p.colors)*4
	buf := make([]byte, 0, 20+chunkLen)
	buf = append(buf, riffType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4+8+chunkLen))
	buf = append(buf, palType[:]...)
	buf = append(buf, dataType[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(chunkLen))
	buf = binary.LittleEndian.AppendUint16(buf, palVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(p.colors)))
	for _, c := range p.colors {
		buf = append(buf, c.R, c.G, c.B, 0x00)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("could not write palette: %w", err)
	}
	return int64(n), nil
}
