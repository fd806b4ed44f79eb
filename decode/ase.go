package decode

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"palconv/palette"
)

// ASE block types.
const (
	aseColorEntry = 0x0001
	aseGroupStart = 0xc001
	aseGroupEnd   = 0xc002
)

// minimum block size: type (2) + length (4)
const aseBlockHeaderSize = 6

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// ASE decodes an Adobe Swatch Exchange file.
//
// Layout (big-endian): "ASEF" magic, version major/minor (uint16 each),
// block count (uint32), then blocks of type (uint16) + length (uint32).
// A color entry block holds a UTF-16BE name prefixed by its length in code
// units, a 4-byte color model tag, the model's float32 values and a 2-byte
// swatch type. "RGB " yields the three values; "CMYK" yields the first three
// and drops K. Other blocks are skipped by their declared length.
func ASE(data []byte, stem string) (palette.Result, error) {
	r := newReader(data)
	magic := r.bytes(4)
	if r.err != nil || (string(magic) != "ASEF" && string(magic) != "ASE\x00") {
		return fail(stem, palette.Structural(palette.FormatASE, "bad magic %q", magic))
	}
	r.skip(4) // version
	count := r.u32()
	if r.err != nil {
		return fail(stem, palette.Structural(palette.FormatASE, "%v", r.err))
	}
	if uint64(count)*aseBlockHeaderSize > uint64(r.remaining()) {
		return fail(stem, palette.Structural(palette.FormatASE, "declared %d blocks exceed file size %d", count, len(data)))
	}

	res := palette.Named(stem)
	for i := 0; i < int(count); i++ {
		blockStart := r.off
		typ := r.u16()
		length := int(r.u32())
		bodyStart := r.off
		if r.err != nil {
			break
		}
		if typ != aseColorEntry {
			if typ != aseGroupStart && typ != aseGroupEnd {
				res.Skip(palette.Diagnostic{Unit: "block", Index: i, Offset: blockStart, Message: fmt.Sprintf("unknown block type 0x%04x", typ)})
			}
			r.skip(length)
			continue
		}

		name := readASEName(r)
		model := string(r.bytes(4))
		var vals []float32
		switch model {
		case "RGB ":
			vals = []float32{r.f32(), r.f32(), r.f32()}
		case "CMYK":
			vals = []float32{r.f32(), r.f32(), r.f32()}
			r.skip(4) // K
		case "LAB ":
			r.skip(12)
		case "Gray":
			r.skip(4)
		default:
			res.Skip(palette.Diagnostic{Unit: "block", Index: i, Offset: blockStart, Message: fmt.Sprintf("unknown color model %q", model), Text: name})
			r.seek(bodyStart + length)
			continue
		}
		r.skip(2) // swatch type
		if r.err != nil {
			break
		}
		if vals == nil {
			res.Skip(palette.Diagnostic{Unit: "block", Index: i, Offset: blockStart, Message: fmt.Sprintf("unsupported color model %q", model), Text: name})
			continue
		}
		res.Add(palette.Color{R: float64(vals[0]), G: float64(vals[1]), B: float64(vals[2]), A: 1.0})
	}
	if r.err != nil {
		return fail(stem, palette.Structural(palette.FormatASE, "%v", r.err))
	}
	return res, nil
}

// readASEName reads a length-prefixed UTF-16BE swatch name. The name is only
// used in diagnostics, so undecodable names come back empty.
func readASEName(r *reader) string {
	n := int(r.u16())
	raw := r.bytes(n * 2)
	if r.err != nil {
		return ""
	}
	b, err := utf16be.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	return string(bytes.TrimRight(b, "\x00"))
}
