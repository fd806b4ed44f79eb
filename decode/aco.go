package decode

import (
	"fmt"

	"palconv/palette"
)

// ACO color space identifiers.
const (
	acoRGB  = 0
	acoHSB  = 1
	acoCMYK = 2
	acoLab  = 7
)

const acoEntrySize = 10 // space + 4 values, uint16 each

// ACO decodes an Adobe Color swatch file: version (1 or 2), entry count,
// then per entry a color space and four uint16 values, all big-endian.
// Only RGB entries produce colors (each value / 65535); other spaces are
// reported and skipped with their value bytes consumed. The palette name
// is always "ACO Palette".
func ACO(data []byte, _ string) (palette.Result, error) {
	r := newReader(data)
	version := r.u16()
	count := int(r.u16())
	if r.err != nil {
		return fail(ACOName, palette.Structural(palette.FormatACO, "%v", r.err))
	}
	if version != 1 && version != 2 {
		return fail(ACOName, palette.Structural(palette.FormatACO, "unsupported version %d", version))
	}
	if count*acoEntrySize > r.remaining() {
		return fail(ACOName, palette.Structural(palette.FormatACO, "declared %d entries exceed file size %d", count, len(data)))
	}

	res := palette.Named(ACOName)
	for i := 0; i < count; i++ {
		off := r.off
		space := r.u16()
		w, x, y := r.u16(), r.u16(), r.u16()
		r.skip(2)
		if space != acoRGB {
			res.Skip(palette.Diagnostic{Unit: "entry", Index: i, Offset: off, Message: fmt.Sprintf("unsupported color space %d (%s)", space, acoSpaceName(space))})
			continue
		}
		res.Add(palette.Color{R: float64(w) / 65535, G: float64(x) / 65535, B: float64(y) / 65535, A: 1.0})
	}
	return res, nil
}

func acoSpaceName(space uint16) string {
	switch space {
	case acoHSB:
		return "HSB"
	case acoCMYK:
		return "CMYK"
	case acoLab:
		return "Lab"
	case 3:
		return "Pantone"
	case 8:
		return "grayscale"
	}
	return "unknown"
}
