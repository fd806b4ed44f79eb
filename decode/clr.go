package decode

import (
	"fmt"

	"palconv/palette"
)

// CLR decodes a headerless sequence of 4-byte RGBA records. Alpha is kept
// as stored. Trailing bytes that do not fill a record are dropped.
func CLR(data []byte, stem string) (palette.Result, error) {
	res := palette.Named(stem)
	n := len(data) / 4
	res.Colors = make([]palette.Color, 0, n)
	for i := 0; i < n; i++ {
		rec := data[i*4 : i*4+4]
		res.Add(palette.Color{
			R: float64(rec[0]) / 255,
			G: float64(rec[1]) / 255,
			B: float64(rec[2]) / 255,
			A: float64(rec[3]) / 255,
		})
	}
	if rest := len(data) % 4; rest != 0 {
		res.Skip(palette.Diagnostic{Unit: "entry", Index: n, Offset: n * 4, Message: fmt.Sprintf("dropped %d trailing bytes", rest)})
	}
	return res, nil
}
