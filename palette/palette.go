package palette

// Color holds four channels normalized to [0, 1] in fixed RGBA order.
// Decoders do not clamp beyond what the source format implies, so a
// malformed input can produce out-of-range values.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGB255 returns an opaque color from 0-255 channel values.
func RGB255(r, g, b float64) Color {
	return Color{R: r / 255, G: g / 255, B: b / 255, A: 1.0}
}

// Slice returns the channels as [r, g, b, a].
func (c Color) Slice() [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}

// Palette is a named, ordered list of colors. Duplicates are allowed and an
// empty list means no colors were found.
type Palette struct {
	Name   string  `json:"name"`
	Colors []Color `json:"colors"`
}

// Len returns the number of colors.
func (p Palette) Len() int { return len(p.Colors) }

// Empty reports whether the palette has no colors.
func (p Palette) Empty() bool { return len(p.Colors) == 0 }

// Diagnostic describes one skipped unit (line, record, block or cell).
type Diagnostic struct {
	// Unit is "line", "row", "block" or "entry".
	Unit string `json:"unit"`
	// Index is the 1-based line/row number or the 0-based block/entry index.
	Index int `json:"index"`
	// Offset is the byte offset for binary formats.
	Offset  int    `json:"offset,omitempty"`
	Message string `json:"message"`
	Text    string `json:"text,omitempty"`
}

// Result is the outcome of a decode call: the palette plus any per-unit
// diagnostics collected along the way.
type Result struct {
	Palette
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Skip records a skipped unit.
func (r *Result) Skip(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Add appends a color.
func (r *Result) Add(c Color) {
	r.Colors = append(r.Colors, c)
}

// Named returns an empty Result with the given palette name.
func Named(name string) Result {
	return Result{Palette: Palette{Name: name}}
}
