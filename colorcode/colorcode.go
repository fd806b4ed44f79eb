// Package colorcode finds color literals in free-form text: hex codes,
// FF-prefixed ARGB hex, rgb() and hsl() notations.
package colorcode

import (
	"regexp"
	"strconv"
	"strings"

	"palconv/palette"
)

var (
	ffHexRe = regexp.MustCompile(`FF([0-9a-fA-F]{6})`)
	// A hex run must not touch other word characters, so "background" or
	// "0x1234" never yield a color. Extra hex digits are allowed and ignored:
	// "#ff000080" reads as #ff0000 and "#abcd" as #abc.
	hexRe = regexp.MustCompile(`(?:^|[^0-9A-Za-z_])(#?(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3}))[0-9a-fA-F]*(?:[^0-9A-Za-z_]|$)`)
	rgbRe = regexp.MustCompile(`rgb\((\d{1,3}),\s*(\d{1,3}),\s*(\d{1,3})\)`)
	hslRe = regexp.MustCompile(`hsl\((\d{1,3}),\s*(\d{1,3})%,\s*(\d{1,3})%\)`)
	// Functional notations are blanked before the hex scan so their decimal
	// arguments ("128", "100") are not read as 3-digit hex.
	funcRe = regexp.MustCompile(`(?:rgb|hsl)a?\([^)]*\)`)
)

// Detect returns the first color found in text. Priority is fixed:
// FF-prefixed hex, plain hex, rgb(), then hsl(). Only one color is returned
// per call.
func Detect(text string) (palette.Color, bool) {
	if m := ffHexRe.FindStringSubmatch(text); m != nil {
		return HexToColor(m[1])
	}
	masked := funcRe.ReplaceAllStringFunc(text, func(s string) string {
		return strings.Repeat(" ", len(s))
	})
	if m := hexRe.FindStringSubmatch(masked); m != nil {
		return HexToColor(m[1])
	}
	if m := rgbRe.FindStringSubmatch(text); m != nil {
		r, g, b := atoi3(m[1:])
		return palette.RGB255(float64(r), float64(g), float64(b)), true
	}
	if m := hslRe.FindStringSubmatch(text); m != nil {
		h, s, l := atoi3(m[1:])
		return HSLToColor(h, s, l), true
	}
	return palette.Color{}, false
}

// HexToColor decodes a 3 or 6 digit hex code with optional leading '#'.
// The 3 digit form expands each digit ("abc" -> "aabbcc").
func HexToColor(code string) (palette.Color, bool) {
	code = strings.TrimLeft(code, "#")
	if len(code) == 3 {
		code = string([]byte{code[0], code[0], code[1], code[1], code[2], code[2]})
	}
	if len(code) != 6 {
		return palette.Color{}, false
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(code[i*2:i*2+2], 16, 8)
		if err != nil {
			return palette.Color{}, false
		}
		ch[i] = float64(v)
	}
	return palette.RGB255(ch[0], ch[1], ch[2]), true
}

// HSLToColor converts hue in degrees and saturation/lightness in percent.
//
// q is always l + s - l*s, including for l < 0.5 where the CSS formula uses
// l*(1+s). Colors with lightness below 50% therefore differ from what a
// browser renders for the same hsl() value.
func HSLToColor(h, s, l int) palette.Color {
	sf := float64(s) / 100
	lf := float64(l) / 100
	hf := float64(h) / 360

	q := lf + sf - lf*sf
	p := 2*lf - q
	return palette.Color{
		R: hueToChannel(p, q, hf+1.0/3),
		G: hueToChannel(p, q, hf),
		B: hueToChannel(p, q, hf-1.0/3),
		A: 1.0,
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func atoi3(parts []string) (a, b, c int) {
	// The regexps only admit 1-3 ASCII digits, so Atoi cannot fail.
	a, _ = strconv.Atoi(parts[0])
	b, _ = strconv.Atoi(parts[1])
	c, _ = strconv.Atoi(parts[2])
	return a, b, c
}
