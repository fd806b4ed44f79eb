package decode

import (
	"fmt"
	"strconv"
	"strings"

	"palconv/palette"
)

const gplMagic = "GIMP Palette"

// GPL decodes a GIMP palette. The first line must be exactly "GIMP Palette";
// a "Name:" line sets the palette name. Each remaining non-comment line is
// "R G B [label]" with channels in 0-255.
func GPL(data []byte, _ string) (palette.Result, error) {
	ls, err := lines(palette.FormatGPL, data)
	if err != nil {
		return fail(DefaultGPLName, err)
	}
	if len(ls) == 0 || strings.TrimSpace(ls[0]) != gplMagic {
		return fail(DefaultGPLName, palette.Structural(palette.FormatGPL, "missing %q header", gplMagic))
	}

	res := palette.Named(DefaultGPLName)
	for i, line := range ls[1:] {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Name:"):
			res.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, "Columns:"):
			continue
		}
		c, err := parseChannels(strings.Fields(line))
		if err != nil {
			res.Skip(palette.Diagnostic{Unit: "line", Index: i + 2, Message: err.Error(), Text: line})
			continue
		}
		res.Add(c)
	}
	return res, nil
}

// KPL decodes the line-oriented KDE palette layout: "Name=" sets the name,
// lines starting with '#' or '[' are ignored, and a color line has at least
// four whitespace separated tokens of which the first three are integers.
// Lines with fewer tokens are ignored without a diagnostic.
func KPL(data []byte, _ string) (palette.Result, error) {
	ls, err := lines(palette.FormatKPL, data)
	if err != nil {
		return fail(DefaultKPLName, err)
	}
	res := palette.Named(DefaultKPLName)
	for i, line := range ls {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "Name="):
			res.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name="))
			continue
		case strings.HasPrefix(line, "["):
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		c, err := parseInts(parts[:3])
		if err != nil {
			res.Skip(palette.Diagnostic{Unit: "line", Index: i + 1, Message: "invalid color entry: " + err.Error(), Text: line})
			continue
		}
		res.Add(c)
	}
	return res, nil
}

const palMagic = "JASC-PAL"

// PAL decodes a JASC palette. The first line must start with "JASC-PAL";
// the first three lines (magic, version, count) are a header, and each
// following line is exactly three integers.
func PAL(data []byte, stem string) (palette.Result, error) {
	ls, err := lines(palette.FormatPAL, data)
	if err != nil {
		return fail(stem, err)
	}
	if len(ls) == 0 || !strings.HasPrefix(ls[0], palMagic) {
		return fail(stem, palette.Structural(palette.FormatPAL, "missing %q header", palMagic))
	}
	res := palette.Named(stem)
	if len(ls) <= 3 {
		return res, nil
	}
	for i, line := range ls[3:] {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if len(parts) != 3 {
			res.Skip(palette.Diagnostic{Unit: "line", Index: i + 4, Message: "expected 3 values, got " + strconv.Itoa(len(parts)), Text: line})
			continue
		}
		c, err := parseInts(parts)
		if err != nil {
			res.Skip(palette.Diagnostic{Unit: "line", Index: i + 4, Message: err.Error(), Text: line})
			continue
		}
		res.Add(c)
	}
	return res, nil
}

// parseChannels reads the first three fields as numbers in 0-255; any
// further fields are a label.
func parseChannels(fields []string) (palette.Color, error) {
	if len(fields) < 3 {
		return palette.Color{}, fmt.Errorf("expected R G B, got %d values", len(fields))
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return palette.Color{}, err
		}
		ch[i] = v
	}
	return palette.RGB255(ch[0], ch[1], ch[2]), nil
}

// parseInts reads exactly three integer channels in 0-255.
func parseInts(fields []string) (palette.Color, error) {
	var ch [3]float64
	for i := range ch {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return palette.Color{}, err
		}
		ch[i] = float64(v)
	}
	return palette.RGB255(ch[0], ch[1], ch[2]), nil
}
