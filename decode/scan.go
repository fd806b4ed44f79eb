package decode

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"

	"palconv/colorcode"
	"palconv/palette"
)

// CSV runs color detection on every cell of every comma separated row.
// Rows may have differing cell counts. A row that fails to parse is reported
// and skipped.
func CSV(data []byte, stem string) (palette.Result, error) {
	if !utf8.Valid(data) {
		return fail(stem, palette.Structural(palette.FormatCSV, "file is not valid UTF-8 text"))
	}
	res := palette.Named(stem)
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Skip(palette.Diagnostic{Unit: "row", Index: pe.StartLine, Message: pe.Err.Error()})
				continue
			}
			res.Skip(palette.Diagnostic{Unit: "row", Index: row, Message: err.Error()})
			break
		}
		for _, cell := range record {
			if c, ok := colorcode.Detect(cell); ok {
				res.Add(c)
			}
		}
	}
	return res, nil
}

// CSS runs color detection on each line of a stylesheet.
func CSS(data []byte, stem string) (palette.Result, error) {
	return scanLines(palette.FormatCSS, data, stem)
}

// Text runs color detection on each line of free-form text.
func Text(data []byte, stem string) (palette.Result, error) {
	return scanLines(palette.FormatText, data, stem)
}

func scanLines(f palette.Format, data []byte, stem string) (palette.Result, error) {
	ls, err := lines(f, data)
	if err != nil {
		return fail(stem, err)
	}
	res := palette.Named(stem)
	for _, line := range ls {
		if c, ok := colorcode.Detect(line); ok {
			res.Add(c)
		}
	}
	return res, nil
}
