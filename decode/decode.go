// Package decode turns raw palette file contents into a palette.Result.
//
// Every decoder has the same shape: it takes the file bytes and the file
// name stem (used as the palette name by formats that carry none), and
// returns a Result together with a nil error, or a Result holding only the
// palette name together with a *palette.DecodeError when the file as a whole
// is unusable. Malformed lines, rows, blocks and entries are skipped and
// reported as Result.Diagnostics. Decoders never panic on bad input.
package decode

import (
	"strings"
	"unicode/utf8"

	"palconv/palette"
)

// Func is the common decoder signature.
type Func func(data []byte, stem string) (palette.Result, error)

// Default palette names for formats that may carry their own.
const (
	DefaultGPLName = "Imported Palette"
	DefaultKPLName = "Unnamed Palette"
	ACOName        = "ACO Palette"
)

// lines splits UTF-8 text into lines, accepting \n, \r\n and \r endings.
// A trailing newline does not produce an empty final line.
func lines(f palette.Format, data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, palette.Structural(f, "file is not valid UTF-8 text")
	}
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return nil, nil
	}
	out := strings.Split(s, "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out, nil
}

// fail returns the named-but-empty result paired with err.
func fail(name string, err error) (palette.Result, error) {
	return palette.Named(name), err
}
