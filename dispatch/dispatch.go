// Package dispatch selects a decoder for a palette file and runs it.
package dispatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"palconv/decode"
	"palconv/palette"
)

// Spec ties a format to its decoder and the file extensions routed to it.
type Spec struct {
	Format     palette.Format
	Decode     decode.Func
	Extensions []string
	// FallbackName is the palette name used before the file is read; empty
	// means the file name stem.
	FallbackName string
}

// specs is indexed by palette.Format. KPL has a decoder but no extension,
// so it is reachable only through an explicit format tag.
var specs = [...]Spec{
	palette.FormatGPL:  {Format: palette.FormatGPL, Decode: decode.GPL, Extensions: []string{".gpl"}, FallbackName: decode.DefaultGPLName},
	palette.FormatKPL:  {Format: palette.FormatKPL, Decode: decode.KPL, FallbackName: decode.DefaultKPLName},
	palette.FormatASE:  {Format: palette.FormatASE, Decode: decode.ASE, Extensions: []string{".ase"}},
	palette.FormatACO:  {Format: palette.FormatACO, Decode: decode.ACO, Extensions: []string{".aco"}, FallbackName: decode.ACOName},
	palette.FormatPAL:  {Format: palette.FormatPAL, Decode: decode.PAL, Extensions: []string{".pal"}},
	palette.FormatCLR:  {Format: palette.FormatCLR, Decode: decode.CLR, Extensions: []string{".clr"}},
	palette.FormatCSV:  {Format: palette.FormatCSV, Decode: decode.CSV, Extensions: []string{".csv"}},
	palette.FormatCSS:  {Format: palette.FormatCSS, Decode: decode.CSS, Extensions: []string{".css"}},
	palette.FormatText: {Format: palette.FormatText, Decode: decode.Text, Extensions: []string{".txt"}},
}

// Specs returns the decoder table in format order.
func Specs() []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if s.Decode != nil {
			out = append(out, s)
		}
	}
	return out
}

// Lookup returns the spec for f.
func Lookup(f palette.Format) (Spec, error) {
	if f <= palette.FormatUnknown || int(f) >= len(specs) || specs[f].Decode == nil {
		return Spec{}, fmt.Errorf("%w: %s", palette.ErrUnsupportedFormat, f)
	}
	return specs[f], nil
}

// FormatForPath maps the lowercase extension of path to a format using the
// Extensions of the decoder table.
func FormatForPath(path string) (palette.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		for _, s := range specs {
			if slices.Contains(s.Extensions, ext) {
				return s.Format, nil
			}
		}
	}
	return palette.FormatUnknown, fmt.Errorf("%w: %q", palette.ErrUnsupportedFormat, ext)
}

// Supported reports whether path has an extension with a decoder.
func Supported(path string) bool {
	_, err := FormatForPath(path)
	return err == nil
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DecodeFile picks a decoder by extension and decodes path. An unknown
// extension fails with palette.ErrUnsupportedFormat before the file is
// opened.
func DecodeFile(path string) (palette.Result, palette.Format, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return palette.Result{}, f, err
	}
	res, err := DecodeFileAs(path, f)
	return res, f, err
}

// DecodeFileAs decodes path with the decoder for f regardless of the file
// extension.
func DecodeFileAs(path string, f palette.Format) (palette.Result, error) {
	spec, err := Lookup(f)
	if err != nil {
		return palette.Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return palette.Named(spec.name(path)), palette.IOError(f, path, err)
	}
	return Decode(spec, data, path)
}

// Decode runs spec's decoder over an in-memory buffer. path is used for the
// name stem and error context only.
func Decode(spec Spec, data []byte, path string) (palette.Result, error) {
	res, err := spec.Decode(data, Stem(path))
	var de *palette.DecodeError
	if errors.As(err, &de) && de.Path == "" {
		de.Path = path
	}
	return res, err
}

func (s Spec) name(path string) string {
	if s.FallbackName != "" {
		return s.FallbackName
	}
	return Stem(path)
}
