// Package encode writes palettes in the GIMP GPL text format.
package encode

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"palconv/palette"
)

// DefaultFileName is used when a palette has no name.
const DefaultFileName = "palette"

// GPL writes name and colors as GPL text. Channels are scaled by 255 and
// rounded; alpha is dropped. Values are not clamped, so out-of-range input
// produces out-of-range (possibly negative) integers.
func GPL(w io.Writer, name string, colors []palette.Color) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "GIMP Palette\nName: %s\n#\n", name)
	for _, c := range colors {
		fmt.Fprintf(bw, "%3d %3d %3d Untitled\n", to255(c.R), to255(c.G), to255(c.B))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write gpl: %w", err)
	}
	return nil
}

// GPLFile creates or truncates path and writes the palette to it.
func GPLFile(path string, p palette.Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", palette.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", palette.ErrIO, cerr)
		}
	}()
	if err := GPL(f, p.Name, p.Colors); err != nil {
		return fmt.Errorf("%w: %w", palette.ErrIO, err)
	}
	return nil
}

// FileName returns "<name>.gpl" with path separators replaced, falling back
// to DefaultFileName for an empty name.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFileName
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return name + ".gpl"
}

func to255(v float64) int {
	return int(math.Round(v * 255))
}
