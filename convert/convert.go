// Package convert decodes a palette file of any supported format and writes
// it back out as GPL.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"palconv/dispatch"
	"palconv/encode"
	"palconv/palette"
)

var (
	// ErrNoColors is returned when a file decodes cleanly but holds no colors.
	ErrNoColors = errors.New("no colors found")
	// ErrExists is returned when the output file exists and Overwrite is off.
	ErrExists = errors.New("output file exists")
	// ErrSameFile is returned when the output would replace the input.
	ErrSameFile = errors.New("output would overwrite input")
)

// Options controls where and how a conversion is written.
type Options struct {
	// Format forces a decoder; FormatUnknown selects by extension.
	Format palette.Format
	// OutPath is the exact output file. When empty the output is
	// "<palette name>.gpl" in OutDir, or next to the input if OutDir is empty.
	OutPath   string
	OutDir    string
	Overwrite bool
}

// Outcome describes a conversion.
type Outcome struct {
	Input  string
	Output string
	Format palette.Format
	Result palette.Result
}

// File converts path to GPL. The returned Outcome carries the decode result
// even when an error is returned, so callers can report diagnostics.
func File(path string, opts Options) (Outcome, error) {
	out := Outcome{Input: path, Format: opts.Format}
	var err error
	if opts.Format == palette.FormatUnknown {
		out.Result, out.Format, err = dispatch.DecodeFile(path)
	} else {
		out.Result, err = dispatch.DecodeFileAs(path, opts.Format)
	}
	if err != nil {
		return out, err
	}
	if out.Result.Empty() {
		return out, fmt.Errorf("%s: %w", path, ErrNoColors)
	}

	out.Output = OutputPath(path, out.Result.Name, opts)
	if same(path, out.Output) {
		return out, fmt.Errorf("%s: %w", out.Output, ErrSameFile)
	}
	if !opts.Overwrite {
		if _, err := os.Stat(out.Output); err == nil {
			return out, fmt.Errorf("%s: %w", out.Output, ErrExists)
		}
	}
	if opts.OutDir != "" && opts.OutPath == "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return out, fmt.Errorf("%w: %w", palette.ErrIO, err)
		}
	}
	if err := encode.GPLFile(out.Output, out.Result.Palette); err != nil {
		return out, err
	}
	return out, nil
}

// OutputPath resolves the GPL file a conversion of input writes to.
func OutputPath(input, name string, opts Options) string {
	if opts.OutPath != "" {
		return opts.OutPath
	}
	dir := opts.OutDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, encode.FileName(name))
}

func same(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return a == b
	}
	return aa == bb
}
