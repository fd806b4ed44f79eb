package palette

import (
	"fmt"
	"strings"
)

// Format identifies a supported palette file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatGPL
	FormatKPL
	FormatASE
	FormatACO
	FormatPAL
	FormatCLR
	FormatCSV
	FormatCSS
	FormatText
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatGPL:     "gpl",
	FormatKPL:     "kpl",
	FormatASE:     "ase",
	FormatACO:     "aco",
	FormatPAL:     "pal",
	FormatCLR:     "clr",
	FormatCSV:     "csv",
	FormatCSS:     "css",
	FormatText:    "txt",
}

// Formats lists every known format in declaration order.
func Formats() []Format {
	return []Format{FormatGPL, FormatKPL, FormatASE, FormatACO, FormatPAL, FormatCLR, FormatCSV, FormatCSS, FormatText}
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("format(%d)", int(f))
	}
	return formatNames[f]
}

// Binary reports whether the format is a binary layout.
func (f Format) Binary() bool {
	switch f {
	case FormatASE, FormatACO, FormatCLR:
		return true
	}
	return false
}

// ParseFormat resolves an explicit format tag such as "gpl" or ".ASE".
// "text" is accepted as an alias of "txt".
func ParseFormat(tag string) (Format, error) {
	t := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag)), ".")
	if t == "text" {
		return FormatText, nil
	}
	for _, f := range Formats() {
		if formatNames[f] == t {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, tag)
}
