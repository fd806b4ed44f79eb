package palette

import (
	"errors"
	"fmt"
)

// Errors returned by decode and dispatch operations.
var (
	// ErrStructural indicates a file-level problem (bad magic, version or
	// header, truncated binary data) that invalidates the whole file.
	ErrStructural = errors.New("malformed palette file")

	// ErrUnsupportedFormat indicates no decoder is registered for the format.
	ErrUnsupportedFormat = errors.New("unsupported palette format")

	// ErrIO indicates the palette file could not be read or written.
	ErrIO = errors.New("palette file I/O failed")
)

// DecodeError describes why a whole file was rejected.
type DecodeError struct {
	Format Format
	Path   string
	Reason string
	// Err is ErrStructural or ErrIO, optionally wrapping the cause.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("decode %s %s: %s", e.Format, e.Path, e.Reason)
	}
	return fmt.Sprintf("decode %s: %s", e.Format, e.Reason)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Structural returns a structural DecodeError.
func Structural(f Format, format string, args ...any) *DecodeError {
	return &DecodeError{Format: f, Reason: fmt.Sprintf(format, args...), Err: ErrStructural}
}

// IOError returns an I/O DecodeError wrapping cause.
func IOError(f Format, path string, cause error) *DecodeError {
	return &DecodeError{
		Format: f,
		Path:   path,
		Reason: cause.Error(),
		Err:    fmt.Errorf("%w: %w", ErrIO, cause),
	}
}

// Kind classifies err into one of "structural", "unsupported", "io", or ""
// for nil and unclassified errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStructural):
		return "structural"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported"
	case errors.Is(err, ErrIO):
		return "io"
	}
	return ""
}
