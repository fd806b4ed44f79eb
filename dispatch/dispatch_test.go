package dispatch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palconv/palette"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]palette.Format{
		"a.gpl":          palette.FormatGPL,
		"A.GPL":          palette.FormatGPL,
		"dir/b.ase":      palette.FormatASE,
		"c.Aco":          palette.FormatACO,
		"d.pal":          palette.FormatPAL,
		"e.clr":          palette.FormatCLR,
		"f.csv":          palette.FormatCSV,
		"g.css":          palette.FormatCSS,
		"notes.v2.txt":   palette.FormatText,
		"/abs/path.html": palette.FormatUnknown,
	}
	for path, want := range tests {
		got, err := FormatForPath(path)
		assert.Equal(t, want, got, path)
		if want == palette.FormatUnknown {
			assert.ErrorIs(t, err, palette.ErrUnsupportedFormat)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestFormatForPathMatchesTable(t *testing.T) {
	for _, s := range Specs() {
		for _, ext := range s.Extensions {
			got, err := FormatForPath("palette" + strings.ToUpper(ext))
			require.NoError(t, err, ext)
			assert.Equal(t, s.Format, got, ext)
		}
	}
	_, err := FormatForPath("no-extension")
	assert.ErrorIs(t, err, palette.ErrUnsupportedFormat)
}

func TestKPLNotRoutedByExtension(t *testing.T) {
	_, err := FormatForPath("palette.kpl")
	require.ErrorIs(t, err, palette.ErrUnsupportedFormat)

	spec, err := Lookup(palette.FormatKPL)
	require.NoError(t, err)
	assert.Empty(t, spec.Extensions)
}

func TestDecodeFileUnsupportedBeforeIO(t *testing.T) {
	// The file does not exist: an unsupported extension must win over the
	// read error.
	_, _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.xyz"))
	require.ErrorIs(t, err, palette.ErrUnsupportedFormat)
	assert.NotErrorIs(t, err, palette.ErrIO)
}

func TestDecodeFile(t *testing.T) {
	path := writeFile(t, "Brand Colors.css", []byte("a { color: #00ff00; }\n"))
	res, f, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, palette.FormatCSS, f)
	assert.Equal(t, "Brand Colors", res.Name)
	require.Len(t, res.Colors, 1)
}

func TestDecodeFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.ase")
	res, _, err := DecodeFile(path)
	require.ErrorIs(t, err, palette.ErrIO)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "gone", res.Name)
	assert.Empty(t, res.Colors)
}

func TestDecodeFileStructuralCarriesPath(t *testing.T) {
	path := writeFile(t, "bad.gpl", []byte("not a palette\n"))
	res, _, err := DecodeFile(path)
	require.ErrorIs(t, err, palette.ErrStructural)
	var de *palette.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, path, de.Path)
	assert.Equal(t, palette.FormatGPL, de.Format)
	assert.Equal(t, "Imported Palette", res.Name)
}

func TestDecodeFileAsKPL(t *testing.T) {
	path := writeFile(t, "krita.kpl", []byte("Name=Krita\n10 20 30 Dark\n"))
	res, err := DecodeFileAs(path, palette.FormatKPL)
	require.NoError(t, err)
	assert.Equal(t, "Krita", res.Name)
	require.Len(t, res.Colors, 1)
}

func TestDecodeFileAsOverridesExtension(t *testing.T) {
	path := writeFile(t, "export.dat", []byte("GIMP Palette\n1 2 3\n"))
	res, err := DecodeFileAs(path, palette.FormatGPL)
	require.NoError(t, err)
	assert.Len(t, res.Colors, 1)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup(palette.FormatUnknown)
	require.ErrorIs(t, err, palette.ErrUnsupportedFormat)
	_, err = Lookup(palette.Format(99))
	require.ErrorIs(t, err, palette.ErrUnsupportedFormat)
}

func TestSpecs(t *testing.T) {
	specs := Specs()
	require.Len(t, specs, len(palette.Formats()))
	for _, s := range specs {
		assert.NotNil(t, s.Decode, s.Format.String())
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "colors", Stem("/tmp/colors.ase"))
	assert.Equal(t, "a.b", Stem("a.b.csv"))
	assert.Equal(t, "plain", Stem("plain"))
}
