package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palconv/palette"
)

func TestFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "brand.csv")
	require.NoError(t, os.WriteFile(in, []byte("#ff0000,#0000ff\n"), 0o644))

	out, err := File(in, Options{})
	require.NoError(t, err)
	assert.Equal(t, palette.FormatCSV, out.Format)
	assert.Equal(t, filepath.Join(dir, "brand.gpl"), out.Output)

	data, err := os.ReadFile(out.Output)
	require.NoError(t, err)
	assert.Equal(t, "GIMP Palette\nName: brand\n#\n255   0   0 Untitled\n  0   0 255 Untitled\n", string(data))

	_, err = File(in, Options{})
	require.ErrorIs(t, err, ErrExists)

	_, err = File(in, Options{Overwrite: true})
	require.NoError(t, err)
}

func TestFileOutDirUsesPaletteName(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.gpl")
	require.NoError(t, os.WriteFile(in, []byte("GIMP Palette\nName: Night Sky\n0 0 64\n"), 0o644))
	outDir := filepath.Join(dir, "exports")

	out, err := File(in, Options{OutDir: outDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "Night Sky.gpl"), out.Output)
	assert.FileExists(t, out.Output)
}

func TestFileSameFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "x.gpl")
	require.NoError(t, os.WriteFile(in, []byte("GIMP Palette\nName: x\n1 2 3\n"), 0o644))
	_, err := File(in, Options{Overwrite: true})
	require.ErrorIs(t, err, ErrSameFile)
}

func TestFileNoColors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(in, []byte("nothing to see\n"), 0o644))
	out, err := File(in, Options{})
	require.ErrorIs(t, err, ErrNoColors)
	assert.Equal(t, "empty", out.Result.Name)
	assert.NoFileExists(t, filepath.Join(dir, "empty.gpl"))
}

func TestFileExplicitFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "krita.kpl")
	require.NoError(t, os.WriteFile(in, []byte("Name=K\n1 2 3 a\n"), 0o644))

	_, err := File(in, Options{})
	require.ErrorIs(t, err, palette.ErrUnsupportedFormat)

	target := filepath.Join(dir, "k-out.gpl")
	out, err := File(in, Options{Format: palette.FormatKPL, OutPath: target})
	require.NoError(t, err)
	assert.Equal(t, target, out.Output)
	assert.Equal(t, palette.FormatKPL, out.Format)
}

func TestFileStructural(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.aco")
	require.NoError(t, os.WriteFile(in, []byte{0, 9, 0, 0}, 0o644))
	_, err := File(in, Options{})
	require.ErrorIs(t, err, palette.ErrStructural)
}
