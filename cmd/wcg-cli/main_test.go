package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/WeightCalendarGrid/src/config"
)

// cli runs the command with a private preferences file.
func cli(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	prefs := filepath.Join(t.TempDir(), "prefs.yaml")
	var out, errb bytes.Buffer
	code := run(append([]string{"--prefs", prefs}, args...), &out, &errb)
	return code, out.String(), errb.String()
}

func TestEndToEndRasterPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.png")
	code, _, stderr := cli(t, "-H", "1.75", "-b", "2015-11-22", "-e", "2016-01-17",
		"-d", "raster", "--dpi", "36", "-I", "JD", "-o", path)
	require.Equal(t, 0, code, stderr)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestFormatFromOutputName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.svg")
	code, _, stderr := cli(t, "-W", "70-80", "-o", path)
	require.Equal(t, 0, code, stderr)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
}

func TestStdout(t *testing.T) {
	code, out, stderr := cli(t, "-W", "75", "-d", "raster", "-f", "png", "--dpi", "36")
	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(out, "\x89PNG"))
}

func TestInvalidInputExitCode(t *testing.T) {
	for _, args := range [][]string{
		{"-W", "81-70"},
		{"-H", "1.8", "-b", "2016-13-01"},
		{"-H", "1.8", "-b", "2016-03-01", "-e", "2016-02-01"},
		{"-H", "1.8", "-d", "cairo"},
		{"-H", "1.8", "-N"},
		{"-H", "1.8", "--log-level", "loud"},
	} {
		code, _, stderr := cli(t, append(args, "--dpi", "36")...)
		assert.Equal(t, 2, code, "%v: %s", args, stderr)
		assert.Contains(t, stderr, "wcg-cli:")
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.png")
	code, _, stderr := cli(t, "-H", "1.8", "-d", "raster", "--dpi", "36", "-N", "-o", path)
	require.Equal(t, 0, code, stderr)
	assert.NoFileExists(t, path)
}

func TestFailedRenderLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.png")
	code, _, _ := cli(t, "-W", "abc", "-d", "raster", "-o", path)
	assert.Equal(t, 2, code)
	assert.NoFileExists(t, path)
}

func TestListOptions(t *testing.T) {
	code, out, _ := cli(t, "-L")
	require.Equal(t, 0, code)
	for _, want := range []string{"raster", "chart", "tikz", "webp", "de", "history"} {
		assert.Contains(t, out, want)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := cli(t, "-V")
	require.Equal(t, 0, code)
	assert.Contains(t, out, version)
}

func TestSavePrefs(t *testing.T) {
	dir := t.TempDir()
	prefs := filepath.Join(dir, "prefs.yaml")
	var out, errb bytes.Buffer
	code := run([]string{"--prefs", prefs, "-H", "1.82", "-I", "AB", "-d", "raster", "--dpi", "36",
		"-o", filepath.Join(dir, "a.png"), "--save-prefs"}, &out, &errb)
	require.Equal(t, 0, code, errb.String())

	p, err := config.LoadPreferences(prefs)
	require.NoError(t, err)
	assert.Equal(t, 1.82, p.Height)
	assert.Equal(t, "AB", p.Initials)

	// the saved height alone is enough for the next run
	code = run([]string{"--prefs", prefs, "-d", "raster", "--dpi", "36", "-o", filepath.Join(dir, "b.png")}, &out, &errb)
	require.Equal(t, 0, code, errb.String())
	assert.FileExists(t, filepath.Join(dir, "b.png"))
}
