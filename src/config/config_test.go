package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/WeightCalendarGrid/src/errs"
)

func TestPreferencesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppDir, PreferencesFile)

	p, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, p)

	want := Preferences{Height: 1.82, Initials: "JD", Lang: "de", Fonts: []string{"/a.ttf", "/b.ttf"}}
	require.NoError(t, SavePreferences(path, want))
	got, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "driver", "unset fields are omitted")
}

func TestLoadPreferencesRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("height: [tall\n"), 0o644))
	_, err := LoadPreferences(path)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestLoadEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("WCG_HEIGHT=1.75\nWCG_INITIALS=AB\nWCG_DPI=200\nWCG_FONTS=/x.ttf"+string(os.PathListSeparator)+"/y.ttf\n"), 0o644))
	t.Setenv("WCG_INITIALS", "CD")

	p, err := LoadEnv(file, true)
	require.NoError(t, err)
	assert.Equal(t, 1.75, p.Height)
	assert.Equal(t, "CD", p.Initials, "process environment wins")
	assert.Equal(t, 200, p.DPI)
	assert.Equal(t, []string{"/x.ttf", "/y.ttf"}, p.Fonts)
}

func TestLoadEnvMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	_, err := LoadEnv(missing, false)
	assert.NoError(t, err)
	_, err = LoadEnv(missing, true)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestLoadEnvBadNumber(t *testing.T) {
	t.Setenv("WCG_HEIGHT", "tall")
	_, err := LoadEnv("", false)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestMerge(t *testing.T) {
	base := Preferences{Height: 1.7, Weight: "auto", Lang: "en", Fonts: []string{"/a.ttf"}}
	got := base.Merge(Preferences{Weight: "70-80", DPI: 300})
	assert.Equal(t, Preferences{Height: 1.7, Weight: "70-80", Lang: "en", DPI: 300, Fonts: []string{"/a.ttf"}}, got)
}

func TestSystemLang(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "C")
	t.Setenv("LANG", "de_DE.UTF-8")
	assert.Equal(t, "de_DE.UTF-8", SystemLang())
}
