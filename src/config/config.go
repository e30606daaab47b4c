// Package config loads defaults for the command line from the environment, an
// optional .env file and the user's preferences file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

const (
	AppDir          = "weight-calendar-grid"
	PreferencesFile = "preferences.yaml"
	DefaultEnvFile  = ".env"
	EnvPrefix       = "WCG_"
)

// Preferences are the remembered defaults. Zero fields are unset.
type Preferences struct {
	Height       float64  `yaml:"height,omitempty"`
	Weight       string   `yaml:"weight,omitempty"`
	Initials     string   `yaml:"initials,omitempty"`
	Lang         string   `yaml:"lang,omitempty"`
	Mode         string   `yaml:"mode,omitempty"`
	Input        string   `yaml:"input,omitempty"`
	Driver       string   `yaml:"driver,omitempty"`
	Format       string   `yaml:"format,omitempty"`
	DPI          int      `yaml:"dpi,omitempty"`
	Fonts        []string `yaml:"fonts,omitempty"`
	BoldFonts    []string `yaml:"bold_fonts,omitempty"`
	LatexCommand string   `yaml:"latex_command,omitempty"`
	TempDir      string   `yaml:"temp_dir,omitempty"`
	LogLevel     string   `yaml:"log_level,omitempty"`
}

// DefaultPreferencesPath is preferences.yaml in the per-user config directory.
func DefaultPreferencesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDir, PreferencesFile), nil
}

// LoadPreferences reads path. A missing file yields empty preferences.
func LoadPreferences(path string) (Preferences, error) {
	var p Preferences
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debugf("no preferences at %s", path)
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errs.Invalid("preferences %s: %v", path, err)
	}
	logging.Debugf("loaded preferences from %s", path)
	return p, nil
}

// SavePreferences writes p to path, creating the directory.
func SavePreferences(path string, p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	logging.Infof("saved preferences to %s", path)
	return nil
}

// LoadEnv reads WCG_* settings. Values in the process environment win over the
// env file; a missing file is ignored unless it was named explicitly.
func LoadEnv(file string, explicit bool) (Preferences, error) {
	fileVals := map[string]string{}
	if file != "" {
		vals, err := godotenv.Read(file)
		switch {
		case err == nil:
			fileVals = vals
			logging.Debugf("read %d settings from %s", len(vals), file)
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Preferences{}, errs.Invalid("env file %s: %v", file, err)
		}
	}
	get := func(key string) string {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v
		}
		return fileVals[EnvPrefix+key]
	}

	var p Preferences
	var err error
	if v := get("HEIGHT"); v != "" {
		if p.Height, err = strconv.ParseFloat(v, 64); err != nil {
			return Preferences{}, errs.Invalid("%sHEIGHT=%q: %v", EnvPrefix, v, err)
		}
	}
	if v := get("DPI"); v != "" {
		if p.DPI, err = strconv.Atoi(v); err != nil {
			return Preferences{}, errs.Invalid("%sDPI=%q: %v", EnvPrefix, v, err)
		}
	}
	p.Weight = get("WEIGHT")
	p.Initials = get("INITIALS")
	p.Lang = get("LANG")
	p.Mode = get("MODE")
	p.Input = get("INPUT")
	p.Driver = get("DRIVER")
	p.Format = get("FORMAT")
	p.Fonts = splitList(get("FONTS"))
	p.BoldFonts = splitList(get("BOLD_FONTS"))
	p.LatexCommand = get("LATEX")
	p.TempDir = get("TMPDIR")
	p.LogLevel = get("LOG_LEVEL")
	return p, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range filepath.SplitList(s) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Merge returns p with every set field of over applied on top.
func (p Preferences) Merge(over Preferences) Preferences {
	if over.Height != 0 {
		p.Height = over.Height
	}
	if over.DPI != 0 {
		p.DPI = over.DPI
	}
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&p.Weight, over.Weight},
		{&p.Initials, over.Initials},
		{&p.Lang, over.Lang},
		{&p.Mode, over.Mode},
		{&p.Input, over.Input},
		{&p.Driver, over.Driver},
		{&p.Format, over.Format},
		{&p.LatexCommand, over.LatexCommand},
		{&p.TempDir, over.TempDir},
		{&p.LogLevel, over.LogLevel},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if len(over.Fonts) > 0 {
		p.Fonts = over.Fonts
	}
	if len(over.BoldFonts) > 0 {
		p.BoldFonts = over.BoldFonts
	}
	return p
}

// SystemLang guesses the language from the usual locale variables.
func SystemLang() string {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}
