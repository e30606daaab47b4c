// Command wcg-cli prints a weight/calendar grid page for tracking body weight by hand.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/config"
	"github.com/iafilius/WeightCalendarGrid/src/driver"
	"github.com/iafilius/WeightCalendarGrid/src/driver/tikzdrv"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/generator"
	"github.com/iafilius/WeightCalendarGrid/src/i18n"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

const defaultLogLevel = "warn"

type options struct {
	begin, end   string
	driver       string
	format       string
	height       float64
	initials     string
	input        string
	lang         string
	mode         string
	output       string
	weight       string
	dpi          int
	keep         bool
	dryRun       bool
	list         bool
	verbose      int
	quiet        int
	showVersion  bool
	logLevel     string
	prefsPath    string
	envFile      string
	savePrefs    bool
	latexTimeout time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd.Name(), err)
	}
	return errs.ExitCode(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "wcg-cli",
		Short: "Plot a weight/calendar grid for easy weight tracking",
		Long: `wcg-cli prints a landscape A4 page with a kg axis, an optional BMI axis and
a calendar axis, ready for marking down daily weights by hand. Recorded values
can be plotted into the page with a moving average.

The weight range (-W) takes one of four forms:
   auto      derive the range from plot data or height
   MIN-MAX   range from MIN kg to MAX kg
   AVG       range containing AVG kg
   AVG+-DEV  range around AVG kg plus/minus DEV kg`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd, o, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	logging.SetOutput(stderr)

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&o.begin, "begin", "b", "", "begin date YYYY-MM-DD (default: first input date, or today if Sunday, or the previous Sunday)")
	f.StringVarP(&o.end, "end", "e", "", "end date YYYY-MM-DD (default: begin date plus 8 weeks)")
	f.StringVarP(&o.driver, "driver", "d", "", "output driver (see --list-options)")
	f.StringVarP(&o.format, "format", "f", "", "output format (default: driver dependent, or from the output file name)")
	f.Float64VarP(&o.height, "height", "H", 0, "height in m; adds a BMI axis and BMI based estimates")
	f.StringVarP(&o.initials, "initials", "I", "", "initials to print in the page corners")
	f.StringVarP(&o.input, "input", "i", "", "plot recorded weights from FILE (text log or .xlsx, - for stdin)")
	f.BoolVarP(&o.keep, "keep", "k", false, "keep temporary files of a failed typesetting run")
	f.StringVarP(&o.lang, "lang", "l", "", "label language "+strings.Join(i18n.Languages(), ", ")+" (default: system locale)")
	f.BoolVarP(&o.list, "list-options", "L", false, "list drivers, formats, languages and plot modes, then exit")
	f.StringVarP(&o.mode, "mode", "m", "", "plot mode: mark or history (default: mark)")
	f.BoolVarP(&o.dryRun, "dry-run", "N", false, "do everything except writing the output file")
	f.StringVarP(&o.output, "output", "o", "-", "output file (default: stdout if not a terminal)")
	f.CountVarP(&o.quiet, "quiet", "q", "less log output (repeatable)")
	f.CountVarP(&o.verbose, "verbose", "v", "more log output (repeatable)")
	f.StringVarP(&o.weight, "weight", "W", "", "weight range in kg (default: auto)")
	f.BoolVarP(&o.showVersion, "version", "V", false, "print the version and exit")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.IntVar(&o.dpi, "dpi", 0, "raster resolution for png, jpeg and webp output")
	f.DurationVar(&o.latexTimeout, "latex-timeout", tikzdrv.DefaultTimeout, "time limit for one typesetting run")
	f.StringVar(&o.prefsPath, "prefs", "", "preferences file (default: "+config.AppDir+"/"+config.PreferencesFile+" in the user config dir)")
	f.StringVar(&o.envFile, "env-file", config.DefaultEnvFile, "file with WCG_* defaults")
	f.BoolVar(&o.savePrefs, "save-prefs", false, "remember height, initials, language and weight range as defaults")
	return cmd
}

func execute(cmd *cobra.Command, o *options, stdout io.Writer) error {
	f := cmd.Flags()

	env, err := config.LoadEnv(o.envFile, f.Changed("env-file"))
	if err != nil {
		return err
	}
	prefsPath := o.prefsPath
	if prefsPath == "" {
		if prefsPath, err = config.DefaultPreferencesPath(); err != nil {
			logging.Warnf("no user config dir: %v", err)
		}
	}
	var prefs config.Preferences
	if prefsPath != "" {
		if prefs, err = config.LoadPreferences(prefsPath); err != nil {
			return err
		}
	}
	eff := prefs.Merge(env).Merge(fromFlags(f.Changed, o))

	level := defaultLogLevel
	if eff.LogLevel != "" {
		level = eff.LogLevel
	}
	if !logging.SetLogLevel(level) {
		return errs.Invalid("unknown log level %q", level)
	}
	logging.AdjustLevel(o.verbose, o.quiet)

	drivers := driver.Options{
		DPI:           eff.DPI,
		Fonts:         eff.Fonts,
		BoldFonts:     eff.BoldFonts,
		LatexCommand:  eff.LatexCommand,
		TempDir:       eff.TempDir,
		Timeout:       o.latexTimeout,
		KeepArtifacts: o.keep,
	}
	if o.list {
		return listOptions(stdout, drivers)
	}

	p := generator.Params{
		Height:   eff.Height,
		Weight:   eff.Weight,
		Input:    eff.Input,
		Mode:     eff.Mode,
		Lang:     eff.Lang,
		Initials: eff.Initials,
		Driver:   eff.Driver,
		Format:   eff.Format,
		Drivers:  drivers,
	}
	if p.Lang == "" {
		p.Lang = systemLang()
	}
	if p.Begin, err = parseDate("begin", o.begin); err != nil {
		return err
	}
	if p.End, err = parseDate("end", o.end); err != nil {
		return err
	}
	if p.Format == "" && p.Driver == "" && o.output != "-" {
		p.Format = formatFromName(o.output, driver.Registry(drivers))
	}

	var w io.Writer
	var lazy *generator.LazyFile
	switch {
	case o.output == "-" || o.output == "":
		if o.dryRun {
			return errs.Invalid("--dry-run cannot be combined with writing to stdout")
		}
		if isTerminal(stdout) {
			return errs.Invalid("refusing to write to a terminal; pipe through cat or set --output")
		}
		w = stdout
	case o.dryRun:
		logging.Infof("dry run, not writing %s", o.output)
		w = io.Discard
	default:
		lazy = &generator.LazyFile{Path: o.output}
		w = lazy
	}

	res, err := generator.Generate(cmd.Context(), p, w)
	if lazy != nil {
		if err != nil {
			lazy.Abort()
		} else if cerr := lazy.Close(); cerr != nil {
			return fmt.Errorf("close %s: %w", o.output, cerr)
		}
	}
	if err != nil {
		return err
	}
	logging.Infof("wrote %s page %s with %s", res.Format, res.Dates, res.Driver)

	if o.savePrefs && prefsPath != "" {
		keep := prefs
		keep.Height, keep.Initials, keep.Lang, keep.Weight = eff.Height, eff.Initials, eff.Lang, eff.Weight
		return config.SavePreferences(prefsPath, keep)
	}
	return nil
}

// fromFlags collects the explicitly given flags as preferences.
func fromFlags(changed func(string) bool, o *options) config.Preferences {
	var p config.Preferences
	if changed("height") {
		p.Height = o.height
	}
	if changed("dpi") {
		p.DPI = o.dpi
	}
	for _, fl := range []struct {
		name string
		dst  *string
		src  string
	}{
		{"weight", &p.Weight, o.weight},
		{"initials", &p.Initials, o.initials},
		{"lang", &p.Lang, o.lang},
		{"mode", &p.Mode, o.mode},
		{"input", &p.Input, o.input},
		{"driver", &p.Driver, o.driver},
		{"format", &p.Format, o.format},
		{"log-level", &p.LogLevel, o.logLevel},
	} {
		if changed(fl.name) {
			*fl.dst = fl.src
		}
	}
	return p
}

func parseDate(which, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return time.Time{}, errs.Invalid("%s date: %v", which, err)
	}
	return d, nil
}

// formatFromName returns the output file's extension when some backend writes it.
func formatFromName(name string, drivers []driver.Driver) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return ""
	}
	for _, d := range drivers {
		if f, err := driver.ResolveFormat(d, ext); err == nil {
			return f
		}
	}
	return ""
}

func systemLang() string {
	lang := config.SystemLang()
	if _, err := i18n.Lookup(lang); err != nil {
		logging.Debugf("locale %q has no catalog, using %s", lang, i18n.DefaultLang)
		return i18n.DefaultLang
	}
	return lang
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func listOptions(w io.Writer, opts driver.Options) error {
	fmt.Fprintln(w, "List of output drivers:")
	for _, line := range strings.Split(strings.TrimRight(driver.Describe(driver.Registry(opts)), "\n"), "\n") {
		fmt.Fprintln(w, "   ", line)
	}
	fmt.Fprintln(w, "List of languages:")
	for _, l := range i18n.Languages() {
		d := ""
		if l == i18n.DefaultLang {
			d = " (program default)"
		}
		fmt.Fprintf(w, "    %s%s\n", l, d)
	}
	fmt.Fprintln(w, "List of plot modes:")
	for _, m := range generator.Modes {
		d := ""
		if m.Name == generator.ModeMark {
			d = " (program default)"
		}
		fmt.Fprintf(w, "    %-8s %s%s\n", m.Name+":", m.Description, d)
	}
	return nil
}
