// Package driver enumerates the render backends and picks one at startup.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/driver/chartdrv"
	"github.com/iafilius/WeightCalendarGrid/src/driver/rasterdrv"
	"github.com/iafilius/WeightCalendarGrid/src/driver/tikzdrv"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/layout"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

// Driver renders a laid out page in one of its formats.
type Driver interface {
	Name() string
	// Formats lists the supported output formats, default first.
	Formats() []string
	// Available returns nil when the backend can render on this machine.
	Available() error
	Render(ctx context.Context, l *layout.Layout, format string, w io.Writer) error
}

// Options configure all backends; each takes the fields it understands.
type Options struct {
	DPI           int
	Fonts         []string
	BoldFonts     []string
	LatexCommand  string
	TempDir       string
	Timeout       time.Duration
	KeepArtifacts bool
}

// Registry returns the backends in preference order.
func Registry(o Options) []Driver {
	return []Driver{
		tikzdrv.New(tikzdrv.Config{
			Command:       o.LatexCommand,
			TempDir:       o.TempDir,
			Timeout:       o.Timeout,
			KeepArtifacts: o.KeepArtifacts,
		}),
		chartdrv.New(chartdrv.Config{DPI: o.DPI, Fonts: o.Fonts, BoldFonts: o.BoldFonts}),
		rasterdrv.New(rasterdrv.Config{DPI: o.DPI}),
	}
}

// Names lists the registered backend names.
func Names(drivers []Driver) []string {
	out := make([]string, len(drivers))
	for i, d := range drivers {
		out[i] = d.Name()
	}
	return out
}

// Resolve returns the named backend, or the first available one when name is
// empty. An unavailable backend is replaced by the next available one in order.
func Resolve(drivers []Driver, name string) (Driver, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	start := -1
	if name != "" {
		for i, d := range drivers {
			if d.Name() == name {
				start = i
				break
			}
		}
		if start < 0 {
			return nil, errs.Invalid("unknown driver %q (have %s)", name, strings.Join(Names(drivers), ", "))
		}
		err := drivers[start].Available()
		if err == nil {
			return drivers[start], nil
		}
		logging.Warnf("driver %s unavailable: %v", name, err)
	}

	var failures []error
	for i, d := range drivers {
		if i == start {
			continue
		}
		err := d.Available()
		if err == nil {
			if name != "" {
				logging.Warnf("falling back to driver %s", d.Name())
			}
			return d, nil
		}
		logging.Debugf("driver %s unavailable: %v", d.Name(), err)
		failures = append(failures, fmt.Errorf("%s: %w", d.Name(), err))
	}
	return nil, fmt.Errorf("%w: no render driver available: %w", errs.ErrUnavailable, errors.Join(failures...))
}

// ResolveFormat checks format against the backend; empty selects its default.
func ResolveFormat(d Driver, format string) (string, error) {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	formats := d.Formats()
	if format == "" {
		return formats[0], nil
	}
	if format == "jpg" {
		format = "jpeg"
	}
	for _, f := range formats {
		if f == format {
			return f, nil
		}
	}
	return "", errs.Invalid("driver %s cannot write %q (supports %s)", d.Name(), format, strings.Join(formats, ", "))
}

// ForFormat picks the first available backend that writes format.
func ForFormat(drivers []Driver, format string) (Driver, error) {
	for _, d := range drivers {
		if _, err := ResolveFormat(d, format); err != nil {
			continue
		}
		if err := d.Available(); err != nil {
			logging.Debugf("driver %s unavailable for %s: %v", d.Name(), format, err)
			continue
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: no available driver writes %q", errs.ErrUnavailable, format)
}

// Describe renders the driver list for --list-options.
func Describe(drivers []Driver) string {
	var b strings.Builder
	for _, d := range drivers {
		status := "available"
		if err := d.Available(); err != nil {
			status = "unavailable: " + err.Error()
		}
		fmt.Fprintf(&b, "%-7s formats: %-16s (%s)\n", d.Name(), strings.Join(d.Formats(), ","), status)
	}
	return b.String()
}
