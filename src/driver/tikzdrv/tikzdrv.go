// Package tikzdrv writes the grid as a TikZ picture and typesets it with pdflatex.
package tikzdrv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/layout"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

const (
	DefaultCommand = "pdflatex"
	DefaultTimeout = 300 * time.Second

	jobName = "grid"
	// pdflatex resolves references on the second pass
	passes = 2
	// trailing output lines kept in errors
	outputTail = 20
)

type Config struct {
	Command string
	TempDir string
	Timeout time.Duration
	// KeepArtifacts keeps the work directory after a failed run.
	KeepArtifacts bool
}

type Driver struct {
	cfg Config
}

func New(cfg Config) *Driver {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Driver{cfg: cfg}
}

func (d *Driver) Name() string { return "tikz" }

// Formats: tex is the generated source and needs no typesetter.
func (d *Driver) Formats() []string { return []string{"pdf", "tex"} }

func (d *Driver) Available() error {
	if _, err := exec.LookPath(d.cfg.Command); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUnavailable, err)
	}
	return nil
}

func (d *Driver) Render(ctx context.Context, l *layout.Layout, format string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if format != "pdf" && format != "tex" {
		return errs.Invalid("tikz driver cannot write %q", format)
	}
	c := &canvas{}
	c.Composer = layout.Composer{P: c}
	if err := l.Render(c); err != nil {
		return err
	}
	if format == "tex" {
		_, err := w.Write(c.buf.Bytes())
		return err
	}
	return d.typeset(ctx, c.buf.Bytes(), w)
}

// typeset runs the command in a fresh work directory and copies the PDF to w.
func (d *Driver) typeset(ctx context.Context, src []byte, w io.Writer) (err error) {
	defer logging.TimeTrack(time.Now(), "typeset")
	dir, err := os.MkdirTemp(d.cfg.TempDir, "wcg-"+uuid.New().String()+"-")
	if err != nil {
		return fmt.Errorf("work dir: %w", err)
	}
	keep := false
	defer func() {
		if keep {
			logging.Warnf("keeping work dir %s", dir)
			return
		}
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logging.Warnf("remove work dir %s: %v", dir, rmErr)
		}
	}()

	texFile := filepath.Join(dir, jobName+".tex")
	if err := os.WriteFile(texFile, src, 0o644); err != nil {
		return fmt.Errorf("write source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()
	for pass := 1; pass <= passes; pass++ {
		cmd := exec.CommandContext(ctx, d.cfg.Command,
			"-interaction=nonstopmode", "-halt-on-error", "-jobname="+jobName, jobName+".tex")
		cmd.Dir = dir
		cmd.WaitDelay = time.Second
		logging.Debugf("%s pass %d in %s", d.cfg.Command, pass, dir)
		out, runErr := cmd.CombinedOutput()
		if runErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				runErr = fmt.Errorf("%w (after %s)", ctxErr, d.cfg.Timeout)
			}
			keep = d.cfg.KeepArtifacts
			te := errs.NewExternalToolError(d.cfg.Command, summarize(out), runErr)
			if keep {
				te.Dir = dir
			}
			return te
		}
	}

	f, err := os.Open(filepath.Join(dir, jobName+".pdf"))
	if err != nil {
		keep = d.cfg.KeepArtifacts
		return errs.NewExternalToolError(d.cfg.Command, "", fmt.Errorf("no output: %w", err))
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy pdf: %w", err)
	}
	return nil
}

var (
	lineRef      = regexp.MustCompile(`(?m)^l\.(\d+)`)
	reportedLine = regexp.MustCompile(`^error at source line (\d+)`)
)

// summarize keeps the tail of the log and names the offending source line.
func summarize(out []byte) string {
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) > outputTail {
		lines = lines[len(lines)-outputTail:]
	}
	s := strings.Join(lines, "\n")
	if m := lineRef.FindSubmatch(out); m != nil {
		s = fmt.Sprintf("error at source line %s\n%s", m[1], s)
	}
	return s
}

// ErrorLine extracts the source line reported by pdflatex, or 0.
func ErrorLine(err error) int {
	var te *errs.ExternalToolError
	if !errors.As(err, &te) {
		return 0
	}
	var n int
	if m := reportedLine.FindStringSubmatch(te.Output); m != nil {
		fmt.Sscanf(m[1], "%d", &n)
	}
	return n
}

// canvas emits TikZ commands. The picture uses mm with y pointing down so page
// coordinates are used unchanged.
type canvas struct {
	layout.Composer
	buf     bytes.Buffer
	defined map[string]bool
}

func (c *canvas) printf(format string, args ...any) {
	fmt.Fprintf(&c.buf, format, args...)
}

func (c *canvas) BeginPage(p layout.Page) error {
	c.buf.Reset()
	c.defined = nil
	c.printf(`\documentclass{article}
\usepackage[paperwidth=%smm,paperheight=%smm,margin=0mm]{geometry}
\usepackage[T1]{fontenc}
\usepackage[utf8]{inputenc}
\usepackage{lmodern}
\usepackage{tikz}
\renewcommand{\familydefault}{\sfdefault}
\pagestyle{empty}
\begin{document}
\noindent\begin{tikzpicture}[x=1mm,y=-1mm,line cap=rect]
\useasboundingbox (0,0) rectangle (%s,%s);
`, num(p.Width), num(p.Height), num(p.Width), num(p.Height))
	return nil
}

func (c *canvas) EndPage() error {
	c.printf("\\end{tikzpicture}\n\\end{document}\n")
	return nil
}

func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func coord(p layout.Point) string { return "(" + num(p.X) + "," + num(p.Y) + ")" }

// color names col, defining it on first use.
func (c *canvas) color(col axis.Color) string {
	hex := col.Hex()
	name := "c" + hex
	if !c.defined[hex] {
		if c.defined == nil {
			c.defined = map[string]bool{}
		}
		c.defined[hex] = true
		c.printf("\\definecolor{%s}{HTML}{%s}\n", name, hex)
	}
	return name
}

func (c *canvas) FillRect(o layout.Point, w, h float64, col axis.Color) {
	c.printf("\\fill[color=%s] %s rectangle %s;\n", c.color(col), coord(o), coord(layout.Point{X: o.X + w, Y: o.Y + h}))
}

func (c *canvas) DrawLine(a, b layout.Point, h layout.LineHints) {
	c.printf("\\draw[color=%s,line width=%smm] %s -- %s;\n", c.color(h.Color), num(h.Width), coord(a), coord(b))
}

func (c *canvas) DrawCircle(center layout.Point, r float64, fill *axis.Color, h layout.LineHints) {
	switch {
	case fill != nil && h.Width > 0:
		c.printf("\\filldraw[fill=%s,draw=%s,line width=%smm] %s circle[radius=%smm];\n",
			c.color(*fill), c.color(h.Color), num(h.Width), coord(center), num(r))
	case fill != nil:
		c.printf("\\fill[color=%s] %s circle[radius=%smm];\n", c.color(*fill), coord(center), num(r))
	default:
		c.printf("\\draw[color=%s,line width=%smm] %s circle[radius=%smm];\n",
			c.color(h.Color), num(h.Width), coord(center), num(r))
	}
}

// nodeAnchor maps the anchor of the rotated box to the TikZ anchor of the text
// node, which rotates with the text.
func nodeAnchor(a layout.Anchor, rotate int) string {
	if rotate%180 == 0 {
		switch a {
		case layout.AnchorLeft:
			return "west"
		case layout.AnchorRight:
			return "east"
		case layout.AnchorTop:
			return "north"
		case layout.AnchorBottom:
			return "south"
		case layout.AnchorBottomLeft:
			return "south west"
		}
		return "center"
	}
	switch a {
	case layout.AnchorLeft:
		return "north"
	case layout.AnchorRight:
		return "south"
	case layout.AnchorTop:
		return "east"
	case layout.AnchorBottom:
		return "west"
	case layout.AnchorBottomLeft:
		return "north west"
	}
	return "center"
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

func (c *canvas) DrawText(p layout.Point, text string, h layout.TextHints) {
	if text == "" {
		return
	}
	opts := []string{
		"anchor=" + nodeAnchor(h.Anchor, h.Rotate),
		"text=" + c.color(h.Color),
		"inner sep=0pt",
	}
	if h.Rotate != 0 {
		opts = append(opts, fmt.Sprintf("rotate=%d", h.Rotate))
	}
	if h.Background != nil {
		opts = append(opts, "fill="+c.color(*h.Background), "inner sep=0.3mm")
	}
	font := fmt.Sprintf(`\fontsize{%s}{%s}\selectfont`, num(h.Size), num(h.Size*1.2))
	if h.Bold {
		font += `\bfseries`
	}
	c.printf("\\node[%s] at %s {%s %s};\n", strings.Join(opts, ","), coord(p), font, texEscaper.Replace(text))
}
