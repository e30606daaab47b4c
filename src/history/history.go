// Package history reads previously recorded weights.
//
// Text logs have one sample per line, "YYYY-MM-DD KG", optionally followed by more
// fields which are ignored. Blank lines and lines starting with '#' are skipped.
// Workbooks use the first sheet with the date in column A and kg in column B.
package history

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
	"github.com/iafilius/WeightCalendarGrid/src/plot"
)

// ReadFile reads samples from path, choosing the format by extension. "-" is stdin.
func ReadFile(path string) ([]plot.Sample, error) {
	if path == "-" {
		return ReadText(os.Stdin, "<stdin>")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	return ReadText(f, path)
}

// ReadText parses a text log. name is only used in messages.
func ReadText(r io.Reader, name string) ([]plot.Sample, error) {
	var out []plot.Sample
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errs.Invalid("%s:%d: want date and weight, got %q", name, lineNo, line)
		}
		s, err := sample(fields[0], fields[1])
		if err != nil {
			return nil, errs.Invalid("%s:%d: %v", name, lineNo, err)
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	logging.Infof("read %d samples from %s", len(out), name)
	return out, nil
}

func sample(dateStr, kgStr string) (plot.Sample, error) {
	d, err := calendar.Parse(dateStr)
	if err != nil {
		return plot.Sample{}, err
	}
	kg, err := strconv.ParseFloat(kgStr, 64)
	if err != nil || kg <= 0 {
		return plot.Sample{}, fmt.Errorf("bad weight %q", kgStr)
	}
	return plot.Sample{Date: d, Kg: kg}, nil
}

// ReadXLSX parses the first sheet of a workbook. Dates may be real date cells or
// ISO text. A first row that does not start with a date is taken as a header.
func ReadXLSX(path string) ([]plot.Sample, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.Invalid("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var out []plot.Sample
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 2 {
			return nil, errs.Invalid("%s row %d: want date and weight", path, i+1)
		}
		s, err := cellSample(row[0], row[1])
		if err != nil {
			if i == 0 {
				logging.Debugf("%s: skipping header row %v", path, row)
				continue
			}
			return nil, errs.Invalid("%s row %d: %v", path, i+1, err)
		}
		out = append(out, s)
	}
	logging.Infof("read %d samples from %s", len(out), path)
	return out, nil
}

func cellSample(dateCell, kgCell string) (plot.Sample, error) {
	dateCell, kgCell = strings.TrimSpace(dateCell), strings.TrimSpace(kgCell)
	if serial, err := strconv.ParseFloat(dateCell, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return plot.Sample{}, fmt.Errorf("bad date serial %q: %w", dateCell, err)
		}
		dateCell = t.Format(calendar.ISODate)
	}
	return sample(dateCell, kgCell)
}
