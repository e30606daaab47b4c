// Package weightspec parses the weight range expressions accepted on the command line:
//
//	auto       derive the range from height or history
//	MIN-MAX    explicit range, MIN < MAX
//	AVG        a single weight; the fitter widens it
//	AVG+-DEV   AVG-DEV .. AVG+DEV, 0 <= DEV < AVG
package weightspec

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iafilius/WeightCalendarGrid/src/errs"
)

// Range is a parsed weight range. Auto ranges carry no bounds.
type Range struct {
	Min  float64
	Max  float64
	Auto bool
}

func (r Range) String() string {
	if r.Auto {
		return "auto"
	}
	return decimal.NewFromFloat(r.Min).String() + "-" + decimal.NewFromFloat(r.Max).String()
}

// Parse reads a weight range expression.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return Range{Auto: true}, nil
	}
	if avgStr, devStr, ok := strings.Cut(s, "+-"); ok {
		avg, err := number(avgStr, s)
		if err != nil {
			return Range{}, err
		}
		dev, err := number(devStr, s)
		if err != nil {
			return Range{}, err
		}
		if !dev.LessThan(avg) {
			return Range{}, errs.Invalid("weight range %q: deviation must be below the average", s)
		}
		return Range{Min: avg.Sub(dev).InexactFloat64(), Max: avg.Add(dev).InexactFloat64()}, nil
	}
	if minStr, maxStr, ok := strings.Cut(s, "-"); ok {
		lo, err := number(minStr, s)
		if err != nil {
			return Range{}, err
		}
		hi, err := number(maxStr, s)
		if err != nil {
			return Range{}, err
		}
		if !lo.IsPositive() || !lo.LessThan(hi) {
			return Range{}, errs.Invalid("weight range %q: minimum must be below maximum", s)
		}
		return Range{Min: lo.InexactFloat64(), Max: hi.InexactFloat64()}, nil
	}
	avg, err := number(s, s)
	if err != nil {
		return Range{}, err
	}
	if !avg.IsPositive() {
		return Range{}, errs.Invalid("weight range %q: weight must be positive", s)
	}
	v := avg.InexactFloat64()
	return Range{Min: v, Max: v}, nil
}

func number(part, whole string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(part))
	if err != nil {
		return decimal.Decimal{}, errs.Invalid("weight range %q: %q is not a number", whole, part)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errs.Invalid("weight range %q: weights must not be negative", whole)
	}
	return d, nil
}
