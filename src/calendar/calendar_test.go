package calendar

import (
	"testing"
	"time"
)

func TestLatestSunday(t *testing.T) {
	start := Day(2015, time.November, 1)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		s := LatestSunday(d)
		if s.Weekday() != time.Sunday {
			t.Fatalf("LatestSunday(%s)=%s is a %s", d.Format(ISODate), s.Format(ISODate), s.Weekday())
		}
		if s.After(d) {
			t.Fatalf("LatestSunday(%s)=%s is after input", d.Format(ISODate), s.Format(ISODate))
		}
		// closest: no Sunday strictly between s and d
		for c := s.AddDate(0, 0, 1); !c.After(d); c = c.AddDate(0, 0, 1) {
			if c.Weekday() == time.Sunday {
				t.Fatalf("LatestSunday(%s)=%s skipped Sunday %s", d.Format(ISODate), s.Format(ISODate), c.Format(ISODate))
			}
		}
	}
}

func TestEarliestSunday(t *testing.T) {
	cases := []struct{ in, want time.Time }{
		{Day(2015, time.November, 22), Day(2015, time.November, 22)},
		{Day(2015, time.November, 23), Day(2015, time.November, 29)},
		{Day(2015, time.November, 28), Day(2015, time.November, 29)},
		{Day(2015, time.December, 31), Day(2016, time.January, 3)},
	}
	for _, c := range cases {
		if got := EarliestSunday(c.in); !got.Equal(c.want) {
			t.Fatalf("EarliestSunday(%s)=%s want %s", c.in.Format(ISODate), got.Format(ISODate), c.want.Format(ISODate))
		}
	}
}

func TestMonthBoundaries(t *testing.T) {
	d := Day(2016, time.February, 17)
	if got := LatestFirst(d); !got.Equal(Day(2016, time.February, 1)) {
		t.Fatalf("LatestFirst=%s", got)
	}
	if got := NextFirst(d); !got.Equal(Day(2016, time.March, 1)) {
		t.Fatalf("NextFirst=%s", got)
	}
	if got := NextFirst(Day(2015, time.December, 5)); !got.Equal(Day(2016, time.January, 1)) {
		t.Fatalf("NextFirst across year=%s", got)
	}
	if !IsLastDayOfMonth(Day(2016, time.February, 29)) || IsLastDayOfMonth(Day(2015, time.February, 27)) {
		t.Fatalf("IsLastDayOfMonth wrong around February")
	}
	if !IsFirstDayOfYear(Day(2016, time.January, 1)) || !IsLastDayOfYear(Day(2015, time.December, 31)) {
		t.Fatalf("year boundary checks wrong")
	}
}

func TestDateRangeDays(t *testing.T) {
	r := DateRange{Begin: Day(2015, time.November, 22), End: Day(2016, time.January, 17)}
	if r.Days() != 56 {
		t.Fatalf("Days=%d want 56", r.Days())
	}
	if !r.Valid() || !r.Contains(Day(2015, time.December, 24)) || r.Contains(Day(2016, time.January, 18)) {
		t.Fatalf("range checks wrong for %s", r)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2016-01-17")
	if err != nil || !d.Equal(Day(2016, time.January, 17)) {
		t.Fatalf("Parse: %v %v", d, err)
	}
	if _, err := Parse("17.01.2016"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}
