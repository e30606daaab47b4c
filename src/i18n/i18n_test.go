package i18n

import (
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "en"},
		{"en", "en"},
		{"DE", "de"},
		{"de_DE.UTF-8", "de"},
		{"en-GB", "en"},
	}
	for _, c := range cases {
		cat, err := Lookup(c.in)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", c.in, err)
		}
		if cat.Lang != c.want {
			t.Fatalf("Lookup(%q)=%s want %s", c.in, cat.Lang, c.want)
		}
	}
	if _, err := Lookup("fr"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
}

func TestMonthNames(t *testing.T) {
	de, _ := Lookup("de")
	if got := de.MonthName(time.March); got != "März" {
		t.Fatalf("MonthName=%q", got)
	}
	if got := de.MonthAbbr(time.October); got != "Okt" {
		t.Fatalf("MonthAbbr=%q", got)
	}
	en, _ := Lookup("en")
	if got := en.BMIAxisTitle(1.75); got != "BMI for height 1.75 m" {
		t.Fatalf("BMIAxisTitle=%q", got)
	}
	if len(Languages()) != 2 {
		t.Fatalf("Languages=%v", Languages())
	}
}
