// Package i18n holds the static text catalogs for the page labels.
package i18n

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/errs"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

// Catalog is the text of one language.
type Catalog struct {
	Lang        string
	Months      [12]string
	MonthAbbrs  [12]string
	KgTitle     string
	BMITitle    string // printf verb for the height in metres
	MarkUsage   string
	HistoryNote string
}

func (c *Catalog) MonthName(m time.Month) string { return c.Months[m-1] }
func (c *Catalog) MonthAbbr(m time.Month) string { return c.MonthAbbrs[m-1] }

// BMIAxisTitle formats the BMI axis title for a height.
func (c *Catalog) BMIAxisTitle(height float64) string { return fmt.Sprintf(c.BMITitle, height) }

var catalogs = map[string]*Catalog{
	"en": {
		Lang: "en",
		Months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		MonthAbbrs: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		KgTitle:     "weight in kg",
		BMITitle:    "BMI for height %.2f m",
		MarkUsage:   "Mark your weight every day with a small cross on the day line. Connect the marks to see the trend.",
		HistoryNote: "recorded weights with 10 day moving average",
	},
	"de": {
		Lang: "de",
		Months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember"},
		MonthAbbrs: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
			"Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
		KgTitle:     "Gewicht in kg",
		BMITitle:    "BMI für Körpergröße %.2f m",
		MarkUsage:   "Tragen Sie Ihr Gewicht täglich mit einem kleinen Kreuz auf der Tageslinie ein. Verbinden Sie die Kreuze, um den Verlauf zu sehen.",
		HistoryNote: "erfasste Gewichte mit gleitendem 10-Tage-Mittel",
	},
}

// Lookup returns the catalog for lang ("de", "de_DE.UTF-8" and "DE" all match).
func Lookup(lang string) (*Catalog, error) {
	key := strings.ToLower(strings.TrimSpace(lang))
	if key == "" {
		key = DefaultLang
	}
	if i := strings.IndexAny(key, "_-."); i > 0 {
		key = key[:i]
	}
	c, ok := catalogs[key]
	if !ok {
		return nil, errs.Invalid("unsupported language %q (have %s)", lang, strings.Join(Languages(), ", "))
	}
	return c, nil
}

// Languages lists the supported language codes.
func Languages() []string {
	out := make([]string, 0, len(catalogs))
	for k := range catalogs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
