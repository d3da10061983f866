package datefmt

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// Locales understood by the formatter. The first entry is the default.
const (
	LocaleFR = "fr"
	LocaleEN = "en"
)

var locales = map[string]monday.Locale{
	LocaleFR: monday.LocaleFrFR,
	LocaleEN: monday.LocaleEnUS,
}

// Formatter renders dates with localized month and weekday names.
// Layouts use Go reference-time notation ("02 Jan 2006").
type Formatter struct{}

// New returns a Formatter.
func New() *Formatter {
	return &Formatter{}
}

// frShortMonths are the abbreviated French month names with their
// abbreviation dot ("janv.", "févr."), which monday's fr_FR table omits.
var frShortMonths = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// Format renders t with layout in locale. Unknown locales fall back to French.
func (f *Formatter) Format(t time.Time, layout, locale string) string {
	loc := resolve(locale)
	if loc != monday.LocaleFrFR {
		return monday.Format(t, layout, loc)
	}

	var b strings.Builder
	for {
		i := shortMonthIndex(layout)
		if i < 0 {
			break
		}
		if i > 0 {
			b.WriteString(monday.Format(t, layout[:i], loc))
		}
		b.WriteString(frShortMonths[t.Month()-1])
		layout = layout[i+len("Jan"):]
	}
	if layout != "" {
		b.WriteString(monday.Format(t, layout, loc))
	}
	return b.String()
}

// shortMonthIndex returns the offset of the first "Jan" token that is not
// part of "January", or -1.
func shortMonthIndex(layout string) int {
	off := 0
	for {
		i := strings.Index(layout[off:], "Jan")
		if i < 0 {
			return -1
		}
		i += off
		if !strings.HasPrefix(layout[i:], "January") {
			return i
		}
		off = i + len("January")
	}
}

// Supported reports whether locale has a translation table.
func Supported(locale string) bool {
	_, ok := locales[Normalize(locale)]
	return ok
}

func resolve(locale string) monday.Locale {
	if l, ok := locales[Normalize(locale)]; ok {
		return l
	}
	return monday.LocaleFrFR
}

// Normalize maps "fr-FR", "fr_FR" and "FR" to "fr".
func Normalize(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	return l
}
