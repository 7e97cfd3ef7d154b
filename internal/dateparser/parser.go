// Package dateparser converts hearing date/time cells into canonical
// timestamps.
//
// A cell is either a native timestamp, returned unchanged, or free text in the
// Spanish long form used by the court calendar, for example
// "21 de enero de 2026 2:00 PM". Text is normalised, matched against the
// strict day/month/year 12-hour layout and, failing that, handed to a
// permissive parser. Nothing here returns an error: a value that cannot be
// resolved yields Unparseable and the caller decides what to drop. Dates that
// do not exist in the calendar, such as 31 September, are unparseable.
package dateparser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Result is the outcome of Parse. The zero value is Unparseable.
type Result struct {
	t  time.Time
	ok bool
}

// Unparseable is the sentinel result for values that yield no timestamp.
var Unparseable = Result{}

// Parsed wraps a resolved timestamp.
func Parsed(t time.Time) Result {
	return Result{t: t, ok: true}
}

// OK reports whether the result carries a timestamp.
func (r Result) OK() bool { return r.ok }

// Time returns the parsed timestamp, or the zero time when unparseable.
func (r Result) Time() time.Time { return r.t }

// Value returns the timestamp together with the OK flag.
func (r Result) Value() (time.Time, bool) { return r.t, r.ok }

func (r Result) String() string {
	if !r.ok {
		return "unparseable"
	}
	return r.t.Format("2006-01-02 15:04:05")
}

type month struct {
	name   string
	number string
}

// months is ordered; "setiembre" is accepted as the ninth month alongside
// "septiembre".
var months = []month{
	{"enero", "01"},
	{"febrero", "02"},
	{"marzo", "03"},
	{"abril", "04"},
	{"mayo", "05"},
	{"junio", "06"},
	{"julio", "07"},
	{"agosto", "08"},
	{"septiembre", "09"},
	{"setiembre", "09"},
	{"octubre", "10"},
	{"noviembre", "11"},
	{"diciembre", "12"},
}

// MonthNumber returns the two digit month for a Spanish month name.
func MonthNumber(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range months {
		if m.name == name {
			return m.number, true
		}
	}
	return "", false
}

// MonthName returns the canonical Spanish name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	want := fmt.Sprintf("%02d", int(m))
	for _, entry := range months {
		if entry.number == want {
			return entry.name
		}
	}
	return ""
}

// Format renders t in the long Spanish form accepted by Parse, for example
// "21 de enero de 2026 2:00 PM".
func Format(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d %s", t.Day(), MonthName(t.Month()), t.Year(), t.Format("3:04 PM"))
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	strict     = regexp.MustCompile(`^(\d{1,2})/(\d{2})/(\d{4}) (\d{1,2}):(\d{2}) (AM|PM)$`)
)

// Parser resolves cells in a fixed location. Text without an explicit zone is
// interpreted as wall clock time in that location.
type Parser struct {
	location *time.Location
}

// New returns a parser for loc. A nil loc means UTC.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{location: loc}
}

// Location reports the zone used for text values.
func (p *Parser) Location() *time.Location {
	if p == nil || p.location == nil {
		return time.UTC
	}
	return p.location
}

var defaultParser = New(time.UTC)

// Parse resolves value with a UTC parser.
func Parse(value any) Result {
	return defaultParser.Parse(value)
}

// Parse resolves a single cell.
func (p *Parser) Parse(value any) Result {
	switch v := value.(type) {
	case nil:
		return Unparseable
	case time.Time:
		if v.IsZero() {
			return Unparseable
		}
		return Parsed(v)
	case *time.Time:
		if v == nil || v.IsZero() {
			return Unparseable
		}
		return Parsed(*v)
	case []byte:
		return p.ParseText(string(v))
	case string:
		return p.ParseText(v)
	default:
		return p.ParseText(fmt.Sprint(v))
	}
}

// ParseText runs the text path: normalise, strict layout, permissive fallback.
func (p *Parser) ParseText(text string) Result {
	normalized := Normalize(text)
	if normalized == "" {
		return Unparseable
	}
	t, err := p.parseStrict(normalized)
	switch {
	case err == nil:
		return Parsed(t)
	case errors.Is(err, errNoSuchDay):
		return Unparseable
	}
	t, err = dateparse.ParseIn(normalized, p.Location(), dateparse.PreferMonthFirst(false))
	if err != nil || t.IsZero() {
		return Unparseable
	}
	return Parsed(t)
}

// Normalize lowercases and trims text, collapses whitespace, rewrites
// " de <mes> de " to "/MM/" and upper-cases the meridiem marker.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespace.ReplaceAllString(s, " ")
	for _, m := range months {
		s = strings.ReplaceAll(s, " de "+m.name+" de ", "/"+m.number+"/")
	}
	s = strings.ReplaceAll(s, " am", " AM")
	s = strings.ReplaceAll(s, " pm", " PM")
	return s
}

var (
	errNoMatch   = errors.New("dateparser: text does not match the strict layout")
	errNoSuchDay = errors.New("dateparser: day does not exist in month")
)

// parseStrict accepts D/MM/YYYY h:MM AM|PM. A day past the end of its month
// yields errNoSuchDay and is not retried by the permissive parser.
func (p *Parser) parseStrict(s string) (time.Time, error) {
	m := strict.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, errNoMatch
	}
	day, _ := strconv.Atoi(m[1])
	mon, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	if day < 1 || day > 31 || mon < 1 || mon > 12 || hour < 1 || hour > 12 || minute > 59 {
		return time.Time{}, errNoMatch
	}

	switch {
	case m[6] == "AM" && hour == 12:
		hour = 0
	case m[6] == "PM" && hour != 12:
		hour += 12
	}

	t := time.Date(year, time.Month(mon), day, hour, minute, 0, 0, p.Location())
	if t.Day() != day || t.Month() != time.Month(mon) {
		return time.Time{}, errNoSuchDay
	}
	return t, nil
}
