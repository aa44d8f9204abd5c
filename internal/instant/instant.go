package instant

import (
	"strconv"
	"strings"
	"time"
)

// Usage lists the accepted FROM/TO formats.
const Usage = "valid values for FROM/TO are condensed ISO8601 UTC datetime '20160201T130405', relative 'now-5m', or unix epoch '1678864718'"

// compactLayout is the length reference for the condensed datetime form.
const compactLayout = "20160201T130405"

// Window is a query range in seconds since the UTC epoch.
type Window struct {
	From int64
	To   int64
}

// Span returns To - From in seconds.
func (w Window) Span() int64 {
	return w.To - w.From
}

// FromTime returns the window start as a UTC time.
func (w Window) FromTime() time.Time {
	return time.Unix(w.From, 0).UTC()
}

// ToTime returns the window end as a UTC time.
func (w Window) ToTime() time.Time {
	return time.Unix(w.To, 0).UTC()
}

var units = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 60 * 60,
	'd': 60 * 60 * 24,
	'y': 60 * 60 * 24 * 365,
}

// Parse converts a time specifier into seconds since the UTC epoch.
//
// Accepted forms, tried in order:
//   - unix epoch seconds: "1678864718"
//   - condensed UTC datetime: "20160201T130405"
//   - relative to now: "now", "now-5m", "now + 2h"
//
// The second return value is false when in matches none of them.
func Parse(in string, now int64) (int64, bool) {
	in = strings.TrimSpace(in)
	switch {
	case isDigits(in):
		t, err := strconv.ParseInt(in, 10, 64)
		if err != nil {
			return 0, false
		}
		return t, true
	case len(in) == len(compactLayout) && in[8] == 'T':
		return parseCompact(in)
	case strings.HasPrefix(in, "now"):
		return parseRelative(in[len("now"):], now)
	default:
		return 0, false
	}
}

// parseCompact slices YYYYMMDDTHHMMSS positionally. Fields outside their
// calendar range are normalized the way timegm does.
func parseCompact(in string) (int64, bool) {
	fields := []string{in[0:4], in[4:6], in[6:8], in[9:11], in[11:13], in[13:15]}
	var v [6]int
	for i, f := range fields {
		if !isDigits(f) {
			return 0, false
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, false
		}
		v[i] = n
	}
	t := time.Date(v[0], time.Month(v[1]), v[2], v[3], v[4], v[5], 0, time.UTC)
	return t.Unix(), true
}

func parseRelative(rest string, now int64) (int64, bool) {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" {
		return now, true
	}

	var sign int64
	switch rest[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, false
	}

	unit, ok := units[rest[len(rest)-1]]
	if !ok || len(rest) < 2 {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(rest[1:len(rest)-1]), 10, 64)
	if err != nil {
		return 0, false
	}
	return now + sign*n*unit, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
