package utils

import (
	"strings"
	"time"
)

// releaseDateFormats are the storefront date spellings seen in the wild,
// tried in order. The CJK layout comes first because the default storefront
// locale renders dates that way.
var releaseDateFormats = []string{
	"2006 年 1 月 2 日",
	"2 Jan, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"2006",
}

// ParseReleaseDate parses a storefront release-date string. Placeholder
// values such as "Coming soon" or "TBA" and anything unparseable report
// absent rather than an error.
func ParseReleaseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	switch strings.ToLower(text) {
	case "coming soon", "tba":
		return time.Time{}, false
	}
	for _, layout := range releaseDateFormats {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatEpoch renders an epoch-second timestamp in the given location as an
// ISO date (dateOnly) or RFC 3339 datetime. A zero epoch means the upstream
// never recorded the event and renders as empty.
func FormatEpoch(epoch int64, loc *time.Location, dateOnly bool) string {
	if epoch <= 0 {
		return ""
	}
	t := time.Unix(epoch, 0).In(loc)
	if dateOnly {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// SameTimestamp reports whether two date-property strings denote the same
// instant. The store normalizes written datetimes into its own spelling
// (fractional seconds, numeric offset), so byte equality is only a fast path;
// otherwise both sides are parsed and compared as instants. Strings that
// parse on neither side compare equal only byte-for-byte.
func SameTimestamp(a, b string) bool {
	if a == b {
		return true
	}
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.Equal(tb)
}

// DayOf returns the calendar day of t in loc as an ISO date string.
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
