package dataset

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var isoDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate converts the heterogeneous date encodings found in ticket
// exports into a time.Time. Accepted, in priority order: YYYY-MM-DD
// (midnight local), ISO-8601 instants (any string containing both 'T'
// and '-'), and DD/MM/YYYY with an optional HH:MM:SS suffix. Empty
// strings, the "N/A" sentinel and anything else return ok=false;
// callers exclude such tickets from date computation instead of
// treating it as an error.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "N/A" {
		return time.Time{}, false
	}

	if isoDateOnly.MatchString(s) {
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			return t, true
		}
	}

	if strings.Contains(s, "T") && strings.Contains(s, "-") {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}

	if t, ok := parseDayMonthYear(s); ok {
		return t, true
	}

	zap.L().Debug("unparseable date string", zap.String("raw", raw))
	return time.Time{}, false
}

func parseDayMonthYear(s string) (time.Time, bool) {
	parts := strings.SplitN(s, " ", 2)
	dmy := strings.Split(parts[0], "/")
	if len(dmy) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(dmy[0])
	month, err2 := strconv.Atoi(dmy[1])
	year, err3 := strconv.Atoi(dmy[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	var hour, minute, second int
	if len(parts) == 2 {
		hms := strings.Split(strings.TrimSpace(parts[1]), ":")
		// Missing time components default to zero.
		if len(hms) > 0 {
			hour, _ = strconv.Atoi(hms[0])
		}
		if len(hms) > 1 {
			minute, _ = strconv.Atoi(hms[1])
		}
		if len(hms) > 2 {
			second, _ = strconv.Atoi(hms[2])
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	return t, true
}

// TruncateToDay zeroes the time-of-day portion, keeping the calendar
// date in the instant's location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
