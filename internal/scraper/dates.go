package scraper

import (
	"strconv"
	"strings"
	"time"
)

// parseDateRange understands listing date strings such as
// "Sep 12 - 14, 2026", "Sep 28 - Oct 02, 2026" and "Sep 12, 2026".
func parseDateRange(s string) (time.Time, time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, time.Time{}, false
	}

	comma := strings.LastIndex(s, ",")
	if comma < 0 {
		return time.Time{}, time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(s[comma+1:]))
	if err != nil || year < 2000 {
		return time.Time{}, time.Time{}, false
	}

	rangePart := strings.TrimSpace(s[:comma])
	halves := strings.SplitN(rangePart, "-", 2)

	start, ok := parseMonthDay(strings.TrimSpace(halves[0]), year)
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	end := start
	if len(halves) == 2 {
		endRaw := strings.TrimSpace(halves[1])
		if e, ok := parseMonthDay(endRaw, year); ok {
			end = e
		} else if day, err := strconv.Atoi(endRaw); err == nil {
			// bare day number inherits the start month
			end = time.Date(year, start.Month(), day, 0, 0, 0, 0, time.UTC)
		} else {
			return time.Time{}, time.Time{}, false
		}
	}

	if end.Before(start) {
		end = start
	}
	return start, end, true
}

func parseMonthDay(s string, year int) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimPrefix(fields[1], "0"))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month, ok := monthByName(fields[0])
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

func monthByName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) > 3 {
		name = name[:3]
	}
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()[:3]) == name {
			return m, true
		}
	}
	return 0, false
}
