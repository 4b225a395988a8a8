package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	relativeRegex = regexp.MustCompile(`(?i)\b(\d+)\s*(minute|hour|day|week|month)s?\s+ago\b`)
)

//parsePostedDate turns whatever the page exposes for a listing date into a
//timestamp. Accepted inputs, in order: unix milliseconds, ISO dates and
//relative phrases like "3 days ago". Anything else yields the zero time.
func parsePostedDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	//case 1: unix milliseconds from a data attribute
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms)
	}

	//case 2: ISO format "2026-08-20" or "2026-08-20T..."
	if isoDateRegex.MatchString(raw) {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t
		}
	}

	//case 3: relative phrasing from the card text
	if m := relativeRegex.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		var unit time.Duration
		switch strings.ToLower(m[2]) {
		case "minute":
			unit = time.Minute
		case "hour":
			unit = time.Hour
		case "day":
			unit = 24 * time.Hour
		case "week":
			unit = 7 * 24 * time.Hour
		case "month":
			unit = 30 * 24 * time.Hour
		}
		return time.Now().Add(-time.Duration(n) * unit)
	}

	return time.Time{}
}
