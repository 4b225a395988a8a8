// Map free-text filter values to the site's canonical query codes
// Normalization never fails: unrecognized values pass through unchanged

package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

var (
	jobTypeCodes = map[string]string{
		"full-time":  "F",
		"fulltime":   "F",
		"full time":  "F",
		"part-time":  "P",
		"parttime":   "P",
		"part time":  "P",
		"contract":   "C",
		"temporary":  "T",
		"temp":       "T",
		"volunteer":  "V",
		"internship": "I",
		"intern":     "I",
	}

	experienceCodes = map[string]string{
		"internship":  "1",
		"entry":       "2",
		"entry level": "2",
		"entry-level": "2",
		"associate":   "3",
		"mid":         "4",
		"mid-senior":  "4",
		"mid senior":  "4",
		"senior":      "4",
		"director":    "5",
		"executive":   "6",
	}

	remoteCodes = map[string]string{
		"on-site": "1",
		"onsite":  "1",
		"on site": "1",
		"remote":  "2",
		"hybrid":  "3",
	}

	//"any time" maps to the empty string: no recency constraint at all
	datePostedCodes = map[string]string{
		"past 24 hours": "r86400",
		"past day":      "r86400",
		"today":         "r86400",
		"past week":     "r604800",
		"past month":    "r2592000",
		"any time":      "",
	}
)

var fold = cases.Fold()

func lookup(table map[string]string, value string) string {
	trimmed := strings.TrimSpace(value)
	if code, ok := table[fold.String(trimmed)]; ok {
		return code
	}
	//compatibility fallback: pass unrecognized values through verbatim
	return trimmed
}

//JobType maps a job-type synonym to its canonical code.
func JobType(value string) string {
	return lookup(jobTypeCodes, value)
}

//ExperienceLevel maps an experience-level synonym to its canonical code.
func ExperienceLevel(value string) string {
	return lookup(experienceCodes, value)
}

//Remote maps a workplace-type synonym to its canonical code.
func Remote(value string) string {
	return lookup(remoteCodes, value)
}

//DatePosted maps a recency-window synonym to its canonical code.
func DatePosted(value string) string {
	return lookup(datePostedCodes, value)
}
