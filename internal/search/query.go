package search

import (
	"net/url"
	"strings"

	"go-jobfinder-automation/internal/filter"
	"go-jobfinder-automation/internal/task"
)

//DefaultBaseURL is the fixed search endpoint.
const DefaultBaseURL = "https://www.linkedin.com/jobs/search/"

type queryParam struct {
	name  string
	value string
}

//normalizedParams runs the filter set through the normalizer and pins the
//parameter order. The order never varies, so the same FilterSet always yields
//a byte-identical URL.
func normalizedParams(f task.FilterSet) []queryParam {
	easyApply := ""
	if f.EasyApply {
		easyApply = "true"
	}
	return []queryParam{
		{"keywords", strings.TrimSpace(f.Keywords)},
		{"location", strings.TrimSpace(f.Location)},
		{"f_JT", filter.JobType(f.JobType)},
		{"f_WT", filter.Remote(f.Remote)},
		{"f_E", filter.ExperienceLevel(f.ExperienceLevel)},
		{"f_TPR", filter.DatePosted(f.DatePosted)},
		{"f_AL", easyApply},
		{"f_C", strings.TrimSpace(f.Company)},
	}
}

//BuildURL composes the search URL from a filter set. Parameters with empty
//values are omitted; with no parameters at all the bare endpoint is returned
//without a trailing "?".
func BuildURL(base string, f task.FilterSet) string {
	if base == "" {
		base = DefaultBaseURL
	}

	var sb strings.Builder
	sb.WriteString(base)
	first := true
	for _, p := range normalizedParams(f) {
		if p.value == "" {
			continue
		}
		if first {
			sb.WriteByte('?')
			first = false
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(p.name)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}

//AppliedFilters reports the normalized non-empty parameters, as returned to
//the caller in the result envelope.
func AppliedFilters(f task.FilterSet) map[string]string {
	out := make(map[string]string)
	for _, p := range normalizedParams(f) {
		if p.value != "" {
			out[p.name] = p.value
		}
	}
	return out
}
