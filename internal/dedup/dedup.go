package dedup

import (
	mapset "github.com/deckarep/golang-set/v2"

	"go-jobfinder-automation/internal/search"
)

//Unique returns the unique-by-ID subsequence of records, preserving first
//occurrence order. Stable and idempotent: Unique(Unique(l)) == Unique(l).
func Unique(records []search.Record) []search.Record {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]search.Record, 0, len(records))
	for _, r := range records {
		if !seen.Add(r.ID) {
			continue
		}
		out = append(out, r)
	}
	return out
}
