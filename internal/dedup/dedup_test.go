package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobfinder-automation/internal/search"
)

func recordsWithIDs(ids ...string) []search.Record {
	out := make([]search.Record, len(ids))
	for i, id := range ids {
		out[i] = search.Record{ID: id}
	}
	return out
}

func TestUniquePreservesFirstOccurrenceOrder(t *testing.T) {
	got := Unique(recordsWithIDs("a", "b", "a"))

	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestUniqueIdempotent(t *testing.T) {
	raw := recordsWithIDs("x", "y", "x", "z", "y", "x")

	once := Unique(raw)
	twice := Unique(once)

	assert.Equal(t, once, twice, "running dedup on its own output must be a no-op")
	assert.LessOrEqual(t, len(once), len(raw))
}

func TestUniqueEmptyAndSingleton(t *testing.T) {
	assert.Empty(t, Unique(nil))
	assert.Len(t, Unique(recordsWithIDs("only")), 1)
}

func TestSeenCacheAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	cache := NewSeenCache(dir)
	assert.False(t, cache.IsSeen("4201"))

	cache.Add([]string{"4201", "4202"})
	assert.True(t, cache.IsSeen("4201"))
	assert.True(t, cache.IsSeen("4202"))

	//a fresh instance reloads from disk
	reloaded := NewSeenCache(dir)
	assert.True(t, reloaded.IsSeen("4201"))
	assert.False(t, reloaded.IsSeen("4999"))
}
