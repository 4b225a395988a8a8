package search

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePostedDate(t *testing.T) {
	t.Run("unix milliseconds", func(t *testing.T) {
		ts := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
		got := parsePostedDate(strconv.FormatInt(ts.UnixMilli(), 10))
		assert.True(t, got.Equal(ts))
	})

	t.Run("iso date", func(t *testing.T) {
		got := parsePostedDate("2026-08-20")
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, time.August, got.Month())
		assert.Equal(t, 20, got.Day())
	})

	t.Run("relative phrase", func(t *testing.T) {
		got := parsePostedDate("3 days ago")
		assert.WithinDuration(t, time.Now().Add(-3*24*time.Hour), got, time.Minute)
	})

	t.Run("garbage yields zero time", func(t *testing.T) {
		assert.True(t, parsePostedDate("Recently").IsZero())
		assert.True(t, parsePostedDate("").IsZero())
	})
}
