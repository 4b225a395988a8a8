package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

type seenEntry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

//SeenCache remembers record ids across runs so repeat searches can surface
//only new listings. The file lock guards against a second process running
//the same search concurrently.
type SeenCache struct {
	mu       sync.Mutex
	filePath string
	lock     *flock.Flock
	seen     map[string]int64
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

//NewSeenCache creates or loads a seen-record cache under cacheDir.
func NewSeenCache(cacheDir string) *SeenCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	filePath := filepath.Join(cacheDir, "seen_records.json")
	cache := &SeenCache{
		filePath: filePath,
		lock:     flock.New(filePath + ".lock"),
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

//IsSeen checks if a record id was surfaced by a previous run.
func (c *SeenCache) IsSeen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.seen[id]
	return exists
}

//Add marks ids as seen and persists the cache if anything changed.
func (c *SeenCache) Add(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, id := range ids {
		if _, exists := c.seen[id]; !exists {
			c.seen[id] = now
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

//load reads the cache from disk, dropping entries older than thirty days.
func (c *SeenCache) load() {
	if err := c.lock.Lock(); err != nil {
		log.Printf("⚠️ Failed to lock seen cache: %v", err)
	} else {
		defer c.lock.Unlock()
	}

	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read seen cache: %v", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse seen cache: %v", err)
		return
	}

	cutoff := time.Now().UnixMilli() - thirtyDaysMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen[e.ID] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen records (%d expired)", loaded, len(entries)-loaded)
}

func (c *SeenCache) save() {
	if err := c.lock.Lock(); err != nil {
		log.Printf("⚠️ Failed to lock seen cache: %v", err)
	} else {
		defer c.lock.Unlock()
	}

	entries := make([]seenEntry, 0, len(c.seen))
	for id, ts := range c.seen {
		entries = append(entries, seenEntry{ID: id, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen records: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write seen cache: %v", err)
	}
}
