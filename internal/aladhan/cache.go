package aladhan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vaktiramazan/vakti/internal/prayer"
)

// Cache provides file-based caching of monthly calendars. Prayer times for
// a fixed location and month never change, so entries have no TTL.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// entry stores a month's records along with the parameters that produced
// them, so a config change invalidates the file.
type entry struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Method    int             `json:"method"`
	Records   []prayer.Record `json:"records"`
}

func (c *Cache) path(year, month int, lat, lng float64, method int) string {
	name := fmt.Sprintf("calendar_%04d-%02d_%.4f_%.4f_%d.json", year, month, lat, lng, method)
	return filepath.Join(c.dir, name)
}

// Load returns the cached records for a month, or nil on a miss.
func (c *Cache) Load(year, month int, lat, lng float64, method int) []prayer.Record {
	data, err := os.ReadFile(c.path(year, month, lat, lng, method))
	if err != nil {
		return nil
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil
	}
	if len(e.Records) == 0 {
		return nil
	}

	return e.Records
}

// Save writes a month's records to the cache.
func (c *Cache) Save(year, month int, lat, lng float64, method int, records []prayer.Record) error {
	e := entry{Latitude: lat, Longitude: lng, Method: method, Records: records}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	if err := os.WriteFile(c.path(year, month, lat, lng, method), data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	return nil
}
