// Package pipeline sequences the theme builders, joins their outputs into
// the neighborhood and district wide tables, and computes the user-weighted
// composite suitability score. All caching lives here, owned by the
// orchestrator; the core packages stay pure.
package pipeline

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/annap-test/Berlin-App/internal/loader"
)

// TableCache memoizes loaded tables keyed by their content signature
// (path, size, mtime). A file that changed on disk between lookups is
// re-read, never served stale.
type TableCache struct {
	mu       sync.Mutex
	encoding string
	entries  map[string]cacheEntry
}

type cacheEntry struct {
	sig loader.Signature
	tbl *loader.Table
}

// NewTableCache creates a cache reading CSV inputs with the given encoding.
func NewTableCache(encoding string) *TableCache {
	return &TableCache{encoding: encoding, entries: make(map[string]cacheEntry)}
}

// Load returns the table for path, reading it at most once per content
// signature.
func (c *TableCache) Load(path string) (*loader.Table, error) {
	sig, err := loader.FileSignature(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.sig == sig {
		return e.tbl, nil
	}

	var tbl *loader.Table
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		tbl, err = loader.ReadXLSXTable(path, loader.XLSXOptions{})
	} else {
		tbl, err = loader.ReadCSVTable(path, loader.CSVOptions{Encoding: c.encoding})
	}
	if err != nil {
		return nil, err
	}
	c.entries[path] = cacheEntry{sig: sig, tbl: tbl}
	return tbl, nil
}
