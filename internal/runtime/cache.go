// Package runtime owns the worker's single-slot model cache.
package runtime

import (
	"context"
	"sync"
	"time"

	"whisperd/internal/engine"
)

// Key identifies the cached model. The storage directory is deliberately not
// part of the key; it is fixed for the lifetime of the process.
type Key struct {
	Model       string
	Device      string
	ComputeType string
}

// Cache holds at most one loaded model handle. Lookups with the current key
// return the handle without loading work; any other key triggers a load that
// replaces the entry entirely. The protocol loop is single-threaded, but the
// debug HTTP server reads snapshots concurrently, so mutation stays behind
// the mutex.
type Cache struct {
	mu        sync.Mutex
	eng       engine.Engine
	cacheDir  string
	key       Key
	model     engine.Model
	loads     uint64
	hits      uint64
	startedAt time.Time
}

// New returns an empty cache. cacheDir is the optional model storage root
// passed through to every load ("" = engine default).
func New(eng engine.Engine, cacheDir string) *Cache {
	return &Cache{eng: eng, cacheDir: cacheDir, startedAt: time.Now()}
}

// GetModel returns the cached handle when (model, device, computeType)
// matches the current entry, otherwise loads a replacement. The replacement
// is loaded before the old handle is released, so a failed reload leaves the
// previous entry installed and still serving its own key.
func (c *Cache) GetModel(ctx context.Context, model, device, computeType string) (engine.Model, error) {
	key := Key{Model: model, Device: device, ComputeType: computeType}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model != nil && c.key == key {
		c.hits++
		cacheHitsTotal.Inc()
		return c.model, nil
	}
	m, err := c.eng.Load(ctx, engine.Spec{
		Model:       model,
		Device:      device,
		ComputeType: computeType,
		CacheDir:    c.cacheDir,
	})
	if err != nil {
		return nil, err
	}
	if c.model != nil {
		_ = c.model.Close()
	}
	c.model = m
	c.key = key
	c.loads++
	modelLoadsTotal.Inc()
	return m, nil
}

// Snapshot is a read-only projection of the cache state.
type Snapshot struct {
	Loaded    bool
	Key       Key
	Loads     uint64
	Hits      uint64
	StartedAt time.Time
}

// Snapshot returns the current cache state for the status API.
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Loaded:    c.model != nil,
		Key:       c.key,
		Loads:     c.loads,
		Hits:      c.hits,
		StartedAt: c.startedAt,
	}
}

// Close releases the current handle, if any. Only called at process exit.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model == nil {
		return nil
	}
	err := c.model.Close()
	c.model = nil
	c.key = Key{}
	return err
}
