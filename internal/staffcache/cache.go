// Package staffcache keeps an in-process projection of staff compensation and
// contact fields keyed by staff number.
//
// The cache is a lossy view: it carries salary, telephone and email only and
// is never authoritative for other staff columns. It is rebuilt in bulk from
// storage and patched in place after successful writes.
package staffcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a staff number has no cache entry.
var ErrNotFound = errors.New("staff not present in cache")

// Entry is the cached projection of one staff member.
type Entry struct {
	Salary    float64 `json:"salary"`
	Telephone string  `json:"telephone"`
	Email     string  `json:"email"`
}

// Record pairs a staff number with its entry, as read in bulk from storage.
type Record struct {
	StaffNo string
	Entry
}

// Patch carries the subset of fields to merge; nil means "leave as is".
type Patch struct {
	Salary    *float64
	Telephone *string
	Email     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Salary == nil && p.Telephone == nil && p.Email == nil
}

func (p Patch) apply(e Entry) Entry {
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if p.Telephone != nil {
		e.Telephone = *p.Telephone
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	return e
}

// Loader reads every (staffno, salary, telephone, email) row.
type Loader interface {
	LoadCacheEntries(ctx context.Context) ([]Record, error)
}

// Mirror receives a copy of the cache contents, e.g. a shared Redis hash.
type Mirror interface {
	Replace(ctx context.Context, entries map[string]Entry) error
	Put(ctx context.Context, staffNo string, entry Entry) error
}

// Option customizes a Cache.
type Option func(*Cache)

// WithMirror attaches a mirror that is updated after rebuilds and patches.
func WithMirror(m Mirror) Option {
	return func(c *Cache) {
		c.mirror = m
	}
}

// Cache maps staff numbers to entries.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	// writes is held shared by storage writers and exclusively by Rebuild,
	// so a snapshot never predates a write that already reached the cache.
	writes sync.RWMutex
	builtAt time.Time

	loader Loader
	mirror Mirror
	logger *zap.Logger
}

// New constructs an empty cache. Rebuild must be called before use.
func New(loader Loader, logger *zap.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		entries: make(map[string]Entry),
		loader:  loader,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Guard blocks rebuilds until the returned release is called. Callers hold it
// across their storage write and the matching ApplyUpdate.
func (c *Cache) Guard() (release func()) {
	c.writes.RLock()
	return c.writes.RUnlock
}

// Rebuild replaces the mapping with a fresh bulk read. On failure the cache
// is left empty and every lookup misses until the next successful rebuild.
// It waits for guarded writes in flight and holds new ones off until the
// swap is done.
func (c *Cache) Rebuild(ctx context.Context) error {
	c.writes.Lock()
	defer c.writes.Unlock()

	records, err := c.loader.LoadCacheEntries(ctx)

	fresh := make(map[string]Entry, len(records))
	if err == nil {
		for _, r := range records {
			fresh[r.StaffNo] = r.Entry
		}
	}

	c.mu.Lock()
	c.entries = fresh
	if err == nil {
		c.builtAt = time.Now()
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("error populating staff cache", zap.Error(err))
		return fmt.Errorf("rebuild staff cache: %w", err)
	}

	c.logger.Info("staff cache populated", zap.Int("entries", len(fresh)))
	c.mirrorReplace(ctx)
	return nil
}

// Lookup returns the cached entry for staffNo.
func (c *Cache) Lookup(staffNo string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[staffNo]
	return e, ok
}

// Has reports whether staffNo is cached.
func (c *Cache) Has(staffNo string) bool {
	_, ok := c.Lookup(staffNo)
	return ok
}

// ApplyUpdate merges patch into the entry for staffNo and returns the result.
// Absent staff numbers yield ErrNotFound and leave the mapping untouched. An
// empty patch returns the current entry without touching the mirror.
func (c *Cache) ApplyUpdate(ctx context.Context, staffNo string, patch Patch) (Entry, error) {
	if patch.IsEmpty() {
		current, ok := c.Lookup(staffNo)
		if !ok {
			return Entry{}, ErrNotFound
		}
		return current, nil
	}

	c.mu.Lock()
	current, ok := c.entries[staffNo]
	if !ok {
		c.mu.Unlock()
		return Entry{}, ErrNotFound
	}
	updated := patch.apply(current)
	c.entries[staffNo] = updated
	c.mu.Unlock()

	if c.mirror != nil {
		if err := c.mirror.Put(ctx, staffNo, updated); err != nil {
			c.logger.Warn("staff cache mirror put failed", zap.String("staff_no", staffNo), zap.Error(err))
		}
	}
	return updated, nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// BuiltAt returns the time of the last successful rebuild.
func (c *Cache) BuiltAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builtAt
}

// Snapshot returns a copy of the mapping.
func (c *Cache) Snapshot() map[string]Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Entry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

func (c *Cache) mirrorReplace(ctx context.Context) {
	if c.mirror == nil {
		return
	}
	if err := c.mirror.Replace(ctx, c.Snapshot()); err != nil {
		c.logger.Warn("staff cache mirror replace failed", zap.Error(err))
	}
}
