// Package diskcache memoizes generated chip traces (spec.md §6's
// `internal/tracepipe` output) by (shard index, chip name), mirroring the
// teacher's examples/disk_eject two-level pattern: an in-memory fast path
// in front of a durable Badger store, so re-inspecting a shard's trace (via
// cmd/airtrace-inspect) does not require re-running trace generation.
//
// Unlike examples/disk_eject's EjectCallback (write-behind, fire on
// eviction), this cache is write-through and read-with-fallback: GetOrCompute
// checks L1, then L2, then runs compute and memoizes the result in both
// levels, collapsing concurrent misses for the same key exactly as
// pkg/loader.go's loaderGroup collapses concurrent cache loads.
//
// © 2025 arena-cache authors. MIT License.
package diskcache

import (
	"context"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/record"
)

// Key identifies one memoized (shard, chip) trace.
type Key struct {
	Shard uint32
	Chip  string
}

func (k Key) badgerKey() []byte {
	return []byte(fmt.Sprintf("airtrace:%s:%d", k.Chip, k.Shard))
}

// Entry is one chip's memoized trace-generation output for one shard.
type Entry struct {
	Matrix      *chip.RowMajorMatrix
	ByteLookups record.ByteLookupMap
}

// ComputeFunc regenerates an Entry on a cache miss, the same role
// cache.LoaderFunc[K,V] plays in pkg/loader.go.
type ComputeFunc func(ctx context.Context) (*Entry, error)

// Cache is a two-level memoization store: an in-memory sync.Map (L1) backed
// by a Badger database (L2).
type Cache struct {
	db     *badger.DB
	l1     sync.Map // Key -> *Entry
	sf     singleflight.Group
	logger *zap.Logger
}

// Option configures Open.
type Option func(*Cache)

// WithLogger overrides the no-op default logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// Open opens (creating if absent) a Badger database rooted at dir and
// returns a ready-to-use Cache.
func Open(dir string, opts ...Option) (*Cache, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("diskcache: open: %w", err)
	}
	c := &Cache{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying Badger database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetOrCompute returns the memoized Entry for key, checking L1 then L2
// before falling back to compute. Concurrent callers requesting the same
// key while a compute is in flight share its single result, via
// singleflight.Group, the same de-dup discipline pkg/loader.go's
// loaderGroup applies to cache loads.
func (c *Cache) GetOrCompute(ctx context.Context, key Key, compute ComputeFunc) (*Entry, error) {
	if v, ok := c.l1.Load(key); ok {
		return v.(*Entry), nil
	}

	if entry, ok, err := c.getL2(key); err != nil {
		return nil, err
	} else if ok {
		c.l1.Store(key, entry)
		return entry, nil
	}

	sfKey := key.Chip + ":" + fmt.Sprint(key.Shard)
	v, err, _ := c.sf.Do(sfKey, func() (any, error) {
		entry, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Put(key, entry); err != nil {
			c.logger.Warn("diskcache: failed to persist computed entry",
				zap.String("chip", key.Chip), zap.Uint32("shard", key.Shard), zap.Error(err))
		}
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// Put memoizes entry for key in both L1 and L2, overwriting any existing
// value.
func (c *Cache) Put(key Key, entry *Entry) error {
	blob, err := encodeEntry(entry)
	if err != nil {
		return fmt.Errorf("diskcache: encode: %w", err)
	}
	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.badgerKey(), blob)
	}); err != nil {
		return fmt.Errorf("diskcache: put: %w", err)
	}
	c.l1.Store(key, entry)
	return nil
}

func (c *Cache) getL2(key Key) (*Entry, bool, error) {
	var blob []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.badgerKey())
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("diskcache: get: %w", err)
	}
	entry, err := decodeEntry(blob)
	if err != nil {
		return nil, false, fmt.Errorf("diskcache: decode: %w", err)
	}
	return entry, true, nil
}
