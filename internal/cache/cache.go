// Package cache is a small, bounded TTL cache for estimate predictions,
// backed by an in-memory Badger database.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/loyerparis/loyer-server/internal/domain"
)

// Default sizing: one minute, one hundred entries.
const (
	DefaultTTL        = 60 * time.Second
	DefaultMaxEntries = 100
)

var keyPrefix = []byte("estimate:")

// ErrClosed is returned by operations on a closed cache.
var ErrClosed = errors.New("cache is closed")

// Options configures a Cache.
type Options struct {
	TTL        time.Duration
	MaxEntries int
	Logger     *slog.Logger
}

// Entry is a cached prediction.
type Entry struct {
	Prediction float64   `json:"prediction"`
	StoredAt   time.Time `json:"stored_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Cache stores predictions keyed by the full estimate request. Badger only
// expires entries at one-second granularity, so every entry also carries its
// own expiry stamp, checked on read.
type Cache struct {
	db         *badger.DB
	ttl        time.Duration
	maxEntries int
	logger     *slog.Logger
	now        func() time.Time
	closed     atomic.Bool

	// writeMu serializes the count-and-insert in Set. Badger's conflict
	// detection only covers keys a transaction read, so two writers
	// inserting different keys would both see room.
	writeMu sync.Mutex
}

// Open creates an in-memory cache.
func Open(opts Options) (*Cache, error) {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}

	bopts := badger.DefaultOptions("").WithInMemory(true)
	bopts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if opts.Logger != nil {
		opts.Logger.Info("Response cache opened", "ttl", opts.TTL, "max_entries", opts.MaxEntries)
	}

	return &Cache{
		db:         db,
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		logger:     opts.Logger,
		now:        time.Now,
	}, nil
}

// Key builds the cache key of a request. Every input takes part in the key.
func Key(req domain.EstimateRequest) []byte {
	parts := []string{
		req.Neighborhood,
		req.Period,
		req.RentalType,
		strconv.Itoa(req.MainRooms),
		strconv.FormatFloat(req.Area, 'g', -1, 64),
	}
	return append(append([]byte(nil), keyPrefix...), strings.Join(parts, "\x1f")...)
}

// Get returns the live entry for req, if any.
func (c *Cache) Get(ctx context.Context, req domain.EstimateRequest) (Entry, bool, error) {
	if c.closed.Load() {
		return Entry{}, false, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	var (
		entry Entry
		found bool
	)
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(req))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		}); err != nil {
			return err
		}
		found = c.now().Before(entry.ExpiresAt)
		return nil
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache get: %w", err)
	}
	if !found {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Set stores a prediction for req. It reports false when the entry was not
// stored because the cache is full; room frees up as entries expire.
// Overwriting an existing key never counts against the bound.
func (c *Cache) Set(ctx context.Context, req domain.EstimateRequest, prediction float64) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	now := c.now()
	data, err := json.Marshal(Entry{
		Prediction: prediction,
		StoredAt:   now,
		ExpiresAt:  now.Add(c.ttl),
	})
	if err != nil {
		return false, fmt.Errorf("encode cache entry: %w", err)
	}

	key := Key(req)
	stored := false

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	err = c.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch {
		case err == nil:
		case errors.Is(err, badger.ErrKeyNotFound):
			if n := c.countLive(txn, now); n >= c.maxEntries {
				return nil
			}
		default:
			return err
		}

		stored = true
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(c.ttl))
	})
	if errors.Is(err, badger.ErrConflict) {
		// A concurrent writer got there first; caching is best effort.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return stored, nil
}

// countLive counts unexpired entries visible to txn.
func (c *Cache) countLive(txn *badger.Txn, now time.Time) int {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = keyPrefix
	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	for it.Rewind(); it.Valid(); it.Next() {
		var e Entry
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		}); err != nil {
			continue
		}
		if now.Before(e.ExpiresAt) {
			n++
		}
	}
	return n
}

// Len returns the number of live entries.
func (c *Cache) Len() (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	var n int
	err := c.db.View(func(txn *badger.Txn) error {
		n = c.countLive(txn, c.now())
		return nil
	})
	return n, err
}

// Purge drops every entry.
func (c *Cache) Purge() error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.db.DropPrefix(keyPrefix)
}

// TTL returns the lifetime of new entries.
func (c *Cache) TTL() time.Duration { return c.ttl }

// MaxEntries returns the entry bound.
func (c *Cache) MaxEntries() int { return c.maxEntries }

// Close releases the database. It is safe to call more than once.
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.logger != nil {
		c.logger.Info("Closing response cache")
	}
	return c.db.Close()
}

// Shutdown implements do.Shutdowner.
func (c *Cache) Shutdown() error {
	return c.Close()
}
