// Package contentcache stores generated artifacts in a single size-bounded
// container that is written through to the key/value store on every set.
//
// The container is one JSON object mapping cache keys to payloads. When a
// write would push the serialized container past MaxBytes, the whole
// container is discarded and replaced by one holding only the new entry.
// Callers must tolerate misses for keys that were cached before such a
// flush.
package contentcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/kv"
)

// Record is the KV key holding the serialized container.
const Record = "content-cache"

// DefaultMaxBytes is the container size ceiling (4.5 MiB).
const DefaultMaxBytes = 4_718_592

// Stats holds cache metrics for the lifetime of a Manager plus the current
// container size.
type Stats struct {
	Hits      int64
	Misses    int64
	Writes    int64
	Flushes   int64
	Entries   int
	Bytes     int
	MaxBytes  int
	LastFlush time.Time
}

// HitRate returns hits / (hits + misses), or 0 with no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type container map[string]json.RawMessage

// Manager is the content cache. It is safe for concurrent use.
type Manager struct {
	kv       kv.Store
	maxBytes int
	logger   *log.Logger

	mu    sync.Mutex
	stats Stats
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxBytes overrides the container size ceiling.
func WithMaxBytes(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxBytes = n
		}
	}
}

// WithLogger sets the logger used for flush and corruption warnings.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a Manager writing through to store.
func New(store kv.Store, opts ...Option) *Manager {
	m := &Manager{
		kv:       store,
		maxBytes: DefaultMaxBytes,
		logger:   log.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.WithPrefix("cache")
	return m
}

// Get decodes the entry for key into dst. It reports false when the entry is
// absent, the container is unreadable, or the entry does not decode into dst.
func (m *Manager) Get(ctx context.Context, key Key, dst any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.read(ctx)
	raw, ok := c[key.String()]
	if ok {
		if err := json.Unmarshal(raw, dst); err != nil {
			m.logger.Warn("cache entry unreadable", "key", key.String(), "err", err)
			ok = false
		}
	}
	if ok {
		m.stats.Hits++
	} else {
		m.stats.Misses++
	}
	return ok
}

// Set stores value under key and persists the container. If the serialized
// container exceeds the ceiling it is flushed to hold only this entry.
func (m *Manager) Set(ctx context.Context, key Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.read(ctx)
	c[key.String()] = raw

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cache container: %w", err)
	}
	if len(data) > m.maxBytes {
		m.logger.Info("cache over ceiling, flushing",
			"bytes", len(data), "max", m.maxBytes, "dropped", len(c)-1)
		c = container{key.String(): raw}
		if data, err = json.Marshal(c); err != nil {
			return fmt.Errorf("marshal cache container: %w", err)
		}
		m.stats.Flushes++
		m.stats.LastFlush = time.Now()
	}

	if err := m.kv.Put(ctx, Record, data); err != nil {
		return fmt.Errorf("write cache container: %w", err)
	}
	m.stats.Writes++
	m.stats.Entries = len(c)
	m.stats.Bytes = len(data)
	return nil
}

// Clear removes the whole container.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.kv.Delete(ctx, Record); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	m.stats.Entries = 0
	m.stats.Bytes = 0
	return nil
}

// Keys returns the cached keys in sorted order.
func (m *Manager) Keys(ctx context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.read(ctx)
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats returns the current metrics, refreshing size from the store.
func (m *Manager) Stats(ctx context.Context) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.MaxBytes = m.maxBytes
	s.Entries, s.Bytes = 0, 0
	if data, err := m.kv.Get(ctx, Record); err == nil {
		s.Bytes = len(data)
		var c container
		if json.Unmarshal(data, &c) == nil {
			s.Entries = len(c)
		}
	}
	return s
}

// read loads the container. Missing or unreadable bytes yield an empty one.
func (m *Manager) read(ctx context.Context) container {
	data, err := m.kv.Get(ctx, Record)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			m.logger.Warn("cache container unreadable, treating as empty", "err", err)
		}
		return container{}
	}
	var c container
	if err := json.Unmarshal(data, &c); err != nil || c == nil {
		m.logger.Warn("cache container unreadable, treating as empty", "err", err)
		return container{}
	}
	return c
}
