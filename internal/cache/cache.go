// Package cache provides the read-through listing cache the services sit
// behind: a small in-process level backed by an optional Redis level.
package cache

import (
	"errors"
	"sync/atomic"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	ErrCacheDown = errors.New("cache unavailable")
)

type Cache interface {
	Set(key string, value interface{}, ttl time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	DeletePattern(pattern string) error
	Stats() map[string]interface{}
	Health() error
	Close() error
}

// Metrics counts cache traffic with atomics so Stats never blocks a request.
type Metrics struct {
	hits    int64
	misses  int64
	sets    int64
	deletes int64
	errors  int64
}

func (m *Metrics) RecordHit()    { atomic.AddInt64(&m.hits, 1) }
func (m *Metrics) RecordMiss()   { atomic.AddInt64(&m.misses, 1) }
func (m *Metrics) RecordSet()    { atomic.AddInt64(&m.sets, 1) }
func (m *Metrics) RecordDelete() { atomic.AddInt64(&m.deletes, 1) }
func (m *Metrics) RecordError()  { atomic.AddInt64(&m.errors, 1) }

func (m *Metrics) HitRate() float64 {
	hits := atomic.LoadInt64(&m.hits)
	total := hits + atomic.LoadInt64(&m.misses)
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func (m *Metrics) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"hits":     atomic.LoadInt64(&m.hits),
		"misses":   atomic.LoadInt64(&m.misses),
		"sets":     atomic.LoadInt64(&m.sets),
		"deletes":  atomic.LoadInt64(&m.deletes),
		"errors":   atomic.LoadInt64(&m.errors),
		"hit_rate": m.HitRate(),
	}
}
