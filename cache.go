// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package timeres

import (
	"cmp"
	"maps"
	"slices"
	"sync/atomic"
)

// Cache remembers which keys have been requested and answered, together with
// whatever data was found for them, and reports the gaps that still need
// fetching. It never talks to a data source itself.
//
// The intended loop is:
//
//	resp := cache.Get(request)
//	for !resp.Hit {
//	    for _, gap := range resp.Gaps {
//	        data := fetch(gap)        // caller's own data source
//	        cache.Add(gap, data)
//	    }
//	    resp = cache.Get(request)
//	}
//
// A key counts as resolved once it has been passed to Add, whether or not any
// data came back for it. Resolved keys are never forgotten.
//
// Cache has no internal lock around its data. Callers sharing a cache must
// serialize Add against every other call; concurrent Get calls are safe.
type Cache[K cmp.Ordered, T any] struct {
	data     map[K]T
	requests map[K]struct{}
	opts     CacheOptions[T]

	calls  atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
}

// Response is the answer to Cache.Get. There is no partial response: a miss
// lists what to fetch, after which the caller asks again.
type Response[K cmp.Ordered, T any] struct {
	// Hit reports that every requested key has been resolved.
	Hit bool

	// Data holds, on a hit, every cached pair whose key lies between the
	// smallest and largest requested key. It is nil on a miss.
	Data map[K]T

	// Gaps holds, on a miss, the maximal runs of requested keys that have
	// not been resolved, in ascending order.
	Gaps [][]K
}

// NewCache creates an empty cache.
func NewCache[K cmp.Ordered, T any](opts ...CacheOption[T]) *Cache[K, T] {
	c := &Cache[K, T]{
		data:     make(map[K]T),
		requests: make(map[K]struct{}),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Get answers a request for a set of keys. Duplicate keys are ignored.
//
//   - An empty request is a hit with no data.
//   - If every key has been resolved the response is a hit carrying all
//     cached data between the smallest and largest requested key.
//   - Otherwise the response is a miss carrying the unresolved gaps.
func (c *Cache[K, T]) Get(request []K) Response[K, T] {
	c.calls.Add(1)

	keys := sortedKeys(request)
	if len(keys) == 0 {
		c.hits.Add(1)
		return Response[K, T]{Hit: true, Data: map[K]T{}}
	}

	if c.resolvedAll(keys) {
		c.hits.Add(1)
		lo, hi := keys[0], keys[len(keys)-1]
		data := make(map[K]T)
		for k, v := range c.data {
			if k >= lo && k <= hi {
				data[k] = v
			}
		}
		c.debug("cache hit", "keys", len(keys), "data", len(data))
		return Response[K, T]{Hit: true, Data: data}
	}

	c.misses.Add(1)
	gaps := missingPieces(keys, c.requests)
	c.debug("cache miss", "keys", len(keys), "gaps", len(gaps))
	return Response[K, T]{Gaps: gaps}
}

// Add marks every key of request, and every key of data, as resolved and
// stores data.
//
// By default a value for a key already in the cache overwrites the old value
// and Add never fails. With WithConflictCheck, a differing value makes Add
// return *ConflictError without changing the cache.
func (c *Cache[K, T]) Add(request []K, data map[K]T) error {
	if c.opts.Equal != nil {
		for _, k := range slices.Sorted(maps.Keys(data)) {
			old, ok := c.data[k]
			if ok && !c.opts.Equal(old, data[k]) {
				err := &ConflictError{Key: k, Old: old, New: data[k]}
				if c.opts.Logger != nil {
					c.opts.Logger.Warn("cache rejected conflicting data", "key", k, "error", err)
				}
				return err
			}
		}
	}

	for _, k := range request {
		c.requests[k] = struct{}{}
	}
	for k, v := range data {
		c.requests[k] = struct{}{}
		c.data[k] = v
	}

	c.debug("cache add", "keys", len(request), "data", len(data), "resolved", len(c.requests))
	return nil
}

// Resolved reports whether key has been passed to Add.
func (c *Cache[K, T]) Resolved(key K) bool {
	_, ok := c.requests[key]
	return ok
}

// Len returns the number of keys holding data.
func (c *Cache[K, T]) Len() int {
	return len(c.data)
}

// CacheStats returns statistics about cache performance.
type CacheStats struct {
	Calls   int64
	Hits    int64
	Misses  int64
	HitRate float64
}

// Stats returns cache performance statistics.
func (c *Cache[K, T]) Stats() CacheStats {
	stats := CacheStats{
		Calls:  c.calls.Load(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
	if stats.Calls > 0 {
		stats.HitRate = float64(stats.Hits) / float64(stats.Calls)
	}
	return stats
}

func (c *Cache[K, T]) resolvedAll(keys []K) bool {
	for _, k := range keys {
		if _, ok := c.requests[k]; !ok {
			return false
		}
	}
	return true
}

func (c *Cache[K, T]) debug(msg string, args ...any) {
	if c.opts.Logger != nil {
		c.opts.Logger.Debug(msg, args...)
	}
}

// missingPieces scans keys in ascending order and collects maximal runs of
// keys absent from resolved. When keys is itself contiguous every run is
// contiguous too; filling small holes between runs is left to the caller.
func missingPieces[K cmp.Ordered](keys []K, resolved map[K]struct{}) [][]K {
	var gaps [][]K
	var current []K
	for _, k := range keys {
		if _, ok := resolved[k]; !ok {
			current = append(current, k)
		} else if len(current) > 0 {
			gaps = append(gaps, current)
			current = nil
		}
	}
	if len(current) > 0 {
		gaps = append(gaps, current)
	}
	return gaps
}

func sortedKeys[K cmp.Ordered](keys []K) []K {
	if len(keys) == 0 {
		return nil
	}
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}

// PeriodCache is a Cache keyed by periods. Requests are ranges and gaps come
// back as ranges, ready to hand to a data source.
type PeriodCache[P Period[P], T any] struct {
	inner *Cache[int64, T]
}

// PeriodResponse is the answer to PeriodCache.Get.
type PeriodResponse[P Period[P], T any] struct {
	Hit  bool
	Data map[P]T
	Gaps []Range[P]
}

// NewPeriodCache creates an empty period-keyed cache.
func NewPeriodCache[P Period[P], T any](opts ...CacheOption[T]) *PeriodCache[P, T] {
	return &PeriodCache[P, T]{inner: NewCache[int64, T](opts...)}
}

// Get answers a request for every period of r.
func (c *PeriodCache[P, T]) Get(r Range[P]) PeriodResponse[P, T] {
	resp := c.inner.Get(r.Indexes())
	if !resp.Hit {
		var gaps []Range[P]
		for _, gap := range resp.Gaps {
			gaps = append(gaps, Coalesce[P](gap)...)
		}
		return PeriodResponse[P, T]{Gaps: gaps}
	}

	data := make(map[P]T, len(resp.Data))
	for idx, v := range resp.Data {
		data[FromIndex[P](idx)] = v
	}
	return PeriodResponse[P, T]{Hit: true, Data: data}
}

// Add marks every period of r as resolved and stores data.
func (c *PeriodCache[P, T]) Add(r Range[P], data map[P]T) error {
	raw := make(map[int64]T, len(data))
	for p, v := range data {
		raw[p.Index()] = v
	}
	return c.inner.Add(r.Indexes(), raw)
}

// Resolved reports whether p has been passed to Add.
func (c *PeriodCache[P, T]) Resolved(p P) bool {
	return c.inner.Resolved(p.Index())
}

// Stats returns cache performance statistics.
func (c *PeriodCache[P, T]) Stats() CacheStats {
	return c.inner.Stats()
}
