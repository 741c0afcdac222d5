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
	"bytes"
	"log/slog"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(from, to int64) []int64 {
	out := make([]int64, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestCacheEmptyRequestIsHit(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, string]()
	resp := cache.Get(nil)
	assert.True(t, resp.Hit)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Gaps)
}

func TestCacheGapMinimality(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, string]()
	require.NoError(t, cache.Add([]int64{2, 3, 7, 8}, nil))

	resp := cache.Get(seq(1, 10))
	assert.False(t, resp.Hit)
	assert.Nil(t, resp.Data)
	assert.Equal(t, [][]int64{{1}, {4, 5, 6}, {9, 10}}, resp.Gaps)
}

func TestCacheHitMissDichotomy(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, int]()
	require.NoError(t, cache.Add(seq(1, 5), map[int64]int{1: 10, 3: 30}))

	tests := []struct {
		name    string
		request []int64
		hit     bool
	}{
		{name: "inside", request: seq(2, 4), hit: true},
		{name: "exact", request: seq(1, 5), hit: true},
		{name: "unsorted duplicates", request: []int64{5, 1, 1, 3}, hit: true},
		{name: "spills right", request: seq(4, 6), hit: false},
		{name: "disjoint", request: seq(8, 9), hit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := cache.Get(tt.request)
			assert.Equal(t, tt.hit, resp.Hit)
			if tt.hit {
				assert.Empty(t, resp.Gaps)
				assert.NotNil(t, resp.Data)
			} else {
				assert.NotEmpty(t, resp.Gaps)
				assert.Nil(t, resp.Data)
			}
		})
	}
}

func TestCacheHitReturnsDataInSpan(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, string]()
	require.NoError(t, cache.Add(seq(1, 10), map[int64]string{1: "a", 4: "d", 6: "f", 10: "j"}))

	resp := cache.Get([]int64{4, 6})
	require.True(t, resp.Hit)
	assert.Equal(t, map[int64]string{4: "d", 6: "f"}, resp.Data)

	resp = cache.Get(seq(2, 9))
	require.True(t, resp.Hit)
	assert.Equal(t, map[int64]string{4: "d", 6: "f"}, resp.Data)
}

func TestCacheDataKeysAreResolved(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, string]()
	require.NoError(t, cache.Add([]int64{1}, map[int64]string{1: "a", 2: "b"}))

	assert.True(t, cache.Resolved(2))
	resp := cache.Get([]int64{1, 2})
	require.True(t, resp.Hit)
	assert.Equal(t, map[int64]string{1: "a", 2: "b"}, resp.Data)
}

func TestCacheAddIdempotent(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, string]()
	request := seq(1, 4)
	data := map[int64]string{1: "a", 3: "c"}

	require.NoError(t, cache.Add(request, data))
	firstData := maps.Clone(cache.data)
	firstRequests := maps.Clone(cache.requests)

	require.NoError(t, cache.Add(request, data))
	assert.Equal(t, firstData, cache.data)
	assert.Equal(t, firstRequests, cache.requests)
	assert.Equal(t, 2, cache.Len())
}

func TestCacheOverwriteByDefault(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, string]()
	require.NoError(t, cache.Add([]int64{1}, map[int64]string{1: "old"}))
	require.NoError(t, cache.Add([]int64{1}, map[int64]string{1: "new"}))

	resp := cache.Get([]int64{1})
	require.True(t, resp.Hit)
	assert.Equal(t, "new", resp.Data[1])
}

func TestCacheConflictCheck(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cache := NewCache[int64, string](
		WithConflictCheck(func(a, b string) bool { return a == b }),
		WithLogger[string](logger),
	)
	require.NoError(t, cache.Add([]int64{1, 2}, map[int64]string{1: "a"}))

	// Same value is not a conflict.
	require.NoError(t, cache.Add([]int64{1}, map[int64]string{1: "a"}))

	err := cache.Add([]int64{3, 4}, map[int64]string{1: "z", 3: "c"})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(1), conflict.Key)
	assert.Equal(t, "a", conflict.Old)
	assert.Equal(t, "z", conflict.New)

	// Nothing from the rejected call was applied.
	assert.False(t, cache.Resolved(3))
	assert.False(t, cache.Resolved(4))
	resp := cache.Get([]int64{1})
	require.True(t, resp.Hit)
	assert.Equal(t, "a", resp.Data[1])

	assert.Contains(t, logs.String(), "cache rejected conflicting data")
	assert.Contains(t, logs.String(), "cache hit")
}

func TestCacheStats(t *testing.T) {
	t.Parallel()

	cache := NewCache[int64, int]()
	assert.Equal(t, CacheStats{}, cache.Stats())

	cache.Get([]int64{1})
	require.NoError(t, cache.Add([]int64{1}, nil))
	cache.Get([]int64{1})
	cache.Get(nil)
	cache.Get([]int64{2})

	stats := cache.Stats()
	assert.Equal(t, int64(4), stats.Calls)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestCacheFillLoop(t *testing.T) {
	t.Parallel()

	source := func(keys []int64) map[int64]int {
		out := make(map[int64]int)
		for _, k := range keys {
			if k%2 == 0 {
				out[k] = int(k * k)
			}
		}
		return out
	}

	cache := NewCache[int64, int]()
	require.NoError(t, cache.Add([]int64{3, 4}, source([]int64{3, 4})))

	request := seq(1, 8)
	resp := cache.Get(request)
	for rounds := 0; !resp.Hit; rounds++ {
		require.Less(t, rounds, 2, "cache never filled")
		for _, gap := range resp.Gaps {
			require.NoError(t, cache.Add(gap, source(gap)))
		}
		resp = cache.Get(request)
	}
	assert.Equal(t, map[int64]int{2: 4, 4: 16, 6: 36, 8: 64}, resp.Data)
}

func TestPeriodCache(t *testing.T) {
	t.Parallel()

	jan, err := ParseDay("2021-01-01")
	require.NoError(t, err)

	cache := NewPeriodCache[Day, float64]()
	have, _ := NewRange(jan.Succ(1), 2)
	haveToo, _ := NewRange(jan.Succ(6), 2)
	require.NoError(t, cache.Add(have, map[Day]float64{jan.Succ(1): 1.5}))
	require.NoError(t, cache.Add(haveToo, nil))

	want, _ := NewRange(jan, 10)
	resp := cache.Get(want)
	require.False(t, resp.Hit)

	g1, _ := NewRange(jan, 1)
	g2, _ := NewRange(jan.Succ(3), 3)
	g3, _ := NewRange(jan.Succ(8), 2)
	assert.Equal(t, []Range[Day]{g1, g2, g3}, resp.Gaps)

	for _, gap := range resp.Gaps {
		require.NoError(t, cache.Add(gap, nil))
	}
	resp = cache.Get(want)
	require.True(t, resp.Hit)
	assert.Equal(t, map[Day]float64{jan.Succ(1): 1.5}, resp.Data)
	assert.True(t, cache.Resolved(jan.Succ(9)))
	assert.Equal(t, int64(2), cache.Stats().Calls)
}
