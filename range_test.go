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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// span builds the Day range [from, to] by index.
func span(t *testing.T, from, to int64) Range[Day] {
	t.Helper()
	r, ok := FromStartEnd(Day(from), Day(to))
	require.True(t, ok, "span %d..%d", from, to)
	return r
}

func requirePanicsWithOverflow(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		rec := recover()
		require.NotNil(t, rec, "expected panic")
		_, ok := rec.(*OverflowError)
		assert.True(t, ok, "panic value %T is not *OverflowError", rec)
	}()
	fn()
}

func TestRangeLengthContract(t *testing.T) {
	t.Parallel()

	start := Day(100)
	for _, n := range []uint32{1, 2, 7, 31, 366} {
		r, ok := NewRange(start, n)
		require.True(t, ok)
		assert.Equal(t, n, r.Len())
		assert.Equal(t, start.Succ(n-1), r.End())
		assert.Len(t, r.Periods(), int(n))
		assert.Equal(t, int64(n-1), r.Start().Between(r.End()))
	}

	_, ok := NewRange(start, 0)
	assert.False(t, ok, "zero-length range must not exist")

	_, ok = FromStartEnd(Day(5), Day(4))
	assert.False(t, ok)

	single := span(t, 5, 5)
	assert.Equal(t, uint32(1), single.Len())
	assert.Equal(t, single.Start(), single.End())
}

func TestRangeAllStopsAtEnd(t *testing.T) {
	t.Parallel()

	r, ok := NewRange(Day(math.MaxInt64), 1)
	require.True(t, ok)

	var got []Day
	for d := range r.All() {
		got = append(got, d)
	}
	assert.Equal(t, []Day{Day(math.MaxInt64)}, got)

	// Early exit
	r = span(t, 1, 10)
	count := 0
	for range r.All() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestRangeOverflow(t *testing.T) {
	t.Parallel()

	requirePanicsWithOverflow(t, func() {
		FromStartEnd(Day(0), Day(math.MaxUint32))
	})
	requirePanicsWithOverflow(t, func() {
		Day(math.MaxInt64).Succ(1)
	})
	requirePanicsWithOverflow(t, func() {
		Day(math.MinInt64).Pred(1)
	})
	requirePanicsWithOverflow(t, func() {
		Day(math.MinInt64).Between(Day(math.MaxInt64))
	})

	r, ok := FromStartEnd(Day(0), Day(math.MaxUint32-1))
	require.True(t, ok)
	assert.Equal(t, uint32(math.MaxUint32), r.Len())
}

func TestCoalesce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []int64
		want [][2]int64
	}{
		{name: "empty", in: nil, want: nil},
		{name: "single", in: []int64{4}, want: [][2]int64{{4, 4}}},
		{name: "three runs", in: []int64{1, 2, 3, 7, 8, 10}, want: [][2]int64{{1, 3}, {7, 8}, {10, 10}}},
		{name: "unsorted with duplicates", in: []int64{10, 8, 1, 3, 2, 7, 2, 8}, want: [][2]int64{{1, 3}, {7, 8}, {10, 10}}},
		{name: "negative", in: []int64{-3, -2, 0}, want: [][2]int64{{-3, -2}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Coalesce[Day](tt.in)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, span(t, w[0], w[1]), got[i])
			}
		})
	}
}

func TestCoalesceIndexes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []int64
		want []IndexSpan
	}{
		{name: "empty", in: nil, want: nil},
		{name: "three runs", in: []int64{10, 8, 1, 3, 2, 7}, want: []IndexSpan{{1, 3}, {7, 8}, {10, 10}}},
		{
			name: "int64 edges",
			in:   []int64{math.MaxInt64, math.MinInt64, math.MaxInt64 - 1, math.MinInt64 + 1},
			want: []IndexSpan{{math.MinInt64, math.MinInt64 + 1}, {math.MaxInt64 - 1, math.MaxInt64}},
		},
		{
			name: "extremes stay apart",
			in:   []int64{math.MinInt64, math.MaxInt64},
			want: []IndexSpan{{math.MinInt64, math.MinInt64}, {math.MaxInt64, math.MaxInt64}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CoalesceIndexes(tt.in))
		})
	}
}

func TestIndexSpanCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(1), IndexSpan{First: 4, Last: 4}.Count())
	assert.Equal(t, uint64(3), IndexSpan{First: -1, Last: 1}.Count())
	assert.Equal(t, uint64(math.MaxUint64), IndexSpan{First: math.MinInt64, Last: math.MaxInt64}.Count())
}

func TestCoalesceAtIndexTop(t *testing.T) {
	t.Parallel()

	got := Coalesce[Day]([]int64{math.MaxInt64, math.MaxInt64 - 1, math.MinInt64})
	require.Len(t, got, 2)
	assert.Equal(t, span(t, math.MinInt64, math.MinInt64), got[0])
	assert.Equal(t, span(t, math.MaxInt64-1, math.MaxInt64), got[1])
}

func TestCoalesceMaximal(t *testing.T) {
	t.Parallel()

	got := Coalesce[Day]([]int64{1, 2, 3, 7, 8, 10})
	for i := 1; i < len(got); i++ {
		prevEnd := got[i-1].End().Index()
		assert.Greater(t, got[i].Start().Index(), prevEnd+1, "ranges %v and %v should have merged", got[i-1], got[i])
	}

	periods := CoalescePeriods([]Day{3, 1, 2})
	assert.Equal(t, []Range[Day]{span(t, 1, 3)}, periods)
}

func TestFromSet(t *testing.T) {
	t.Parallel()

	r, ok := FromSet([]Day{5, 3, 4, 4})
	require.True(t, ok)
	assert.Equal(t, span(t, 3, 5), r)

	_, ok = FromSet([]Day{1, 2, 4})
	assert.False(t, ok)

	_, ok = FromSet[Day](nil)
	assert.False(t, ok)
}

func TestRangeSubtractAndCompare(t *testing.T) {
	t.Parallel()

	r := span(t, 1, 10)
	tests := []struct {
		name      string
		other     Range[Day]
		wantLeft  *Range[Day]
		wantRight *Range[Day]
		want      Comparison
	}{
		{name: "strictly inside", other: span(t, 3, 5), wantLeft: ptr(span(t, 1, 2)), wantRight: ptr(span(t, 6, 10)), want: Superset},
		{name: "covers", other: span(t, 0, 20), want: Subset},
		{name: "equal", other: span(t, 1, 10), want: Subset},
		{name: "overlaps tail", other: span(t, 5, 20), wantLeft: ptr(span(t, 1, 4)), want: Earlier},
		{name: "overlaps head", other: span(t, -5, 5), wantRight: ptr(span(t, 6, 10)), want: Later},
		{name: "entirely after", other: span(t, 20, 30), wantLeft: ptr(span(t, 1, 10)), want: Earlier},
		{name: "entirely before", other: span(t, -30, -20), wantRight: ptr(span(t, 1, 10)), want: Later},
		{name: "shares start", other: span(t, 1, 4), wantRight: ptr(span(t, 5, 10)), want: Later},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			left, right := r.Subtract(tt.other)
			assert.Equal(t, tt.wantLeft, left)
			assert.Equal(t, tt.wantRight, right)
			assert.Equal(t, tt.want, r.Compare(tt.other))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestRangeIntersectUnionMerge(t *testing.T) {
	t.Parallel()

	a := span(t, 1, 10)

	got, ok := a.Intersect(span(t, 5, 20))
	require.True(t, ok)
	assert.Equal(t, span(t, 5, 10), got)

	_, ok = a.Intersect(span(t, 11, 20))
	assert.False(t, ok)
	assert.False(t, a.Overlaps(span(t, 11, 20)))

	got, ok = a.Union(span(t, 5, 20))
	require.True(t, ok)
	assert.Equal(t, span(t, 1, 20), got)

	_, ok = a.Union(span(t, 11, 20))
	assert.False(t, ok, "adjacent ranges do not intersect")

	got, ok = a.Merge(span(t, 11, 20))
	require.True(t, ok)
	assert.Equal(t, span(t, 1, 20), got)
	assert.True(t, a.Touches(span(t, -5, 0)))

	_, ok = a.Merge(span(t, 12, 20))
	assert.False(t, ok)
}

func TestRangeAdjacencyAtIndexEdges(t *testing.T) {
	t.Parallel()

	top, ok := NewRange(Day(math.MaxInt64), 1)
	require.True(t, ok)
	bottom, ok := NewRange(Day(math.MinInt64), 1)
	require.True(t, ok)

	assert.False(t, top.Touches(bottom), "MaxInt64 and MinInt64 are not neighbours")
	assert.False(t, bottom.Touches(top))
	_, ok = top.Merge(bottom)
	assert.False(t, ok)

	below, ok := NewRange(Day(math.MaxInt64-2), 2)
	require.True(t, ok)
	assert.True(t, below.Touches(top))
	merged, ok := below.Merge(top)
	require.True(t, ok)
	assert.Equal(t, uint32(3), merged.Len())

	set := NewRangeSet(top, bottom, below)
	assert.Equal(t, uint64(4), set.Len())
}

func TestRangeSubtractAtIndexEdges(t *testing.T) {
	t.Parallel()

	r, ok := NewRange(Day(math.MinInt64), 10)
	require.True(t, ok)
	head, ok := NewRange(Day(math.MinInt64), 3)
	require.True(t, ok)

	require.NotPanics(t, func() {
		left, right := r.Subtract(head)
		assert.Nil(t, left)
		require.NotNil(t, right)
		assert.Equal(t, Day(math.MinInt64+3), right.Start())
		assert.Equal(t, Later, r.Compare(head))
	})

	top, ok := NewRange(Day(math.MaxInt64-9), 10)
	require.True(t, ok)
	tail, ok := NewRange(Day(math.MaxInt64-1), 2)
	require.True(t, ok)

	require.NotPanics(t, func() {
		left, right := top.Subtract(tail)
		assert.Nil(t, right)
		require.NotNil(t, left)
		assert.Equal(t, Day(math.MaxInt64-2), left.End())
		assert.Equal(t, Earlier, top.Compare(tail))
	})
}

func TestRangeContainsAndIndexOf(t *testing.T) {
	t.Parallel()

	r := span(t, 10, 14)
	assert.True(t, r.Contains(Day(10)))
	assert.True(t, r.Contains(Day(14)))
	assert.False(t, r.Contains(Day(9)))
	assert.False(t, r.Contains(Day(15)))

	i, ok := r.IndexOf(Day(12))
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = r.IndexOf(Day(15))
	assert.False(t, ok)

	assert.Equal(t, []int64{10, 11, 12, 13, 14}, r.Indexes())
}

func TestRangeString(t *testing.T) {
	t.Parallel()

	start, err := ParseDay("2021-01-01")
	require.NoError(t, err)
	r, ok := NewRange(start, 31)
	require.True(t, ok)

	assert.Equal(t, "[2021-01-01, 2021-01-31]", r.String())
	assert.Equal(t, "∅", Range[Day]{}.String())
	assert.Equal(t, "Earlier", Earlier.String())
}

func TestRangeJSON(t *testing.T) {
	t.Parallel()

	start, err := ParseMonth("Nov-2020")
	require.NoError(t, err)
	r, ok := NewRange(start, 3)
	require.True(t, ok)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"Nov-2020","length":3}`, string(data))

	var back Range[Month]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)

	err = json.Unmarshal([]byte(`{"start":"Nov-2020","length":0}`), &back)
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = json.Marshal(Range[Month]{})
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestRangeYAML(t *testing.T) {
	t.Parallel()

	start, err := ParseQuarter("Q2-2021")
	require.NoError(t, err)
	r, ok := NewRange(start, 2)
	require.True(t, ok)

	data, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "start: Q2-2021\nlength: 2\n", string(data))

	var back Range[Quarter]
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, r, back)

	err = yaml.Unmarshal([]byte("start: Q2-2021\nlength: 0\n"), &back)
	assert.ErrorIs(t, err, ErrEmptyRange)
}
