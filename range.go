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
	"fmt"
	"iter"
	"math"
	"slices"

	"gopkg.in/yaml.v3"
)

// Range is a contiguous, inclusive run of periods of one kind, stored as a
// start period and a count. It denotes exactly Len() periods:
// Start(), Start().Succ(1), ..., Start().Succ(Len()-1) == End().
//
// A zero-length range does not exist: every constructor reports absence with
// a false ok value instead. The zero Range value is not a valid range.
//
// Example:
//
//	jan, _ := ParseDay("2021-01-01")
//	r, _ := NewRange(jan, 31)
//	r.End()                       // 2021-01-31
//	r.Contains(jan.Succ(40))      // false
type Range[P Period[P]] struct {
	start  P
	length uint32
}

// Comparison classifies one range against another, see Range.Compare.
type Comparison int

const (
	// Superset means the other range lies strictly inside, with remainder on both sides.
	Superset Comparison = iota
	// Subset means the range lies inside, or equals, the other range.
	Subset
	// Earlier means only a remainder before the other range is left.
	Earlier
	// Later means only a remainder after the other range is left.
	Later
)

// String returns the name of the comparison.
func (c Comparison) String() string {
	switch c {
	case Superset:
		return "Superset"
	case Subset:
		return "Subset"
	case Earlier:
		return "Earlier"
	case Later:
		return "Later"
	default:
		return fmt.Sprintf("Comparison(%d)", int(c))
	}
}

// NewRange creates a range of length periods starting at start, returning
// false if length is zero.
func NewRange[P Period[P]](start P, length uint32) (Range[P], bool) {
	if length == 0 {
		return Range[P]{}, false
	}
	return Range[P]{start: start, length: length}, true
}

// FromStartEnd creates the range from start to end inclusive, returning false
// if end precedes start. A span longer than math.MaxUint32 periods panics with
// *OverflowError.
func FromStartEnd[P Period[P]](start, end P) (Range[P], bool) {
	if start.Index() > end.Index() {
		return Range[P]{}, false
	}
	return Range[P]{start: start, length: rangeLength(start.Index(), start.Between(end))}, true
}

// FromSet creates a range from periods that are already known to be
// contiguous. Duplicates are ignored. It returns false if periods is empty or
// has a hole.
func FromSet[P Period[P]](periods []P) (Range[P], bool) {
	if len(periods) == 0 {
		return Range[P]{}, false
	}

	indexes := make([]int64, len(periods))
	for i, p := range periods {
		indexes[i] = p.Index()
	}
	slices.Sort(indexes)
	indexes = slices.Compact(indexes)

	if uint64(len(indexes)) > math.MaxUint32 {
		return Range[P]{}, false
	}
	first := indexes[0]
	for i, idx := range indexes {
		if idx-first != int64(i) {
			return Range[P]{}, false
		}
	}

	return NewRange(FromIndex[P](first), uint32(len(indexes)))
}

// IndexSpan is a maximal run of consecutive indices, First through Last
// inclusive. Unlike Range it is not tied to a period kind or a length limit.
type IndexSpan struct {
	First int64 `json:"first" yaml:"first"`
	Last  int64 `json:"last" yaml:"last"`
}

// Count returns the number of indices in the span. It saturates at
// math.MaxUint64 for the span covering every int64.
func (s IndexSpan) Count() uint64 {
	d, _ := distance(s.First, s.Last)
	if d == math.MaxUint64 {
		return d
	}
	return d + 1
}

// CoalesceIndexes groups raw indices into the minimal list of maximal
// contiguous spans, sorted ascending. The input need not be sorted and may
// contain duplicates. An empty input yields nil.
func CoalesceIndexes(indices []int64) []IndexSpan {
	if len(indices) == 0 {
		return nil
	}

	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var spans []IndexSpan
	current := IndexSpan{First: sorted[0], Last: sorted[0]}
	for _, idx := range sorted[1:] {
		if adjacent(current.Last, idx) {
			current.Last = idx
			continue
		}
		spans = append(spans, current)
		current = IndexSpan{First: idx, Last: idx}
	}
	return append(spans, current)
}

// Coalesce groups raw monotonic indices into the minimal list of maximal
// contiguous ranges, sorted ascending. The input need not be sorted and may
// contain duplicates. An empty input yields nil. A run longer than
// math.MaxUint32 periods is split into consecutive ranges.
//
// Example:
//
//	Coalesce[Day]([]int64{1, 2, 3, 7, 8, 10}) // [1..3] [7..8] [10..10]
func Coalesce[P Period[P]](indices []int64) []Range[P] {
	var ranges []Range[P]
	for _, span := range CoalesceIndexes(indices) {
		first := span.First
		for {
			d, _ := distance(first, span.Last)
			if d < math.MaxUint32 {
				ranges = append(ranges, Range[P]{start: FromIndex[P](first), length: uint32(d) + 1})
				break
			}
			ranges = append(ranges, Range[P]{start: FromIndex[P](first), length: math.MaxUint32})
			first += math.MaxUint32
		}
	}
	return ranges
}

// CoalescePeriods is Coalesce over period values.
func CoalescePeriods[P Period[P]](periods []P) []Range[P] {
	indices := make([]int64, len(periods))
	for i, p := range periods {
		indices[i] = p.Index()
	}
	return Coalesce[P](indices)
}

// Start returns the first period of the range.
func (r Range[P]) Start() P {
	return r.start
}

// End returns the last period of the range.
func (r Range[P]) End() P {
	return r.start.Succ(r.length - 1)
}

// Len returns the number of periods in the range.
func (r Range[P]) Len() uint32 {
	return r.length
}

// Contains reports whether p falls within the range.
func (r Range[P]) Contains(p P) bool {
	idx := p.Index()
	return idx >= r.start.Index() && idx <= r.End().Index()
}

// IndexOf returns the offset of p from the start of the range, or false if p
// is outside it.
func (r Range[P]) IndexOf(p P) (int, bool) {
	if !r.Contains(p) {
		return 0, false
	}
	return int(r.start.Between(p)), true
}

// Intersect returns the periods common to both ranges, or false if they do
// not overlap.
func (r Range[P]) Intersect(other Range[P]) (Range[P], bool) {
	return FromStartEnd(maxPeriod(r.start, other.start), minPeriod(r.End(), other.End()))
}

// Overlaps reports whether the two ranges share at least one period.
func (r Range[P]) Overlaps(other Range[P]) bool {
	_, ok := r.Intersect(other)
	return ok
}

// Union returns the range spanning both ranges. The ranges must intersect:
// the union of disjoint ranges is not contiguous, so false is returned.
func (r Range[P]) Union(other Range[P]) (Range[P], bool) {
	if !r.Overlaps(other) {
		return Range[P]{}, false
	}
	return FromStartEnd(minPeriod(r.start, other.start), maxPeriod(r.End(), other.End()))
}

// Touches reports whether the ranges overlap or are directly adjacent.
func (r Range[P]) Touches(other Range[P]) bool {
	if r.Overlaps(other) {
		return true
	}
	return adjacent(r.End().Index(), other.start.Index()) || adjacent(other.End().Index(), r.start.Index())
}

// Merge is like Union but also joins ranges that are adjacent.
func (r Range[P]) Merge(other Range[P]) (Range[P], bool) {
	if !r.Touches(other) {
		return Range[P]{}, false
	}
	return FromStartEnd(minPeriod(r.start, other.start), maxPeriod(r.End(), other.End()))
}

// Subtract removes other from r and returns what is left before and after it.
// Either half is nil when empty.
func (r Range[P]) Subtract(other Range[P]) (left, right *Range[P]) {
	if other.start.Index() > r.start.Index() {
		l, _ := FromStartEnd(r.start, minPeriod(other.start.Pred(1), r.End()))
		left = &l
	}
	if other.End().Index() < r.End().Index() {
		rt, _ := FromStartEnd(maxPeriod(other.End().Succ(1), r.start), r.End())
		right = &rt
	}
	return left, right
}

// Compare classifies r against other from which halves Subtract leaves.
// Partial overlap is folded into Earlier or Later; use Intersect to detect it.
func (r Range[P]) Compare(other Range[P]) Comparison {
	left, right := r.Subtract(other)
	switch {
	case left != nil && right != nil:
		return Superset
	case left != nil:
		return Earlier
	case right != nil:
		return Later
	default:
		return Subset
	}
}

// All returns an iterator over every period in the range, start to end.
// The iterator can be ranged over any number of times.
//
//	for day := range r.All() {
//	    fmt.Println(day)
//	}
func (r Range[P]) All() iter.Seq[P] {
	return func(yield func(P) bool) {
		current := r.start
		for i := uint32(0); i < r.length; i++ {
			if i > 0 {
				current = current.Succ(1)
			}
			if !yield(current) {
				return
			}
		}
	}
}

// Periods returns every period of the range as a slice.
func (r Range[P]) Periods() []P {
	return slices.Collect(r.All())
}

// Indexes returns the monotonic index of every period in the range.
func (r Range[P]) Indexes() []int64 {
	out := make([]int64, 0, r.length)
	first := r.start.Index()
	for i := range int64(r.length) {
		out = append(out, first+i)
	}
	return out
}

// String returns the range as "[start, end]".
func (r Range[P]) String() string {
	if r.length == 0 {
		return "∅"
	}
	return fmt.Sprintf("[%v, %v]", r.start, r.End())
}

type rangeDoc[P Period[P]] struct {
	Start  P      `json:"start" yaml:"start"`
	Length uint32 `json:"length" yaml:"length"`
}

// MarshalJSON encodes the range as {"start": ..., "length": ...}.
func (r Range[P]) MarshalJSON() ([]byte, error) {
	if r.length == 0 {
		return nil, ErrEmptyRange
	}
	return json.Marshal(rangeDoc[P]{Start: r.start, Length: r.length})
}

// UnmarshalJSON decodes a range written by MarshalJSON.
func (r *Range[P]) UnmarshalJSON(data []byte) error {
	var doc rangeDoc[P]
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	out, ok := NewRange(doc.Start, doc.Length)
	if !ok {
		return ErrEmptyRange
	}
	*r = out
	return nil
}

// MarshalYAML encodes the range as a mapping with start and length keys.
func (r Range[P]) MarshalYAML() (any, error) {
	if r.length == 0 {
		return nil, ErrEmptyRange
	}
	return rangeDoc[P]{Start: r.start, Length: r.length}, nil
}

// UnmarshalYAML decodes a range written by MarshalYAML.
func (r *Range[P]) UnmarshalYAML(node *yaml.Node) error {
	var doc rangeDoc[P]
	if err := node.Decode(&doc); err != nil {
		return err
	}
	out, ok := NewRange(doc.Start, doc.Length)
	if !ok {
		return ErrEmptyRange
	}
	*r = out
	return nil
}

var (
	_ json.Marshaler   = Range[Day]{}
	_ json.Unmarshaler = (*Range[Day])(nil)
	_ yaml.Marshaler   = Range[Day]{}
	_ yaml.Unmarshaler = (*Range[Day])(nil)
)
