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
	"iter"
	"slices"
	"strings"
)

// RangeSet is a set of periods of one kind stored as sorted, disjoint ranges.
// It holds the results of range algebra that are not contiguous, such as the
// union of two ranges with a gap between them.
//
// Ranges are stored in normalized form: sorted, non-overlapping, and with no
// adjacent ranges that could be merged. Two sets holding the same periods
// therefore have identical range lists.
//
// Example:
//
//	a, _ := NewRange(jan1, 10)
//	b, _ := NewRange(jan1.Succ(20), 5)
//	set := NewRangeSet(a, b)
//	set.Contains(jan1.Succ(15)) // false
type RangeSet[P Period[P]] struct {
	ranges []Range[P]
}

// NewRangeSet creates a set holding every period of the given ranges.
func NewRangeSet[P Period[P]](ranges ...Range[P]) *RangeSet[P] {
	return &RangeSet[P]{ranges: normalizeRanges(slices.Clone(ranges))}
}

// RangeSetFromIndexes creates a set from raw monotonic indices.
func RangeSetFromIndexes[P Period[P]](indices []int64) *RangeSet[P] {
	return &RangeSet[P]{ranges: Coalesce[P](indices)}
}

// normalizeRanges canonicalizes a slice of ranges by:
//  1. Dropping invalid zero-length ranges
//  2. Sorting by start
//  3. Merging overlapping or adjacent ranges
func normalizeRanges[P Period[P]](ranges []Range[P]) []Range[P] {
	filtered := ranges[:0]
	for _, r := range ranges {
		if r.length > 0 {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) == 0 {
		return nil
	}

	slices.SortFunc(filtered, func(a, b Range[P]) int {
		return Compare(a.start, b.start)
	})

	merged := filtered[:1]
	for _, current := range filtered[1:] {
		last := &merged[len(merged)-1]
		if m, ok := last.Merge(current); ok {
			*last = m
		} else {
			merged = append(merged, current)
		}
	}

	out := make([]Range[P], len(merged))
	copy(out, merged)
	return out
}

// Union returns the periods in either set.
func (s *RangeSet[P]) Union(other *RangeSet[P]) *RangeSet[P] {
	ranges := slices.Clone(s.ranges)
	ranges = append(ranges, other.ranges...)
	return &RangeSet[P]{ranges: normalizeRanges(ranges)}
}

// Intersection returns the periods in both sets.
func (s *RangeSet[P]) Intersection(other *RangeSet[P]) *RangeSet[P] {
	if len(s.ranges) == 0 || len(other.ranges) == 0 {
		return &RangeSet[P]{}
	}

	result := make([]Range[P], 0, len(s.ranges))
	i, j := 0, 0
	for i < len(s.ranges) && j < len(other.ranges) {
		if r, ok := s.ranges[i].Intersect(other.ranges[j]); ok {
			result = append(result, r)
		}

		if s.ranges[i].End().Index() < other.ranges[j].End().Index() {
			i++
		} else {
			j++
		}
	}

	return &RangeSet[P]{ranges: normalizeRanges(result)}
}

// Difference returns the periods in s that are not in other.
func (s *RangeSet[P]) Difference(other *RangeSet[P]) *RangeSet[P] {
	if len(s.ranges) == 0 || len(other.ranges) == 0 {
		return &RangeSet[P]{ranges: slices.Clone(s.ranges)}
	}

	var result []Range[P]
	j := 0
	for _, r := range s.ranges {
		// Ranges of other that end before r also end before every later r.
		for j < len(other.ranges) && other.ranges[j].End().Index() < r.start.Index() {
			j++
		}

		current, remaining := r, true
		for k := j; k < len(other.ranges) && remaining; k++ {
			cut := other.ranges[k]
			if cut.start.Index() > current.End().Index() {
				break
			}
			left, right := current.Subtract(cut)
			if left != nil {
				result = append(result, *left)
			}
			if right != nil {
				current = *right
			} else {
				remaining = false
			}
		}
		if remaining {
			result = append(result, current)
		}
	}

	return &RangeSet[P]{ranges: normalizeRanges(result)}
}

// Contains reports whether p is in the set.
func (s *RangeSet[P]) Contains(p P) bool {
	idx := p.Index()
	i, found := slices.BinarySearchFunc(s.ranges, idx, func(r Range[P], target int64) int {
		switch {
		case r.End().Index() < target:
			return -1
		case r.start.Index() > target:
			return 1
		default:
			return 0
		}
	})
	return found && s.ranges[i].Contains(p)
}

// IsEmpty returns true if the set holds no periods.
func (s *RangeSet[P]) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Len returns the number of periods in the set.
func (s *RangeSet[P]) Len() uint64 {
	var n uint64
	for _, r := range s.ranges {
		n += uint64(r.length)
	}
	return n
}

// IsSubset returns true if every period in s is also in other.
func (s *RangeSet[P]) IsSubset(other *RangeSet[P]) bool {
	if len(s.ranges) == 0 {
		return true
	}
	if len(other.ranges) == 0 {
		return false
	}

	i, j := 0, 0
	for i < len(s.ranges) {
		if j >= len(other.ranges) {
			return false
		}

		if s.ranges[i].Compare(other.ranges[j]) == Subset {
			i++
			continue
		}

		if other.ranges[j].End().Index() < s.ranges[i].start.Index() {
			j++
			continue
		}

		return false
	}

	return true
}

// IsDisjoint returns true if the sets have no period in common.
func (s *RangeSet[P]) IsDisjoint(other *RangeSet[P]) bool {
	return s.Intersection(other).IsEmpty()
}

// Ranges returns an iterator over the normalized ranges in ascending order.
func (s *RangeSet[P]) Ranges() iter.Seq[Range[P]] {
	return slices.Values(s.ranges)
}

// String returns a human-readable representation of the set.
// Empty sets display as "∅" and ranges are joined with " || ".
func (s *RangeSet[P]) String() string {
	if len(s.ranges) == 0 {
		return "∅"
	}

	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, " || ")
}
