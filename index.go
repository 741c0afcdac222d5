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

import "math"

// addIndex returns idx+delta, panicking with *OverflowError instead of wrapping.
func addIndex(op string, idx, delta int64) int64 {
	sum := idx + delta
	if (delta > 0 && sum < idx) || (delta < 0 && sum > idx) {
		panic(&OverflowError{Op: op, Index: idx, Delta: delta})
	}
	return sum
}

// succIndex steps an index forward by n.
func succIndex(idx int64, n uint32) int64 {
	return addIndex("succ", idx, int64(n))
}

// predIndex steps an index back by n.
func predIndex(idx int64, n uint32) int64 {
	return addIndex("pred", idx, -int64(n))
}

// between returns to-from, panicking when the distance is not representable.
func between(from, to int64) int64 {
	d := to - from
	if (to >= from) != (d >= 0) {
		panic(&OverflowError{Op: "between", Index: from, Delta: d})
	}
	return d
}

// distance returns to-from as an unsigned count without overflow, or false
// when to precedes from.
func distance(from, to int64) (uint64, bool) {
	if to < from {
		return 0, false
	}
	return uint64(to) - uint64(from), true
}

// adjacent reports whether b directly follows a.
func adjacent(a, b int64) bool {
	d, ok := distance(a, b)
	return ok && d == 1
}

// rangeLength converts an inclusive distance into a range length.
func rangeLength(from int64, dist int64) uint32 {
	if dist < 0 || dist >= math.MaxUint32 {
		panic(&OverflowError{Op: "length", Index: from, Delta: dist})
	}
	return uint32(dist) + 1
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the non-negative remainder matching floorDiv for positive b.
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
