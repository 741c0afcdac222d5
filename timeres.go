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

// Package timeres turns calendar time into discrete, totally ordered periods
// (days, weeks, months, quarters, years and fixed-width minute buckets), each
// addressed by a single int64 index. Successor, predecessor and distance then
// become integer arithmetic regardless of month lengths, leap years, the
// weekday a week starts on, or the width of a sub-day bucket.
//
// On top of the Period contract the package provides:
//
//   - Range, a contiguous run of periods stored as start plus length, with
//     intersection, union, subtraction and comparison
//   - RangeSet, sorted disjoint ranges for results that are not contiguous
//   - Cache and PeriodCache, which remember what has been fetched for which
//     keys and report the minimal gaps still missing
//   - Registry, formatting and parsing of periods whose concrete type has been
//     erased to a kind name and an index
//
// Range and Cache are generic over Period and never inspect a concrete kind,
// so custom period kinds work with them unchanged.
//
// Example:
//
//	q, _ := ParseQuarter("Q1-2021")
//	days := Rescale[Day](q)
//	fmt.Println(days.Len()) // 90
//
//	cache := NewPeriodCache[Day, float64]()
//	resp := cache.Get(days)
//	for _, gap := range resp.Gaps {
//	    cache.Add(gap, fetch(gap))
//	}
package timeres
