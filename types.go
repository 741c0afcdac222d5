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
	"time"

	"cloud.google.com/go/civil"
)

// Period is the capability every period kind provides. P is the implementing
// type itself, so a Range[Day] only ever mixes days with days.
//
// A period is an immutable value wrapping a single int64 index. Index order
// must equal chronological order and FromIndex/Index must be a bijection;
// every algebra guarantee in this package rests on that.
//
// Built-in implementations:
//   - Day, Month, Quarter, Year
//   - Week[D] for a StartDay marker D
//   - Minutes[W] for a Width marker W
//
// Example custom period:
//
//	type Fortnight int64
//
//	func (f Fortnight) Index() int64                { return int64(f) }
//	func (Fortnight) FromIndex(i int64) Fortnight   { return Fortnight(i) }
//	func (f Fortnight) Succ(n uint32) Fortnight     { return Fortnight(int64(f) + int64(n)) }
//	func (f Fortnight) Pred(n uint32) Fortnight     { return Fortnight(int64(f) - int64(n)) }
//	func (f Fortnight) Between(o Fortnight) int64   { return int64(o - f) }
//	func (f Fortnight) Instant() time.Time          { return epoch.AddDate(0, 0, 14*int(f)) }
//	func (Fortnight) Name() string                  { return "Fortnight" }
type Period[P any] interface {
	comparable

	// Index returns the monotonic index of the period.
	Index() int64

	// FromIndex builds the period with the given index. It must not depend
	// on the receiver, so it can be called on the zero value.
	FromIndex(idx int64) P

	// Succ steps forward by exactly n periods.
	Succ(n uint32) P

	// Pred steps back by exactly n periods.
	Pred(n uint32) P

	// Between returns other's index minus this period's index.
	Between(other P) int64

	// Instant returns the earliest instant the period covers, in UTC.
	// It is meant for display and debugging, not for the algebra.
	Instant() time.Time

	// Name returns a human-readable kind label such as "Day".
	Name() string
}

// DateAligned is implemented by periods that are one calendar day or longer.
type DateAligned[P any] interface {
	Period[P]

	// StartDate returns the first calendar date in the period.
	StartDate() civil.Date

	// FromDate returns the period containing the date. Like FromIndex it can
	// be called on the zero value.
	FromDate(d civil.Date) P
}

// SubDay is implemented by periods shorter than one calendar day.
type SubDay[P any] interface {
	Period[P]

	// OccursOn returns the calendar date the period falls on.
	OccursOn() civil.Date

	// FirstOn returns the first period on the given date. It can be called
	// on the zero value.
	FirstOn(d civil.Date) P
}

// FromIndex builds a P from its monotonic index.
func FromIndex[P Period[P]](idx int64) P {
	var zero P
	return zero.FromIndex(idx)
}

// Next is p.Succ(1).
func Next[P Period[P]](p P) P {
	return p.Succ(1)
}

// Prev is p.Pred(1).
func Prev[P Period[P]](p P) P {
	return p.Pred(1)
}

// Compare orders two periods of the same kind chronologically.
func Compare[P Period[P]](a, b P) int {
	return cmp.Compare(a.Index(), b.Index())
}

// Less reports whether a precedes b.
func Less[P Period[P]](a, b P) bool {
	return a.Index() < b.Index()
}

func minPeriod[P Period[P]](a, b P) P {
	if a.Index() <= b.Index() {
		return a
	}
	return b
}

func maxPeriod[P Period[P]](a, b P) P {
	if a.Index() >= b.Index() {
		return a
	}
	return b
}

// FromDate returns the date-aligned period of kind P containing d.
func FromDate[P DateAligned[P]](d civil.Date) P {
	var zero P
	return zero.FromDate(d)
}

// EndDate returns the last calendar date in p.
func EndDate[P DateAligned[P]](p P) civil.Date {
	return p.Succ(1).StartDate().AddDays(-1)
}

// DayCount returns the number of calendar days p covers.
func DayCount[P DateAligned[P]](p P) int {
	return EndDate(p).DaysSince(p.StartDate()) + 1
}

// FirstOn returns the first sub-day period of kind P on d.
func FirstOn[P SubDay[P]](d civil.Date) P {
	var zero P
	return zero.FirstOn(d)
}

// LastOn returns the last sub-day period of kind P on d.
func LastOn[P SubDay[P]](d civil.Date) P {
	return FirstOn[P](d.AddDays(1)).Pred(1)
}

// Rescale returns the range of Q periods that covers p. The result can spill
// past p at either end when Q does not nest inside P (a month in weeks).
func Rescale[Q DateAligned[Q], P DateAligned[P]](p P) Range[Q] {
	r, _ := FromStartEnd(FromDate[Q](p.StartDate()), FromDate[Q](EndDate(p)))
	return r
}

// RescaleRange is Rescale over a whole range.
func RescaleRange[Q DateAligned[Q], P DateAligned[P]](r Range[P]) Range[Q] {
	out, _ := FromStartEnd(FromDate[Q](r.Start().StartDate()), FromDate[Q](EndDate(r.End())))
	return out
}

// ToSubDay returns every S period occurring within the days of p.
func ToSubDay[S SubDay[S], P DateAligned[P]](p P) Range[S] {
	r, _ := FromStartEnd(FirstOn[S](p.StartDate()), LastOn[S](EndDate(p)))
	return r
}

// RangeToSubDay is ToSubDay over a whole range.
func RangeToSubDay[S SubDay[S], P DateAligned[P]](r Range[P]) Range[S] {
	out, _ := FromStartEnd(FirstOn[S](r.Start().StartDate()), LastOn[S](EndDate(r.End())))
	return out
}
