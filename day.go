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
	"time"

	"cloud.google.com/go/civil"
)

const secondsPerDay = 24 * 60 * 60

// epochUnix is 0000-01-01T00:00:00Z, day zero of the proleptic Gregorian
// calendar used by Day.
var epochUnix = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

// Day is a single calendar day. Its index counts days since 0000-01-01.
// Text form: "2006-01-02".
type Day int64

// DayFromDate returns the day of d.
func DayFromDate(d civil.Date) Day {
	return Day(floorDiv(d.In(time.UTC).Unix()-epochUnix, secondsPerDay))
}

// DayFromTime returns the day t falls on in t's own location.
func DayFromTime(t time.Time) Day {
	return DayFromDate(civil.DateOf(t))
}

// ParseDay parses "2006-01-02".
func ParseDay(s string) (Day, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return 0, &ParseError{Kind: "Day", Input: s, Err: err}
	}
	return DayFromDate(d), nil
}

// Index implements Period.
func (d Day) Index() int64 { return int64(d) }

// FromIndex implements Period.
func (Day) FromIndex(idx int64) Day { return Day(idx) }

// Succ implements Period.
func (d Day) Succ(n uint32) Day { return Day(succIndex(int64(d), n)) }

// Pred implements Period.
func (d Day) Pred(n uint32) Day { return Day(predIndex(int64(d), n)) }

// Between implements Period.
func (d Day) Between(other Day) int64 { return between(int64(d), int64(other)) }

// Instant implements Period.
func (d Day) Instant() time.Time {
	return time.Unix(epochUnix+int64(d)*secondsPerDay, 0).UTC()
}

// Name implements Period.
func (Day) Name() string { return "Day" }

// StartDate implements DateAligned.
func (d Day) StartDate() civil.Date {
	return civil.DateOf(d.Instant())
}

// FromDate implements DateAligned.
func (Day) FromDate(date civil.Date) Day { return DayFromDate(date) }

// Date is StartDate; a day has only one date.
func (d Day) Date() civil.Date { return d.StartDate() }

// Year returns the year containing the day.
func (d Day) Year() Year { return YearFromDate(d.StartDate()) }

// Quarter returns the quarter containing the day.
func (d Day) Quarter() Quarter { return QuarterFromDate(d.StartDate()) }

// Month returns the month containing the day.
func (d Day) Month() Month { return MonthFromDate(d.StartDate()) }

// Weekday returns the day of the week.
func (d Day) Weekday() time.Weekday { return d.StartDate().Weekday() }

// String returns the day as "2006-01-02".
func (d Day) String() string {
	return d.StartDate().String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Day must satisfy DateAligned.
var _ = EndDate[Day]
