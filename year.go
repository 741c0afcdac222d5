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
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

// Year is a calendar year; its index is the year number.
// Text form: "2006".
type Year int64

// YearFromDate returns the year containing d.
func YearFromDate(d civil.Date) Year {
	return Year(d.Year)
}

// ParseYear parses a year number such as "2006".
func ParseYear(s string) (Year, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &ParseError{Kind: "Year", Input: s, Err: err}
	}
	return Year(n), nil
}

// Index implements Period.
func (y Year) Index() int64 { return int64(y) }

// FromIndex implements Period.
func (Year) FromIndex(idx int64) Year { return Year(idx) }

// Succ implements Period.
func (y Year) Succ(n uint32) Year { return Year(succIndex(int64(y), n)) }

// Pred implements Period.
func (y Year) Pred(n uint32) Year { return Year(predIndex(int64(y), n)) }

// Between implements Period.
func (y Year) Between(other Year) int64 { return between(int64(y), int64(other)) }

// Instant implements Period.
func (y Year) Instant() time.Time { return y.StartDate().In(time.UTC) }

// Name implements Period.
func (Year) Name() string { return "Year" }

// StartDate implements DateAligned.
func (y Year) StartDate() civil.Date {
	return civil.Date{Year: int(y), Month: time.January, Day: 1}
}

// FromDate implements DateAligned.
func (Year) FromDate(d civil.Date) Year { return YearFromDate(d) }

// FirstMonth returns January of the year.
func (y Year) FirstMonth() Month { return NewMonth(int(y), time.January) }

// LastMonth returns December of the year.
func (y Year) LastMonth() Month { return NewMonth(int(y), time.December) }

// FirstQuarter returns Q1 of the year.
func (y Year) FirstQuarter() Quarter { return Quarter(int64(y) * 4) }

// LastQuarter returns Q4 of the year.
func (y Year) LastQuarter() Quarter { return y.FirstQuarter().Succ(3) }

// String returns the year number.
func (y Year) String() string {
	return strconv.FormatInt(int64(y), 10)
}

// MarshalText implements encoding.TextMarshaler.
func (y Year) MarshalText() ([]byte, error) {
	return []byte(y.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (y *Year) UnmarshalText(text []byte) error {
	parsed, err := ParseYear(string(text))
	if err != nil {
		return err
	}
	*y = parsed
	return nil
}

// Year must satisfy DateAligned.
var _ = EndDate[Year]
