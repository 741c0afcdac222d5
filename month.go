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
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Month is a calendar month. Its index counts months since January of year 0.
// Text form: "Jan-2006".
type Month int64

var monthNames = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// MonthFromDate returns the month containing d.
func MonthFromDate(d civil.Date) Month {
	return Month(int64(d.Year)*12 + int64(d.Month-1))
}

// NewMonth returns the given month of the given year.
func NewMonth(year int, month time.Month) Month {
	return MonthFromDate(civil.Date{Year: year, Month: month, Day: 1})
}

// ParseMonth parses "Jan-2006".
func ParseMonth(s string) (Month, error) {
	name, yearText, ok := strings.Cut(s, "-")
	if !ok {
		return 0, &ParseError{Kind: "Month", Input: s}
	}
	month, ok := monthNames[name]
	if !ok {
		return 0, &ParseError{Kind: "Month", Input: s, Err: fmt.Errorf("unknown month name %q", name)}
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return 0, &ParseError{Kind: "Month", Input: s, Err: err}
	}
	return NewMonth(year, month), nil
}

// Index implements Period.
func (m Month) Index() int64 { return int64(m) }

// FromIndex implements Period.
func (Month) FromIndex(idx int64) Month { return Month(idx) }

// Succ implements Period.
func (m Month) Succ(n uint32) Month { return Month(succIndex(int64(m), n)) }

// Pred implements Period.
func (m Month) Pred(n uint32) Month { return Month(predIndex(int64(m), n)) }

// Between implements Period.
func (m Month) Between(other Month) int64 { return between(int64(m), int64(other)) }

// Instant implements Period.
func (m Month) Instant() time.Time { return m.StartDate().In(time.UTC) }

// Name implements Period.
func (Month) Name() string { return "Month" }

// StartDate implements DateAligned.
func (m Month) StartDate() civil.Date {
	return civil.Date{
		Year:  int(floorDiv(int64(m), 12)),
		Month: time.Month(floorMod(int64(m), 12) + 1),
		Day:   1,
	}
}

// FromDate implements DateAligned.
func (Month) FromDate(d civil.Date) Month { return MonthFromDate(d) }

// Year returns the year containing the month.
func (m Month) Year() Year { return Year(floorDiv(int64(m), 12)) }

// Quarter returns the quarter containing the month.
func (m Month) Quarter() Quarter { return QuarterFromDate(m.StartDate()) }

// YearNum returns the calendar year number.
func (m Month) YearNum() int { return m.StartDate().Year }

// MonthNum returns the calendar month.
func (m Month) MonthNum() time.Month { return m.StartDate().Month }

// String returns the month as "Jan-2006".
func (m Month) String() string {
	start := m.StartDate()
	return fmt.Sprintf("%s-%04d", start.Month.String()[:3], start.Year)
}

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Month must satisfy DateAligned.
var _ = EndDate[Month]
