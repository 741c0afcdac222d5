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

// Quarter is a calendar quarter. Its index counts quarters since Q1 of year 0.
// Text form: "Q1-2006".
type Quarter int64

// QuarterFromDate returns the quarter containing d.
func QuarterFromDate(d civil.Date) Quarter {
	return Quarter(int64(d.Year)*4 + int64(d.Month-1)/3)
}

// NewQuarter returns quarter q (1-4) of year. It returns false for any other q.
func NewQuarter(year, q int) (Quarter, bool) {
	if q < 1 || q > 4 {
		return 0, false
	}
	return Quarter(int64(year)*4 + int64(q-1)), true
}

// ParseQuarter parses "Q1-2006", or a "2006-01-02" date inside the quarter.
func ParseQuarter(s string) (Quarter, error) {
	if d, err := civil.ParseDate(s); err == nil {
		return QuarterFromDate(d), nil
	}

	qText, yearText, ok := strings.Cut(s, "-")
	if !ok || len(qText) != 2 || qText[0] != 'Q' {
		return 0, &ParseError{Kind: "Quarter", Input: s}
	}
	q, err := strconv.Atoi(qText[1:])
	if err != nil {
		return 0, &ParseError{Kind: "Quarter", Input: s, Err: err}
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return 0, &ParseError{Kind: "Quarter", Input: s, Err: err}
	}
	quarter, ok := NewQuarter(year, q)
	if !ok {
		return 0, &ParseError{Kind: "Quarter", Input: s, Err: fmt.Errorf("quarter %d out of range", q)}
	}
	return quarter, nil
}

// Index implements Period.
func (q Quarter) Index() int64 { return int64(q) }

// FromIndex implements Period.
func (Quarter) FromIndex(idx int64) Quarter { return Quarter(idx) }

// Succ implements Period.
func (q Quarter) Succ(n uint32) Quarter { return Quarter(succIndex(int64(q), n)) }

// Pred implements Period.
func (q Quarter) Pred(n uint32) Quarter { return Quarter(predIndex(int64(q), n)) }

// Between implements Period.
func (q Quarter) Between(other Quarter) int64 { return between(int64(q), int64(other)) }

// Instant implements Period.
func (q Quarter) Instant() time.Time { return q.StartDate().In(time.UTC) }

// Name implements Period.
func (Quarter) Name() string { return "Quarter" }

// StartDate implements DateAligned.
func (q Quarter) StartDate() civil.Date {
	return civil.Date{
		Year:  q.YearNum(),
		Month: time.Month(q.Num()*3 - 2),
		Day:   1,
	}
}

// FromDate implements DateAligned.
func (Quarter) FromDate(d civil.Date) Quarter { return QuarterFromDate(d) }

// Num returns the quarter number within its year, 1 to 4.
func (q Quarter) Num() int { return int(floorMod(int64(q), 4)) + 1 }

// YearNum returns the calendar year number.
func (q Quarter) YearNum() int { return int(floorDiv(int64(q), 4)) }

// Year returns the year containing the quarter.
func (q Quarter) Year() Year { return Year(q.YearNum()) }

// FirstMonth returns the first month of the quarter.
func (q Quarter) FirstMonth() Month { return MonthFromDate(q.StartDate()) }

// LastMonth returns the last month of the quarter.
func (q Quarter) LastMonth() Month { return q.FirstMonth().Succ(2) }

// String returns the quarter as "Q1-2006".
func (q Quarter) String() string {
	return fmt.Sprintf("Q%d-%04d", q.Num(), q.YearNum())
}

// MarshalText implements encoding.TextMarshaler.
func (q Quarter) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quarter) UnmarshalText(text []byte) error {
	parsed, err := ParseQuarter(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Quarter must satisfy DateAligned.
var _ = EndDate[Quarter]
