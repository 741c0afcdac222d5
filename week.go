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

const (
	weekPrefix  = "Week starting "
	weekFormat  = weekPrefix + "2006-01-02"
	weekTextLen = len(weekFormat)
)

// StartDay selects the weekday a Week begins on. The marker types Monday
// through Sunday are the only implementations a caller needs.
type StartDay interface {
	Weekday() time.Weekday
}

// Start day markers for Week.
type (
	Monday    struct{}
	Tuesday   struct{}
	Wednesday struct{}
	Thursday  struct{}
	Friday    struct{}
	Saturday  struct{}
	Sunday    struct{}
)

func (Monday) Weekday() time.Weekday    { return time.Monday }
func (Tuesday) Weekday() time.Weekday   { return time.Tuesday }
func (Wednesday) Weekday() time.Weekday { return time.Wednesday }
func (Thursday) Weekday() time.Weekday  { return time.Thursday }
func (Friday) Weekday() time.Weekday    { return time.Friday }
func (Saturday) Weekday() time.Weekday  { return time.Saturday }
func (Sunday) Weekday() time.Weekday    { return time.Sunday }

// Week is seven days beginning on the weekday chosen by D. Index 0 is the
// week starting on the first D on or after Monday 2021-01-04.
// Text form: "Week starting 2006-01-02".
type Week[D StartDay] struct {
	n int64
}

// weekAnchor returns the start date of week 0 for weeks starting on wd.
func weekAnchor(wd time.Weekday) civil.Date {
	offset := (int(wd) + 6) % 7 // days after Monday
	return civil.Date{Year: 2021, Month: time.January, Day: 4 + offset}
}

func startDay[D StartDay]() time.Weekday {
	var d D
	return d.Weekday()
}

// WeekFromDate returns the week containing date.
func WeekFromDate[D StartDay](date civil.Date) Week[D] {
	days := date.DaysSince(weekAnchor(startDay[D]()))
	return Week[D]{n: floorDiv(int64(days), 7)}
}

// ParseWeek parses "Week starting 2006-01-02". The date must fall on D.
func ParseWeek[D StartDay](s string) (Week[D], error) {
	if len(s) != weekTextLen {
		return Week[D]{}, &InputLengthError{Format: weekFormat, Required: weekTextLen, Actual: len(s)}
	}
	if s[:len(weekPrefix)] != weekPrefix {
		return Week[D]{}, &ParseError{Kind: Week[D]{}.Name(), Input: s}
	}
	date, err := civil.ParseDate(s[len(weekPrefix):])
	if err != nil {
		return Week[D]{}, &ParseError{Kind: Week[D]{}.Name(), Input: s, Err: err}
	}
	if required := startDay[D](); date.Weekday() != required {
		return Week[D]{}, &StartDayError{Date: date, Required: required, Actual: date.Weekday()}
	}
	return WeekFromDate[D](date), nil
}

// Index implements Period.
func (w Week[D]) Index() int64 { return w.n }

// FromIndex implements Period.
func (Week[D]) FromIndex(idx int64) Week[D] { return Week[D]{n: idx} }

// Succ implements Period.
func (w Week[D]) Succ(n uint32) Week[D] { return Week[D]{n: succIndex(w.n, n)} }

// Pred implements Period.
func (w Week[D]) Pred(n uint32) Week[D] { return Week[D]{n: predIndex(w.n, n)} }

// Between implements Period.
func (w Week[D]) Between(other Week[D]) int64 { return between(w.n, other.n) }

// Instant implements Period.
func (w Week[D]) Instant() time.Time { return w.StartDate().In(time.UTC) }

// Name implements Period.
func (Week[D]) Name() string { return "Week[StartDay:" + startDay[D]().String() + "]" }

// StartDate implements DateAligned.
func (w Week[D]) StartDate() civil.Date {
	return weekAnchor(startDay[D]()).AddDays(int(w.n * 7))
}

// FromDate implements DateAligned.
func (Week[D]) FromDate(date civil.Date) Week[D] { return WeekFromDate[D](date) }

// StartDay returns the weekday the week begins on.
func (Week[D]) StartDay() time.Weekday { return startDay[D]() }

// String returns "Week starting 2006-01-02".
func (w Week[D]) String() string {
	return weekPrefix + w.StartDate().String()
}

// MarshalText implements encoding.TextMarshaler.
func (w Week[D]) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Week[D]) UnmarshalText(text []byte) error {
	parsed, err := ParseWeek[D](string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Weeks must satisfy DateAligned.
var _ = EndDate[Week[Monday]]
