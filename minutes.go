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

const (
	minutesLayout    = "2006-01-02 15:04"
	minutesSeparator = " => "
)

// Width selects how many minutes wide a Minutes bucket is.
//
// For sensible behaviour the width should either divide an hour (1, 2, 3, 4,
// 5, 6, 10, 12, 15, 20, 30, 60) or be a whole number of hours dividing a day.
// Other widths give buckets that do not line up with days.
//
// Example custom width:
//
//	type TwentyMinutes struct{}
//
//	func (TwentyMinutes) Minutes() int64 { return 20 }
type Width interface {
	Minutes() int64
}

// Bucket width markers for Minutes.
type (
	Minute         struct{}
	TwoMinutes     struct{}
	FiveMinutes    struct{}
	TenMinutes     struct{}
	FifteenMinutes struct{}
	HalfHour       struct{}
	Hour           struct{}
)

func (Minute) Minutes() int64         { return 1 }
func (TwoMinutes) Minutes() int64     { return 2 }
func (FiveMinutes) Minutes() int64    { return 5 }
func (TenMinutes) Minutes() int64     { return 10 }
func (FifteenMinutes) Minutes() int64 { return 15 }
func (HalfHour) Minutes() int64       { return 30 }
func (Hour) Minutes() int64           { return 60 }

// Minutes is a fixed-width bucket of W minutes. Its index counts buckets since
// the Unix epoch, so bucket boundaries are aligned to midnight UTC for widths
// that divide a day.
//
// Text form: "2006-01-02 15:04" for one-minute buckets, otherwise the first
// and last minute of the bucket, "2006-01-02 15:00 => 2006-01-02 15:04".
type Minutes[W Width] struct {
	index int64
}

func widthOf[W Width]() int64 {
	var w W
	return w.Minutes()
}

func bucketSeconds[W Width]() int64 {
	return widthOf[W]() * 60
}

// MinutesFromTime returns the bucket containing t.
func MinutesFromTime[W Width](t time.Time) Minutes[W] {
	return Minutes[W]{index: floorDiv(t.Unix(), bucketSeconds[W]())}
}

// ParseMinutes parses the text form of a bucket. The start must be aligned to
// the bucket width and, for buckets wider than a minute, the end must be the
// last minute of the bucket.
func ParseMinutes[W Width](s string) (Minutes[W], error) {
	kind := Minutes[W]{}.Name()
	width := widthOf[W]()

	if width == 1 {
		t, err := time.Parse(minutesLayout, s)
		if err != nil {
			return Minutes[W]{}, &ParseError{Kind: kind, Input: s, Err: err}
		}
		return MinutesFromTime[W](t), nil
	}

	startText, endText, ok := strings.Cut(s, minutesSeparator)
	if !ok {
		return Minutes[W]{}, &ParseError{Kind: kind, Input: s, Err: fmt.Errorf("missing %q", minutesSeparator)}
	}
	start, err := time.Parse(minutesLayout, startText)
	if err != nil {
		return Minutes[W]{}, &ParseError{Kind: kind, Input: s, Err: err}
	}
	if floorMod(start.Unix(), bucketSeconds[W]()) != 0 {
		return Minutes[W]{}, &ParseError{Kind: kind, Input: s, Err: fmt.Errorf("start %s is not aligned", startText)}
	}
	end, err := time.Parse(minutesLayout, endText)
	if err != nil {
		return Minutes[W]{}, &ParseError{Kind: kind, Input: s, Err: err}
	}
	if end.Sub(start) != time.Duration(width-1)*time.Minute {
		return Minutes[W]{}, &ParseError{Kind: kind, Input: s, Err: fmt.Errorf("end %s does not close the bucket", endText)}
	}
	return MinutesFromTime[W](start), nil
}

// Index implements Period.
func (m Minutes[W]) Index() int64 { return m.index }

// FromIndex implements Period.
func (Minutes[W]) FromIndex(idx int64) Minutes[W] { return Minutes[W]{index: idx} }

// Succ implements Period.
func (m Minutes[W]) Succ(n uint32) Minutes[W] { return Minutes[W]{index: succIndex(m.index, n)} }

// Pred implements Period.
func (m Minutes[W]) Pred(n uint32) Minutes[W] { return Minutes[W]{index: predIndex(m.index, n)} }

// Between implements Period.
func (m Minutes[W]) Between(other Minutes[W]) int64 { return between(m.index, other.index) }

// Instant implements Period.
func (m Minutes[W]) Instant() time.Time {
	return time.Unix(m.index*bucketSeconds[W](), 0).UTC()
}

// Name implements Period.
func (Minutes[W]) Name() string {
	return "Minutes[Length:" + strconv.FormatInt(widthOf[W](), 10) + "]"
}

// OccursOn implements SubDay.
func (m Minutes[W]) OccursOn() civil.Date {
	return civil.DateOf(m.Instant())
}

// FirstOn implements SubDay.
func (Minutes[W]) FirstOn(d civil.Date) Minutes[W] {
	return MinutesFromTime[W](d.In(time.UTC))
}

// Width returns the bucket width.
func (Minutes[W]) Width() time.Duration {
	return time.Duration(widthOf[W]()) * time.Minute
}

// String returns the text form of the bucket.
func (m Minutes[W]) String() string {
	start := m.Instant()
	width := widthOf[W]()
	if width == 1 {
		return start.Format(minutesLayout)
	}
	last := start.Add(time.Duration(width-1) * time.Minute)
	return start.Format(minutesLayout) + minutesSeparator + last.Format(minutesLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (m Minutes[W]) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Minutes[W]) UnmarshalText(text []byte) error {
	parsed, err := ParseMinutes[W](string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Minutes must satisfy SubDay.
var _ = LastOn[Minutes[FiveMinutes]]
