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
	"encoding"
	"fmt"
	"math"
	"strings"
)

// ParseRange parses a range expression of one period kind.
//
// Supported syntax:
//   - A single period: "2021-01-01"
//   - An inclusive span: "2021-01-01..2021-01-31"
//   - A union of either, separated by "||": "Jan-2021..Mar-2021 || Jun-2021"
//
// Every part is parsed with P's UnmarshalText. A span whose end precedes its
// start is an error wrapping ErrEmptyRange, and a span of math.MaxUint32 or
// more periods is an error wrapping *OverflowError. The result is normalized, so overlapping or adjacent
// parts are merged.
//
// Examples:
//
//	ParseRange[Day]("2021-01-01..2021-01-31")
//	ParseRange[Quarter]("Q1-2021 || Q3-2021..Q4-2021")
func ParseRange[P Period[P], PT interface {
	*P
	encoding.TextUnmarshaler
}](s string) (*RangeSet[P], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("invalid empty range expression")
	}

	var ranges []Range[P]
	for _, part := range strings.Split(s, "||") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("invalid empty range in %q", s)
		}

		r, err := parseSpan[P, PT](part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}

	return NewRangeSet(ranges...), nil
}

// parseSpan parses "A" or "A..B".
func parseSpan[P Period[P], PT interface {
	*P
	encoding.TextUnmarshaler
}](part string) (Range[P], error) {
	startText, endText, isSpan := strings.Cut(part, "..")

	var start P
	if err := PT(&start).UnmarshalText([]byte(strings.TrimSpace(startText))); err != nil {
		return Range[P]{}, err
	}
	if !isSpan {
		r, _ := NewRange(start, 1)
		return r, nil
	}

	var end P
	if err := PT(&end).UnmarshalText([]byte(strings.TrimSpace(endText))); err != nil {
		return Range[P]{}, err
	}
	d, ok := distance(start.Index(), end.Index())
	if !ok {
		return Range[P]{}, &ParseError{Kind: start.Name(), Input: part, Err: ErrEmptyRange}
	}
	if d >= math.MaxUint32 {
		overflow := &OverflowError{Op: "length", Index: start.Index(), Delta: int64(min(d, math.MaxInt64))}
		return Range[P]{}, &ParseError{Kind: start.Name(), Input: part, Err: overflow}
	}
	r, _ := FromStartEnd(start, end)
	return r, nil
}
