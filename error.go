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
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ErrEmptyRange is returned when a range is decoded or built from an empty set
// of periods. Constructors that can legitimately produce nothing report that
// with a false ok value instead.
var ErrEmptyRange = errors.New("time range cannot be created from an empty set of periods")

// ParseError reports text that could not be read as a period of the given kind.
type ParseError struct {
	Kind  string
	Input string
	Err   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %s from %q: %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("parsing %s from %q", e.Kind, e.Input)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StartDayError indicates that a week was written with a date that does not
// fall on the week's configured start day.
type StartDayError struct {
	Date     civil.Date
	Required time.Weekday
	Actual   time.Weekday
}

// Error implements the error interface
func (e *StartDayError) Error() string {
	return fmt.Sprintf("date %s is a %s but the week starts on %s", e.Date, e.Actual, e.Required)
}

// InputLengthError indicates fixed-width text of the wrong length.
type InputLengthError struct {
	Format   string
	Required int
	Actual   int
}

// Error implements the error interface
func (e *InputLengthError) Error() string {
	return fmt.Sprintf("unexpected input length for format %q: got %d but needed %d", e.Format, e.Actual, e.Required)
}

// ConflictError is returned by a cache with conflict checking enabled when new
// data for a key differs from the data it already holds.
type ConflictError struct {
	Key any
	Old any
	New any
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("got new data for %v: %v different from data already in the cache %v", e.Key, e.New, e.Old)
}

// UnknownKindError is returned by a Registry asked about a kind it does not hold.
type UnknownKindError struct {
	Kind string
}

// Error implements the error interface
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown period kind %q", e.Kind)
}

// OverflowError describes index arithmetic that left the int64 domain, or a
// range whose length does not fit in a uint32. It is raised with panic: a
// wrapped index would silently break chronological order.
type OverflowError struct {
	Op    string
	Index int64
	Delta int64
}

// Error implements the error interface
func (e *OverflowError) Error() string {
	return fmt.Sprintf("period index overflow in %s: %d %+d", e.Op, e.Index, e.Delta)
}

var (
	_ error = (*ParseError)(nil)
	_ error = (*StartDayError)(nil)
	_ error = (*InputLengthError)(nil)
	_ error = (*ConflictError)(nil)
	_ error = (*UnknownKindError)(nil)
	_ error = (*OverflowError)(nil)
)
