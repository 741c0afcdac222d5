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
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// Kind formats and parses the periods of one kind from their bare index, for
// code that has erased the concrete period type (log lines, keys of mixed
// caches, wire formats).
type Kind struct {
	// Name is the kind label, the value of Period.Name.
	Name string

	// Format renders the period with the given index as text.
	Format func(idx int64) string

	// Parse reads text written by Format back into an index.
	Parse func(text string) (int64, error)

	// Instant returns the earliest instant of the period with the given index.
	Instant func(idx int64) time.Time
}

// NewKind builds the Kind entry for P from its Stringer and TextUnmarshaler.
//
// Example:
//
//	registry.Register(NewKind[Week[Sunday]]())
func NewKind[P Period[P], PT interface {
	*P
	encoding.TextUnmarshaler
}]() Kind {
	var zero P
	return Kind{
		Name: zero.Name(),
		Format: func(idx int64) string {
			return fmt.Sprint(zero.FromIndex(idx))
		},
		Parse: func(text string) (int64, error) {
			var p P
			if err := PT(&p).UnmarshalText([]byte(text)); err != nil {
				return 0, err
			}
			return p.Index(), nil
		},
		Instant: func(idx int64) time.Time {
			return zero.FromIndex(idx).Instant()
		},
	}
}

// Registry maps kind names to Kind entries. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry creates a registry holding the given kinds.
func NewRegistry(kinds ...Kind) *Registry {
	r := &Registry{kinds: make(map[string]Kind, len(kinds))}
	for _, k := range kinds {
		r.kinds[k.Name] = k
	}
	return r
}

// DefaultRegistry holds every period kind shipped with this package.
var DefaultRegistry = NewRegistry(
	NewKind[Minutes[Minute]](),
	NewKind[Minutes[TwoMinutes]](),
	NewKind[Minutes[FiveMinutes]](),
	NewKind[Minutes[TenMinutes]](),
	NewKind[Minutes[FifteenMinutes]](),
	NewKind[Minutes[HalfHour]](),
	NewKind[Minutes[Hour]](),
	NewKind[Day](),
	NewKind[Week[Monday]](),
	NewKind[Week[Tuesday]](),
	NewKind[Week[Wednesday]](),
	NewKind[Week[Thursday]](),
	NewKind[Week[Friday]](),
	NewKind[Week[Saturday]](),
	NewKind[Week[Sunday]](),
	NewKind[Month](),
	NewKind[Quarter](),
	NewKind[Year](),
)

// Register adds or replaces a kind.
func (r *Registry) Register(k Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[k.Name] = k
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// Names returns the registered kind names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.kinds))
}

// Format renders the period of the named kind as "<kind>:<text>".
func (r *Registry) Format(kind string, idx int64) (string, error) {
	k, ok := r.Lookup(kind)
	if !ok {
		return "", &UnknownKindError{Kind: kind}
	}
	return k.Name + ":" + k.Format(idx), nil
}

// Parse reverses Format, returning the kind name and the index. Kind names
// may themselves contain ':' so the longest registered prefix wins.
func (r *Registry) Parse(s string) (string, int64, error) {
	r.mu.RLock()
	var match Kind
	for name, k := range r.kinds {
		if strings.HasPrefix(s, name+":") && len(name) > len(match.Name) {
			match = k
		}
	}
	r.mu.RUnlock()

	if match.Name == "" {
		kind, _, _ := strings.Cut(s, ":")
		return "", 0, &UnknownKindError{Kind: kind}
	}
	idx, err := match.Parse(s[len(match.Name)+1:])
	if err != nil {
		return "", 0, err
	}
	return match.Name, idx, nil
}

// FormatPeriod renders p as "<kind>:<text>" without a registry lookup.
func FormatPeriod[P interface {
	Period[P]
	fmt.Stringer
}](p P) string {
	return p.Name() + ":" + p.String()
}
