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

import "log/slog"

// CacheOptions configures the behavior of a Cache.
//
// Options control:
//   - Conflict checking when data for a cached key is written again
//   - Debug logging for cache diagnostics
type CacheOptions[T any] struct {
	// Equal enables conflict checking. When set, Add rejects data whose
	// value for an already cached key is not Equal to the cached value.
	// When nil, new values silently overwrite old ones.
	Equal func(a, b T) bool

	// Logger enables debug logging of cache operations.
	// When nil, no logging is performed.
	Logger *slog.Logger
}

// CacheOption is a functional option for configuring a cache.
type CacheOption[T any] func(*CacheOptions[T])

// WithConflictCheck makes Add return *ConflictError, and apply nothing, when
// a value for an already cached key differs from the cached one according to
// equal. Passing nil restores the default overwrite behavior.
//
// Example:
//
//	cache := NewCache[int64, float64](
//	    WithConflictCheck(func(a, b float64) bool { return a == b }),
//	)
func WithConflictCheck[T any](equal func(a, b T) bool) CacheOption[T] {
	return func(opts *CacheOptions[T]) {
		opts.Equal = equal
	}
}

// WithLogger sets a structured logger for cache diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	cache := NewCache[int64, string](WithLogger[string](logger))
func WithLogger[T any](logger *slog.Logger) CacheOption[T] {
	return func(opts *CacheOptions[T]) {
		opts.Logger = logger
	}
}
