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

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/contriboss/timeres"
)

// periodDoc is one period in command output.
type periodDoc struct {
	Kind    string    `json:"kind" yaml:"kind"`
	Index   int64     `json:"index" yaml:"index"`
	Text    string    `json:"text" yaml:"text"`
	Instant time.Time `json:"instant" yaml:"instant"`
}

// spanDoc is a contiguous run of periods in command output.
type spanDoc struct {
	Start  periodDoc `json:"start" yaml:"start"`
	End    periodDoc `json:"end" yaml:"end"`
	Length uint64    `json:"length" yaml:"length"`
}

// maxListSpan bounds how many indexes one "A..B" item of a LIST may expand to.
const maxListSpan = 1_000_000

func describe(k timeres.Kind, idx int64) periodDoc {
	return periodDoc{Kind: k.Name, Index: idx, Text: k.Format(idx), Instant: k.Instant(idx)}
}

// spans coalesces indexes and renders each run with k.
func spans(k timeres.Kind, indices []int64) []spanDoc {
	var out []spanDoc
	for _, s := range timeres.CoalesceIndexes(indices) {
		out = append(out, spanDoc{
			Start:  describe(k, s.First),
			End:    describe(k, s.Last),
			Length: s.Count(),
		})
	}
	return out
}

func writeSpans(w io.Writer, docs []spanDoc) {
	for _, s := range docs {
		if s.Length == 1 {
			fmt.Fprintf(w, "%s\n", s.Start.Text)
			continue
		}
		fmt.Fprintf(w, "%s .. %s (%d)\n", s.Start.Text, s.End.Text, s.Length)
	}
}

func (c *cli) kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the known period kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := c.registry.Names()
			return c.emit(cmd.OutOrStdout(), names, func(w io.Writer) {
				for _, n := range names {
					fmt.Fprintln(w, n)
				}
			})
		},
	}
}

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse KIND TEXT",
		Short: "Parse the text form of a period into its index",
		Example: `  timeres parse Month Jan-2021
  timeres parse "Week[StartDay:Monday]" "Week starting 2021-12-06"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.lookup(args[0])
			if err != nil {
				return err
			}
			idx, err := k.Parse(args[1])
			if err != nil {
				return err
			}
			doc := describe(k, idx)
			return c.emit(cmd.OutOrStdout(), doc, func(w io.Writer) {
				fmt.Fprintf(w, "%d\t%s\t%s\n", doc.Index, doc.Instant.Format(time.RFC3339), doc.Kind)
			})
		},
	}
}

func (c *cli) formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "format KIND INDEX",
		Short:   "Render the period with the given index",
		Example: `  timeres format Quarter 8084`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.lookup(args[0])
			if err != nil {
				return err
			}
			idx, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			doc := describe(k, idx)
			return c.emit(cmd.OutOrStdout(), doc, func(w io.Writer) {
				fmt.Fprintln(w, doc.Text)
			})
		},
	}
}

func (c *cli) rangeCmd() *cobra.Command {
	var limit uint32
	cmd := &cobra.Command{
		Use:     "range KIND START END",
		Short:   "List every period from START to END inclusive",
		Example: `  timeres range Month Nov-2020 Feb-2021`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.lookup(args[0])
			if err != nil {
				return err
			}
			start, err := k.Parse(args[1])
			if err != nil {
				return err
			}
			end, err := k.Parse(args[2])
			if err != nil {
				return err
			}
			if end < start {
				return fmt.Errorf("%s precedes %s: %w", args[2], args[1], timeres.ErrEmptyRange)
			}
			span := timeres.IndexSpan{First: start, Last: end}
			if n := span.Count(); n > uint64(limit) {
				return fmt.Errorf("range holds %d periods, above --limit %d", n, limit)
			}

			docs := make([]periodDoc, 0, span.Count())
			for i := range span.Count() {
				docs = append(docs, describe(k, start+int64(i)))
			}
			c.logger.Debug("listed range", "kind", k.Name, "start", start, "end", end, "len", len(docs))
			return c.emit(cmd.OutOrStdout(), docs, func(w io.Writer) {
				for _, d := range docs {
					fmt.Fprintln(w, d.Text)
				}
			})
		},
	}
	cmd.Flags().Uint32Var(&limit, "limit", 100000, "maximum number of periods to list")
	return cmd
}

func (c *cli) coalesceCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "coalesce KIND INDEX...",
		Short:   "Group period indexes into maximal contiguous ranges",
		Example: `  timeres coalesce Day 1 2 3 7 8 10`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.lookup(args[0])
			if err != nil {
				return err
			}
			indices, err := parseIndexList(strings.Join(args[1:], ","))
			if err != nil {
				return err
			}
			docs := spans(k, indices)
			return c.emit(cmd.OutOrStdout(), docs, func(w io.Writer) { writeSpans(w, docs) })
		},
	}
}

func (c *cli) gapsCmd() *cobra.Command {
	var kind, resolved, request string
	cmd := &cobra.Command{
		Use:   "gaps --resolved LIST --request LIST",
		Short: "Report what a cache holding LIST still misses for a request",
		Long: `gaps seeds a cache with the resolved indexes, asks it for the request
indexes and prints the missing runs. A LIST is a comma separated list of
indexes and inclusive spans, such as "2,3,7..8".`,
		Example: `  timeres gaps --resolved 2,3,7,8 --request 1..10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.lookup(kind)
			if err != nil {
				return err
			}
			have, err := parseIndexList(resolved)
			if err != nil {
				return fmt.Errorf("--resolved: %w", err)
			}
			want, err := parseIndexList(request)
			if err != nil {
				return fmt.Errorf("--request: %w", err)
			}

			cache := timeres.NewCache[int64, struct{}](timeres.WithLogger[struct{}](c.logger))
			if err := cache.Add(have, nil); err != nil {
				return err
			}
			resp := cache.Get(want)

			var missing []int64
			for _, gap := range resp.Gaps {
				missing = append(missing, gap...)
			}
			docs := spans(k, missing)
			return c.emit(cmd.OutOrStdout(), docs, func(w io.Writer) {
				if resp.Hit {
					fmt.Fprintln(w, "hit")
					return
				}
				writeSpans(w, docs)
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "Day", "period kind used to render the gaps")
	cmd.Flags().StringVar(&resolved, "resolved", "", "indexes already resolved in the cache")
	cmd.Flags().StringVar(&request, "request", "", "indexes to request")
	_ = cmd.MarkFlagRequired("request")
	return cmd
}

// parseIndexList reads "1,2,5..9". Empty items are skipped.
func parseIndexList(s string) ([]int64, error) {
	var out []int64
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lo, hi, isSpan := strings.Cut(item, "..")
		from, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", item, err)
		}
		if !isSpan {
			out = append(out, from)
			continue
		}
		to, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", item, err)
		}
		if to < from {
			return nil, fmt.Errorf("invalid span %q: %w", item, timeres.ErrEmptyRange)
		}
		if n := (timeres.IndexSpan{First: from, Last: to}).Count(); n > maxListSpan {
			return nil, fmt.Errorf("invalid span %q: %d indexes, above %d", item, n, maxListSpan)
		}
		for idx := from; ; idx++ {
			out = append(out, idx)
			if idx == to {
				break
			}
		}
	}
	return out, nil
}
