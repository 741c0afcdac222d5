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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/contriboss/timeres"
)

// cli carries the state shared by every subcommand. A fresh one is built per
// root command so tests can run commands side by side.
type cli struct {
	output   string
	verbose  bool
	registry *timeres.Registry
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{registry: timeres.DefaultRegistry}

	root := &cobra.Command{
		Use:   "timeres",
		Short: "Work with discrete calendar periods",
		Long: `timeres maps days, weeks, months, quarters, years and minute buckets
to integer indexes and back, lists ranges of periods, coalesces index sets
into contiguous ranges and reports cache gaps.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch c.output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", c.output)
			}
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "text", "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(
		c.kindsCmd(),
		c.parseCmd(),
		c.formatCmd(),
		c.rangeCmd(),
		c.coalesceCmd(),
		c.gapsCmd(),
	)
	return root
}

// emit writes v in the selected output format. text renders the plain form.
func (c *cli) emit(w io.Writer, v any, text func(io.Writer)) error {
	switch c.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

func (c *cli) lookup(name string) (timeres.Kind, error) {
	k, ok := c.registry.Lookup(name)
	if !ok {
		return timeres.Kind{}, &timeres.UnknownKindError{Kind: name}
	}
	return k, nil
}
