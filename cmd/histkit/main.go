// Copyright 2025 The histkit Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command histkit inspects and combines snapshot files of histkit objects:
// listing and dumping stored histograms, merging collections, tabulating
// yields, and computing signal significances.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/franaln/histkit/hist"
	"github.com/franaln/histkit/histio"
)

var flagVerbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "histkit",
	Short:         "Inspect and combine collections of binned histograms",
	Long:          "histkit works on snapshot files of named histogram objects: list and dump their contents, merge collections bin by bin, render yield tables, and compute counting-experiment significances.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(significanceCmd)
}

// openRead opens a snapshot file for reading and reports what it found.
func openRead(path string) (*histio.File, error) {
	f, err := histio.OpenFile(path, histio.Read)
	if err != nil {
		return nil, err
	}
	slog.Debug("opened collection", slog.String("path", path), slog.Int("objects", f.Len()))
	return f, nil
}

// kindOf names an object's kind the way snapshot records do.
func kindOf(obj hist.Object) string {
	switch obj.(type) {
	case *hist.Histogram:
		return histio.KindHistogram
	case *hist.Histogram2D:
		return histio.KindHistogram2D
	case *hist.Profile:
		return histio.KindProfile
	default:
		return fmt.Sprintf("%T", obj)
	}
}
