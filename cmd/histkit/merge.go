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

package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/franaln/histkit/hist"
	"github.com/franaln/histkit/histio"
)

var mergeCmd = &cobra.Command{
	Use:   "merge OUT IN...",
	Short: "Merge same-name objects from several snapshot files into one",
	Long:  "Objects sharing a name across the input files are summed bin by bin (errors in quadrature, profiles by their moments) and written to OUT. Names present in only one input pass through unchanged. Binnings must match; nothing is rebinned.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	outPath, inPaths := args[0], args[1:]

	// Gather every object from every input, grouped by name in input
	// order.
	groups := make(map[string][]hist.Object)
	for _, path := range inPaths {
		f, err := openRead(path)
		if err != nil {
			return err
		}
		objs, err := f.List("")
		if err != nil {
			f.Close()
			return err
		}
		for _, obj := range objs {
			groups[obj.Name()] = append(groups[obj.Name()], obj)
		}
		f.Close()
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out, err := histio.OpenFile(outPath, histio.Recreate)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, name := range names {
		merged, err := mergeGroup(groups[name])
		if err != nil {
			return fmt.Errorf("merge %q: %w", name, err)
		}
		if err := out.Put(merged); err != nil {
			return err
		}
		slog.Debug("merged object", slog.String("name", name), slog.Int("inputs", len(groups[name])))
	}

	if err := out.Close(); err != nil {
		return err
	}
	slog.Debug("wrote collection", slog.String("path", outPath), slog.Int("objects", len(names)))
	return nil
}

// mergeGroup combines the same-name objects collected across the inputs.
// All of them must be of one kind.
func mergeGroup(objs []hist.Object) (hist.Object, error) {
	switch objs[0].(type) {
	case *hist.Histogram:
		hs := make([]*hist.Histogram, 0, len(objs))
		for _, obj := range objs {
			h, ok := obj.(*hist.Histogram)
			if !ok {
				return nil, fmt.Errorf("inputs disagree on the kind: %s vs %s", kindOf(objs[0]), kindOf(obj))
			}
			hs = append(hs, h)
		}
		return hist.Merge(hs...)

	case *hist.Histogram2D:
		hs := make([]*hist.Histogram2D, 0, len(objs))
		for _, obj := range objs {
			h, ok := obj.(*hist.Histogram2D)
			if !ok {
				return nil, fmt.Errorf("inputs disagree on the kind: %s vs %s", kindOf(objs[0]), kindOf(obj))
			}
			hs = append(hs, h)
		}
		return hist.Merge2D(hs...)

	case *hist.Profile:
		ps := make([]*hist.Profile, 0, len(objs))
		for _, obj := range objs {
			p, ok := obj.(*hist.Profile)
			if !ok {
				return nil, fmt.Errorf("inputs disagree on the kind: %s vs %s", kindOf(objs[0]), kindOf(obj))
			}
			ps = append(ps, p)
		}
		return hist.MergeProfiles(ps...)

	default:
		return nil, fmt.Errorf("cannot merge objects of type %T", objs[0])
	}
}
