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
	"os"

	"github.com/spf13/cobra"

	"github.com/franaln/histkit/hist"
	"github.com/franaln/histkit/textable"
)

var (
	flagTablePattern string
	flagTableOut     string
)

var tableCmd = &cobra.Command{
	Use:   "table FILE",
	Short: "Render a LaTeX yield table of the stored objects",
	Args:  cobra.ExactArgs(1),
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().StringVar(&flagTablePattern, "pattern", "", "only tabulate objects whose name contains this substring")
	tableCmd.Flags().StringVarP(&flagTableOut, "output", "o", "", "write the table to this .tex file instead of stdout")
}

func runTable(cmd *cobra.Command, args []string) error {
	f, err := openRead(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	objs, err := f.List(flagTablePattern)
	if err != nil {
		return err
	}

	tbl := textable.New("Object", "Kind", "Entries", "Yield")
	tbl.SetEnvironment(true)
	for _, obj := range objs {
		if err := tbl.AddRow(obj.Name(), kindOf(obj), fmt.Sprintf("%d", obj.Entries()), yieldOf(obj)); err != nil {
			return err
		}
	}
	tbl.AddLine()

	if flagTableOut != "" {
		if err := tbl.SaveTex(flagTableOut); err != nil {
			return err
		}
		slog.Debug("wrote table", slog.String("path", flagTableOut), slog.Int("rows", len(objs)))
		return nil
	}
	_, err = tbl.WriteTo(os.Stdout)
	return err
}

// yieldOf renders an object's integrated yield with its error, or "-" for
// kinds without an integral.
func yieldOf(obj hist.Object) any {
	switch o := obj.(type) {
	case *hist.Histogram:
		return o.IntegralMeasurement()
	case *hist.Histogram2D:
		return o.IntegralMeasurement()
	default:
		return "-"
	}
}
