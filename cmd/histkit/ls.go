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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/franaln/histkit/hist"
)

var flagLsPattern string

var lsCmd = &cobra.Command{
	Use:   "ls FILE",
	Short: "List the objects stored in a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

func init() {
	lsCmd.Flags().StringVar(&flagLsPattern, "pattern", "", "only list objects whose name contains this substring")
}

func runLs(cmd *cobra.Command, args []string) error {
	f, err := openRead(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	objs, err := f.List(flagLsPattern)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tENTRIES\tINTEGRAL")
	for _, obj := range objs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", obj.Name(), kindOf(obj), obj.Entries(), integralOf(obj))
	}
	return tw.Flush()
}

// integralOf renders an object's regular-bin integral, or "-" for kinds
// without one.
func integralOf(obj hist.Object) string {
	switch o := obj.(type) {
	case *hist.Histogram:
		return fmt.Sprintf("%g", o.Integral())
	case *hist.Histogram2D:
		return fmt.Sprintf("%g", o.Integral())
	default:
		return "-"
	}
}
