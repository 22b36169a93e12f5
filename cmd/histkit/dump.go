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
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/franaln/histkit/hist"
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE NAME",
	Short: "Print the per-bin contents of one stored object",
	Args:  cobra.ExactArgs(2),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	f, err := openRead(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	obj, err := f.Get(args[1])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	switch o := obj.(type) {
	case *hist.Histogram:
		dumpHistogram(tw, o)
	case *hist.Histogram2D:
		dumpHistogram2D(tw, o)
	case *hist.Profile:
		dumpProfile(tw, o)
	default:
		return fmt.Errorf("cannot dump object of type %T", obj)
	}
	return tw.Flush()
}

func dumpHistogram(w io.Writer, h *hist.Histogram) {
	b := h.Binning()
	fmt.Fprintln(w, "BIN\tRANGE\tCONTENT\tERROR")
	fmt.Fprintf(w, "under\t\t%g\t%g\n", h.BinContent(0), h.BinError(0))
	for i := 1; i <= h.NBins(); i++ {
		fmt.Fprintf(w, "%d\t[%g, %g)\t%g\t%g\n", i, b.LowEdge(i), b.UpEdge(i), h.BinContent(i), h.BinError(i))
	}
	fmt.Fprintf(w, "over\t\t%g\t%g\n", h.BinContent(h.NBins()+1), h.BinError(h.NBins()+1))
}

func dumpHistogram2D(w io.Writer, h *hist.Histogram2D) {
	xb, yb := h.XBinning(), h.YBinning()
	fmt.Fprintln(w, "BINX\tBINY\tXRANGE\tYRANGE\tCONTENT\tERROR")
	for ix := 1; ix <= h.NBinsX(); ix++ {
		for iy := 1; iy <= h.NBinsY(); iy++ {
			fmt.Fprintf(w, "%d\t%d\t[%g, %g)\t[%g, %g)\t%g\t%g\n",
				ix, iy,
				xb.LowEdge(ix), xb.UpEdge(ix),
				yb.LowEdge(iy), yb.UpEdge(iy),
				h.BinContent(ix, iy), h.BinError(ix, iy))
		}
	}
}

func dumpProfile(w io.Writer, p *hist.Profile) {
	b := p.Binning()
	fmt.Fprintln(w, "BIN\tRANGE\tMEAN\tERROR\tENTRIES")
	for i := 1; i <= p.NBins(); i++ {
		fmt.Fprintf(w, "%d\t[%g, %g)\t%g\t%g\t%g\n",
			i, b.LowEdge(i), b.UpEdge(i), p.BinContent(i), p.BinError(i), p.BinEntries(i))
	}
}
