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

package hist

import (
	"fmt"
	"math"
)

// A Histogram2D is the two-dimensional counterpart of Histogram. Bins are
// addressed by (ix, iy) with ix in [0..NX+1] and iy in [0..NY+1]; index 0
// is underflow and N+1 overflow on each axis, so the overflow structure is
// a row, a column, and their corner.
//
// The same ownership and synchronization rules as Histogram apply.
type Histogram2D struct {
	name string
	xb   Binning
	yb   Binning

	// Row-major over the padded grid: index(ix, iy) = ix*(NY+2) + iy.
	content []float64
	sumw2   []float64

	entries uint64
}

// NewHistogram2D returns an empty Histogram2D over the given axes. It
// panics if either binning has no bins.
func NewHistogram2D(name string, xb, yb Binning) *Histogram2D {
	if xb.N() == 0 || yb.N() == 0 {
		panic("NewHistogram2D needs non-empty binnings on both axes")
	}
	size := (xb.N() + 2) * (yb.N() + 2)
	return &Histogram2D{
		name:    name,
		xb:      xb,
		yb:      yb,
		content: make([]float64, size),
		sumw2:   make([]float64, size),
	}
}

func (h *Histogram2D) idx(ix, iy int) int { return ix*(h.yb.N()+2) + iy }

// Name returns the histogram's name.
func (h *Histogram2D) Name() string { return h.name }

// SetName renames the histogram.
func (h *Histogram2D) SetName(name string) { h.name = name }

// XBinning returns the x-axis definition.
func (h *Histogram2D) XBinning() Binning { return h.xb }

// YBinning returns the y-axis definition.
func (h *Histogram2D) YBinning() Binning { return h.yb }

// NBinsX returns the number of regular bins on the x axis.
func (h *Histogram2D) NBinsX() int { return h.xb.N() }

// NBinsY returns the number of regular bins on the y axis.
func (h *Histogram2D) NBinsY() int { return h.yb.N() }

// Entries returns the number of Fill calls accumulated.
func (h *Histogram2D) Entries() uint64 { return h.entries }

// SetEntries overrides the entry count.
func (h *Histogram2D) SetEntries(n uint64) { h.entries = n }

// Fill adds (x, y) with weight 1.
func (h *Histogram2D) Fill(x, y float64) { h.FillW(x, y, 1) }

// FillW adds (x, y) with weight w. Out-of-range coordinates accumulate in
// the flow bins of the corresponding axis.
func (h *Histogram2D) FillW(x, y, w float64) {
	i := h.idx(h.xb.FindBin(x), h.yb.FindBin(y))
	h.content[i] += w
	h.sumw2[i] += w * w
	h.entries++
}

// BinContent returns the content of bin (ix, iy).
func (h *Histogram2D) BinContent(ix, iy int) float64 { return h.content[h.idx(ix, iy)] }

// BinError returns the statistical error of bin (ix, iy).
func (h *Histogram2D) BinError(ix, iy int) float64 { return math.Sqrt(h.sumw2[h.idx(ix, iy)]) }

// BinMeasurement returns bin (ix, iy) as a Measurement.
func (h *Histogram2D) BinMeasurement(ix, iy int) Measurement {
	i := h.idx(ix, iy)
	return Measurement{Mean: h.content[i], Error: math.Sqrt(h.sumw2[i])}
}

// SetBinContent sets the content of bin (ix, iy).
func (h *Histogram2D) SetBinContent(ix, iy int, v float64) { h.content[h.idx(ix, iy)] = v }

// SetBinError sets the statistical error of bin (ix, iy).
func (h *Histogram2D) SetBinError(ix, iy int, e float64) { h.sumw2[h.idx(ix, iy)] = e * e }

// Sumw2 returns the accumulated sum of squared weights in bin (ix, iy).
func (h *Histogram2D) Sumw2(ix, iy int) float64 { return h.sumw2[h.idx(ix, iy)] }

// SetSumw2 sets the accumulated sum of squared weights in bin (ix, iy).
func (h *Histogram2D) SetSumw2(ix, iy int, v float64) { h.sumw2[h.idx(ix, iy)] = v }

// Integral returns the sum of contents over the regular bins.
func (h *Histogram2D) Integral() float64 {
	return h.IntegralRange(1, h.NBinsX(), 1, h.NBinsY())
}

// IntegralRange returns the sum of contents over the inclusive bin-index
// rectangle [x1..x2]x[y1..y2], clamped to the addressable range.
func (h *Histogram2D) IntegralRange(x1, x2, y1, y2 int) float64 {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if nx := h.NBinsX(); x2 > nx+1 {
		x2 = nx + 1
	}
	if ny := h.NBinsY(); y2 > ny+1 {
		y2 = ny + 1
	}
	var sum float64
	for ix := x1; ix <= x2; ix++ {
		for iy := y1; iy <= y2; iy++ {
			sum += h.content[h.idx(ix, iy)]
		}
	}
	return sum
}

// IntegralMeasurement returns the regular-bin integral with its error.
func (h *Histogram2D) IntegralMeasurement() Measurement {
	var c, w2 float64
	for ix := 1; ix <= h.NBinsX(); ix++ {
		for iy := 1; iy <= h.NBinsY(); iy++ {
			i := h.idx(ix, iy)
			c += h.content[i]
			w2 += h.sumw2[i]
		}
	}
	return Measurement{Mean: c, Error: math.Sqrt(w2)}
}

// Clone returns a deep copy sharing nothing with h.
func (h *Histogram2D) Clone() *Histogram2D {
	out := &Histogram2D{
		name:    h.name,
		xb:      h.xb,
		yb:      h.yb,
		content: make([]float64, len(h.content)),
		sumw2:   make([]float64, len(h.sumw2)),
		entries: h.entries,
	}
	copy(out.content, h.content)
	copy(out.sumw2, h.sumw2)
	return out
}

// CloneEmpty returns a histogram with the same name and axes and all bins
// zeroed.
func (h *Histogram2D) CloneEmpty() *Histogram2D {
	return NewHistogram2D(h.name, h.xb, h.yb)
}

// Reset zeroes every bin and the entry count.
func (h *Histogram2D) Reset() {
	for i := range h.content {
		h.content[i] = 0
		h.sumw2[i] = 0
	}
	h.entries = 0
}

// Add accumulates c times o into h in place, errors combined in quadrature.
// Both axes must match.
func (h *Histogram2D) Add(o *Histogram2D, c float64) error {
	if !h.xb.Equal(o.xb) || !h.yb.Equal(o.yb) {
		return fmt.Errorf("%w: cannot add %q to %q", ErrBinningMismatch, o.name, h.name)
	}
	for i := range h.content {
		h.content[i] += c * o.content[i]
		h.sumw2[i] += c * c * o.sumw2[i]
	}
	h.entries += o.entries
	return nil
}

// Divide replaces h in place with the bin-wise ratio h/o under the
// Measurement division conventions. Both axes must match.
func (h *Histogram2D) Divide(o *Histogram2D) error {
	if !h.xb.Equal(o.xb) || !h.yb.Equal(o.yb) {
		return fmt.Errorf("%w: cannot divide %q by %q", ErrBinningMismatch, h.name, o.name)
	}
	for i := range h.content {
		a := Measurement{Mean: h.content[i], Error: math.Sqrt(h.sumw2[i])}
		b := Measurement{Mean: o.content[i], Error: math.Sqrt(o.sumw2[i])}
		m := a.Div(b)
		h.content[i] = m.Mean
		h.sumw2[i] = m.Error * m.Error
	}
	return nil
}

// Merge2D returns a new histogram holding the unweighted bin-wise sum of
// hs, named after the first input. All inputs must share the same axes.
func Merge2D(hs ...*Histogram2D) (*Histogram2D, error) {
	if len(hs) == 0 {
		return nil, ErrNoHistograms
	}
	out := hs[0].Clone()
	for _, o := range hs[1:] {
		if err := out.Add(o, 1); err != nil {
			return nil, err
		}
	}
	return out, nil
}
