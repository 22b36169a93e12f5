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
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBinningMismatch is returned by bin-wise operations whose operands
	// do not share the same binning. No operation rebins implicitly.
	ErrBinningMismatch = errors.New("hist: binning mismatch")

	// ErrNoHistograms is returned by Merge and Merge2D when called with no
	// inputs.
	ErrNoHistograms = errors.New("hist: no histograms to merge")
)

// A Histogram is a one-dimensional binned distribution with per-bin
// statistical errors. Contents and errors are stored for the N regular bins
// plus the underflow bin at index 0 and the overflow bin at index N+1.
// Errors track the square root of the accumulated sum of squared fill
// weights, so unweighted fills carry the usual sqrt(count) error.
//
// A Histogram owns its buffers. Operations returning a new Histogram copy;
// the in-place mutators (Normalize, NormalizeTo, Scale, ScaleMeasurement,
// AddOverflowBin, Add, Divide) say so. Histograms are not synchronized:
// fill each one from a single goroutine.
type Histogram struct {
	name    string
	binning Binning

	// Indexed 0..N+1. sumw2 holds squared errors, the natural space for
	// quadrature arithmetic.
	content []float64
	sumw2   []float64

	entries uint64
}

// NewHistogram returns an empty Histogram over the given binning. It panics
// if the binning has no bins.
func NewHistogram(name string, b Binning) *Histogram {
	n := b.N()
	if n == 0 {
		panic("NewHistogram needs a non-empty binning")
	}
	return &Histogram{
		name:    name,
		binning: b,
		content: make([]float64, n+2),
		sumw2:   make([]float64, n+2),
	}
}

// Name returns the histogram's name.
func (h *Histogram) Name() string { return h.name }

// SetName renames the histogram.
func (h *Histogram) SetName(name string) { h.name = name }

// Binning returns the axis definition.
func (h *Histogram) Binning() Binning { return h.binning }

// NBins returns the number of regular bins.
func (h *Histogram) NBins() int { return h.binning.N() }

// Entries returns the number of Fill calls accumulated, including
// out-of-range ones.
func (h *Histogram) Entries() uint64 { return h.entries }

// SetEntries overrides the entry count. Used when reconstructing a
// histogram from a snapshot.
func (h *Histogram) SetEntries(n uint64) { h.entries = n }

// Fill adds x with weight 1.
func (h *Histogram) Fill(x float64) { h.FillW(x, 1) }

// FillW adds x with weight w. Out-of-range values accumulate in the
// underflow or overflow bin.
func (h *Histogram) FillW(x, w float64) {
	i := h.binning.FindBin(x)
	h.content[i] += w
	h.sumw2[i] += w * w
	h.entries++
}

// BinContent returns the content of bin i, for i in [0..N+1].
func (h *Histogram) BinContent(i int) float64 { return h.content[i] }

// BinError returns the statistical error of bin i, for i in [0..N+1].
func (h *Histogram) BinError(i int) float64 { return math.Sqrt(h.sumw2[i]) }

// BinMeasurement returns bin i's content and error as a Measurement.
func (h *Histogram) BinMeasurement(i int) Measurement {
	return Measurement{Mean: h.content[i], Error: math.Sqrt(h.sumw2[i])}
}

// SetBinContent sets the content of bin i.
func (h *Histogram) SetBinContent(i int, v float64) { h.content[i] = v }

// SetBinError sets the statistical error of bin i.
func (h *Histogram) SetBinError(i int, e float64) { h.sumw2[i] = e * e }

// Sumw2 returns the accumulated sum of squared weights in bin i. Snapshot
// codecs use it to persist the exact error state; BinError is its square
// root.
func (h *Histogram) Sumw2(i int) float64 { return h.sumw2[i] }

// SetSumw2 sets the accumulated sum of squared weights in bin i.
func (h *Histogram) SetSumw2(i int, v float64) { h.sumw2[i] = v }

// FindBin returns the bin index containing x. See Binning.FindBin.
func (h *Histogram) FindBin(x float64) int { return h.binning.FindBin(x) }

// Integral returns the sum of bin contents over the regular bins [1..N].
func (h *Histogram) Integral() float64 { return h.IntegralRange(1, h.NBins()) }

// IntegralRange returns the sum of bin contents over the inclusive index
// range [lo, hi], clamped to the addressable range [0..N+1].
func (h *Histogram) IntegralRange(lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if n := h.NBins(); hi > n+1 {
		hi = n + 1
	}
	var sum float64
	for i := lo; i <= hi; i++ {
		sum += h.content[i]
	}
	return sum
}

// IntegralMeasurement returns the [1..N] integral with its statistical
// error, errors combined in quadrature across bins.
func (h *Histogram) IntegralMeasurement() Measurement {
	var c, w2 float64
	for i := 1; i <= h.NBins(); i++ {
		c += h.content[i]
		w2 += h.sumw2[i]
	}
	return Measurement{Mean: c, Error: math.Sqrt(w2)}
}

// Maximum returns the largest regular-bin content.
func (h *Histogram) Maximum() float64 {
	max := math.Inf(-1)
	for i := 1; i <= h.NBins(); i++ {
		if h.content[i] > max {
			max = h.content[i]
		}
	}
	return max
}

// Minimum returns the smallest regular-bin content.
func (h *Histogram) Minimum() float64 {
	min := math.Inf(1)
	for i := 1; i <= h.NBins(); i++ {
		if h.content[i] < min {
			min = h.content[i]
		}
	}
	return min
}

// Clone returns a deep copy sharing nothing with h, including its name.
func (h *Histogram) Clone() *Histogram {
	out := &Histogram{
		name:    h.name,
		binning: h.binning,
		content: make([]float64, len(h.content)),
		sumw2:   make([]float64, len(h.sumw2)),
		entries: h.entries,
	}
	copy(out.content, h.content)
	copy(out.sumw2, h.sumw2)
	return out
}

// CloneEmpty returns a histogram with the same name and binning and all
// bins zeroed.
func (h *Histogram) CloneEmpty() *Histogram {
	return NewHistogram(h.name, h.binning)
}

// Reset zeroes every bin and the entry count. The binning is kept.
func (h *Histogram) Reset() {
	for i := range h.content {
		h.content[i] = 0
		h.sumw2[i] = 0
	}
	h.entries = 0
}

// Add accumulates c times o into h in place, errors combined in quadrature.
// The binnings must match.
func (h *Histogram) Add(o *Histogram, c float64) error {
	if !h.binning.Equal(o.binning) {
		return fmt.Errorf("%w: cannot add %q to %q", ErrBinningMismatch, o.name, h.name)
	}
	for i := range h.content {
		h.content[i] += c * o.content[i]
		h.sumw2[i] += c * c * o.sumw2[i]
	}
	h.entries += o.entries
	return nil
}

// Divide replaces h in place with the bin-wise ratio h/o, following the
// Measurement division conventions: a zero divisor bin yields 0, and
// relative errors combine in quadrature. The binnings must match.
func (h *Histogram) Divide(o *Histogram) error {
	if !h.binning.Equal(o.binning) {
		return fmt.Errorf("%w: cannot divide %q by %q", ErrBinningMismatch, h.name, o.name)
	}
	for i := range h.content {
		m := h.BinMeasurement(i).Div(o.BinMeasurement(i))
		h.content[i] = m.Mean
		h.sumw2[i] = m.Error * m.Error
	}
	return nil
}

// Merge returns a new histogram holding the unweighted bin-wise sum of hs,
// named after the first input. All inputs must share the same binning;
// a mismatch aborts the merge with ErrBinningMismatch.
func Merge(hs ...*Histogram) (*Histogram, error) {
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
