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

// A Profile summarizes a dependent quantity y in bins of x: each bin keeps
// the weighted moments of the y values filled into it, from which the bin
// reports the mean of y and the standard error of that mean. Flow bins at
// indices 0 and N+1 collect out-of-range x values like in Histogram.
//
// Profiles are not synchronized: fill each one from a single goroutine.
type Profile struct {
	name    string
	binning Binning

	// Per-bin accumulated moments, indexed 0..N+1.
	sumw   []float64 // sum of w
	sumw2  []float64 // sum of w^2, for the effective entry count
	sumwy  []float64 // sum of w*y
	sumwy2 []float64 // sum of w*y^2

	entries uint64
}

// NewProfile returns an empty Profile over the given binning. It panics if
// the binning has no bins.
func NewProfile(name string, b Binning) *Profile {
	n := b.N()
	if n == 0 {
		panic("NewProfile needs a non-empty binning")
	}
	return &Profile{
		name:    name,
		binning: b,
		sumw:    make([]float64, n+2),
		sumw2:   make([]float64, n+2),
		sumwy:   make([]float64, n+2),
		sumwy2:  make([]float64, n+2),
	}
}

// Name returns the profile's name.
func (p *Profile) Name() string { return p.name }

// SetName renames the profile.
func (p *Profile) SetName(name string) { p.name = name }

// Binning returns the x-axis definition.
func (p *Profile) Binning() Binning { return p.binning }

// NBins returns the number of regular bins.
func (p *Profile) NBins() int { return p.binning.N() }

// Entries returns the number of Fill calls accumulated.
func (p *Profile) Entries() uint64 { return p.entries }

// SetEntries overrides the entry count.
func (p *Profile) SetEntries(n uint64) { p.entries = n }

// Fill adds the sample (x, y) with weight 1.
func (p *Profile) Fill(x, y float64) { p.FillW(x, y, 1) }

// FillW adds the sample (x, y) with weight w.
func (p *Profile) FillW(x, y, w float64) {
	i := p.binning.FindBin(x)
	p.sumw[i] += w
	p.sumw2[i] += w * w
	p.sumwy[i] += w * y
	p.sumwy2[i] += w * y * y
	p.entries++
}

// BinContent returns the weighted mean of y in bin i, or 0 for a bin
// without fills.
func (p *Profile) BinContent(i int) float64 {
	if p.sumw[i] == 0 {
		return 0
	}
	return p.sumwy[i] / p.sumw[i]
}

// BinError returns the standard error of the mean in bin i: the weighted
// spread of y divided by the square root of the effective entry count.
// Bins without fills report 0.
func (p *Profile) BinError(i int) float64 {
	if p.sumw[i] == 0 || p.sumw2[i] == 0 {
		return 0
	}
	mean := p.sumwy[i] / p.sumw[i]
	variance := p.sumwy2[i]/p.sumw[i] - mean*mean
	if variance < 0 {
		// Rounding can push an exactly-zero spread slightly negative.
		variance = 0
	}
	neff := p.sumw[i] * p.sumw[i] / p.sumw2[i]
	return math.Sqrt(variance / neff)
}

// BinMeasurement returns bin i's mean and standard error as a Measurement.
func (p *Profile) BinMeasurement(i int) Measurement {
	return Measurement{Mean: p.BinContent(i), Error: p.BinError(i)}
}

// BinEntries returns the accumulated weight in bin i.
func (p *Profile) BinEntries(i int) float64 { return p.sumw[i] }

// Moments returns bin i's raw accumulated moments: sum of weights, sum of
// squared weights, sum of w*y, and sum of w*y^2. They are what a snapshot
// must carry to reconstruct the profile exactly.
func (p *Profile) Moments(i int) (sumw, sumw2, sumwy, sumwy2 float64) {
	return p.sumw[i], p.sumw2[i], p.sumwy[i], p.sumwy2[i]
}

// SetMoments overrides bin i's raw moments. Used when reconstructing a
// profile from a snapshot.
func (p *Profile) SetMoments(i int, sumw, sumw2, sumwy, sumwy2 float64) {
	p.sumw[i] = sumw
	p.sumw2[i] = sumw2
	p.sumwy[i] = sumwy
	p.sumwy2[i] = sumwy2
}

// Clone returns a deep copy sharing nothing with p.
func (p *Profile) Clone() *Profile {
	out := NewProfile(p.name, p.binning)
	copy(out.sumw, p.sumw)
	copy(out.sumw2, p.sumw2)
	copy(out.sumwy, p.sumwy)
	copy(out.sumwy2, p.sumwy2)
	out.entries = p.entries
	return out
}

// Add accumulates o into p in place by summing the per-bin moments, which
// leaves p exactly as if it had seen o's fills too. The binnings must
// match.
func (p *Profile) Add(o *Profile) error {
	if !p.binning.Equal(o.binning) {
		return fmt.Errorf("%w: cannot add %q to %q", ErrBinningMismatch, o.name, p.name)
	}
	for i := range p.sumw {
		p.sumw[i] += o.sumw[i]
		p.sumw2[i] += o.sumw2[i]
		p.sumwy[i] += o.sumwy[i]
		p.sumwy2[i] += o.sumwy2[i]
	}
	p.entries += o.entries
	return nil
}

// MergeProfiles returns a new profile combining the samples of ps, named
// after the first input. All inputs must share the same binning.
func MergeProfiles(ps ...*Profile) (*Profile, error) {
	if len(ps) == 0 {
		return nil, ErrNoHistograms
	}
	out := ps[0].Clone()
	for _, o := range ps[1:] {
		if err := out.Add(o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Reset zeroes every bin and the entry count.
func (p *Profile) Reset() {
	for i := range p.sumw {
		p.sumw[i] = 0
		p.sumw2[i] = 0
		p.sumwy[i] = 0
		p.sumwy2[i] = 0
	}
	p.entries = 0
}
