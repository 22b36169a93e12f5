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
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/montanaflynn/stats"
)

// A Binning is an immutable axis definition: N+1 strictly increasing edges
// delimiting N bins. Bin k (1-based) covers the half-open interval
// [edge[k-1], edge[k]). Index 0 addresses the underflow region below the
// first edge and index N+1 the overflow region at and above the last edge.
//
// Binnings are compared through a fingerprint of their edges, so every
// bin-wise operation can check axis compatibility in O(1).
type Binning struct {
	edges []float64
	fp    uint64
}

// LinearBinning returns a Binning of n equal-width bins spanning [lo, hi).
// It panics if n is not positive or hi is not greater than lo.
func LinearBinning(n int, lo, hi float64) Binning {
	if n < 1 {
		panic("LinearBinning needs a positive bin count")
	}
	if hi <= lo {
		panic("LinearBinning needs hi > lo")
	}
	edges := make([]float64, n+1)
	width := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	// Pin the last edge so accumulated width error cannot move it.
	edges[n] = hi
	return newBinning(edges)
}

// VariableBinning returns a Binning over a copy of the given edges. It
// panics if fewer than two edges are given or the edges are not strictly
// increasing.
func VariableBinning(edges ...float64) Binning {
	if len(edges) < 2 {
		panic("VariableBinning needs at least two edges")
	}
	es := make([]float64, len(edges))
	copy(es, edges)
	for i := 1; i < len(es); i++ {
		if es[i] <= es[i-1] {
			panic(fmt.Sprintf(
				"VariableBinning edges must be strictly increasing: edge[%d]=%v >= edge[%d]=%v",
				i-1, es[i-1], i, es[i],
			))
		}
	}
	return newBinning(es)
}

// BinningFromSample derives a linear binning of n bins spanning the sample
// xs. The upper edge is padded by a relative epsilon so the sample maximum
// lands in bin N instead of overflow. Empty or constant samples and
// non-positive bin counts are rejected with an error, since the sample is
// data the caller may not control.
func BinningFromSample(n int, xs []float64) (Binning, error) {
	if n < 1 {
		return Binning{}, fmt.Errorf("hist: binning needs a positive bin count, got %d", n)
	}
	lo, err := stats.Min(xs)
	if err != nil {
		return Binning{}, fmt.Errorf("hist: binning from sample: %w", err)
	}
	hi, err := stats.Max(xs)
	if err != nil {
		return Binning{}, fmt.Errorf("hist: binning from sample: %w", err)
	}
	if hi <= lo {
		return Binning{}, fmt.Errorf("hist: cannot derive a binning from a constant sample (all values %v)", lo)
	}
	hi += (hi - lo) * 1e-9
	return LinearBinning(n, lo, hi), nil
}

func newBinning(edges []float64) Binning {
	x := xxhash.New()
	var buf [8]byte
	for _, e := range edges {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(e))
		x.Write(buf[:])
	}
	return Binning{edges: edges, fp: x.Sum64()}
}

// N returns the number of bins.
func (b Binning) N() int {
	if len(b.edges) == 0 {
		return 0
	}
	return len(b.edges) - 1
}

// Edges returns a copy of the bin edges.
func (b Binning) Edges() []float64 {
	es := make([]float64, len(b.edges))
	copy(es, b.edges)
	return es
}

// LowEdge returns the lower edge of bin i, for i in [1..N].
func (b Binning) LowEdge(i int) float64 { return b.edges[i-1] }

// UpEdge returns the upper edge of bin i, for i in [1..N].
func (b Binning) UpEdge(i int) float64 { return b.edges[i] }

// Center returns the midpoint of bin i, for i in [1..N].
func (b Binning) Center(i int) float64 { return (b.edges[i-1] + b.edges[i]) / 2 }

// Width returns the width of bin i, for i in [1..N].
func (b Binning) Width(i int) float64 { return b.edges[i] - b.edges[i-1] }

// Min returns the lower edge of the axis.
func (b Binning) Min() float64 { return b.edges[0] }

// Max returns the upper edge of the axis.
func (b Binning) Max() float64 { return b.edges[len(b.edges)-1] }

// FindBin returns the index of the bin containing x: 0 for underflow, N+1
// for overflow, otherwise the 1-based bin whose half-open interval holds x.
// A value exactly on an edge belongs to the bin above it.
func (b Binning) FindBin(x float64) int {
	n := b.N()
	if n == 0 || x < b.edges[0] {
		return 0
	}
	if x >= b.edges[n] {
		return n + 1
	}
	i := sort.SearchFloat64s(b.edges, x)
	if b.edges[i] == x {
		return i + 1
	}
	return i
}

// Fingerprint returns a hash of the bin edges. Binnings with equal
// fingerprints are treated as the same axis.
func (b Binning) Fingerprint() uint64 { return b.fp }

// Equal reports whether b and o describe the same axis.
func (b Binning) Equal(o Binning) bool {
	return b.fp == o.fp && len(b.edges) == len(o.edges)
}
