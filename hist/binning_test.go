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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearBinning(t *testing.T) {
	b := LinearBinning(4, 0, 2)

	assert.Equal(t, 4, b.N())
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, b.Edges())
	assert.Equal(t, 0.0, b.Min())
	assert.Equal(t, 2.0, b.Max())
	assert.Equal(t, 0.5, b.LowEdge(2))
	assert.Equal(t, 1.0, b.UpEdge(2))
	assert.Equal(t, 0.75, b.Center(2))
	assert.Equal(t, 0.5, b.Width(2))
}

func TestBinningConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { LinearBinning(0, 0, 1) })
	assert.Panics(t, func() { LinearBinning(4, 1, 1) })
	assert.Panics(t, func() { VariableBinning(1) })
	assert.Panics(t, func() { VariableBinning(0, 1, 1, 2) })
	assert.Panics(t, func() { VariableBinning(0, 2, 1) })
}

func TestFindBin(t *testing.T) {
	b := VariableBinning(0, 1, 2.5, 10)

	tests := []struct {
		x    float64
		want int
	}{
		{-0.1, 0}, // underflow
		{0, 1},    // low edge belongs to the first bin
		{0.5, 1},
		{1, 2}, // interior edge belongs to the bin above
		{2.4, 2},
		{2.5, 3},
		{9.99, 3},
		{10, 4}, // upper edge is overflow
		{11, 4},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, b.FindBin(tt.x), "FindBin(%v)", tt.x)
	}
}

func TestBinningFingerprint(t *testing.T) {
	a := LinearBinning(2, 0, 2)
	b := VariableBinning(0, 1, 2)
	c := VariableBinning(0, 1, 3)

	// Same edges, same axis, regardless of how it was constructed.
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.False(t, a.Equal(c))
}

func TestBinningEdgesAreCopies(t *testing.T) {
	edges := []float64{0, 1, 2}
	b := VariableBinning(edges...)
	edges[1] = 99
	assert.Equal(t, []float64{0, 1, 2}, b.Edges())

	got := b.Edges()
	got[0] = -5
	assert.Equal(t, 0.0, b.Min())
}

func TestBinningFromSample(t *testing.T) {
	xs := make([]float64, 0, 101)
	for i := 0; i <= 100; i++ {
		xs = append(xs, float64(i))
	}

	b, err := BinningFromSample(10, xs)
	require.NoError(t, err)
	assert.Equal(t, 10, b.N())
	assert.Equal(t, 0.0, b.Min())
	// The sample maximum must land in the last bin, not in overflow.
	assert.Equal(t, 10, b.FindBin(100))
	assert.Equal(t, 1, b.FindBin(0))

	_, err = BinningFromSample(10, nil)
	assert.Error(t, err)
	_, err = BinningFromSample(10, []float64{3, 3, 3})
	assert.Error(t, err)
	_, err = BinningFromSample(0, xs)
	assert.Error(t, err)
}
