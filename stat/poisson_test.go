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

package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franaln/histkit/hist"
)

func TestPoissonConfidenceInterval(t *testing.T) {
	// Central 68% interval around 2 observed events.
	assert.InDelta(t, 0.712, PoissonConfidenceLower(0.68, 2), 0.005)
	assert.InDelta(t, 4.625, PoissonConfidenceUpper(0.68, 2), 0.005)

	// n=0 (upper) and n=1 (lower) go through the chi-squared with two
	// degrees of freedom, whose quantile is -2*ln(1-p) in closed form.
	assert.InDelta(t, 1.83258, PoissonConfidenceUpper(0.68, 0), 1e-4)
	assert.InDelta(t, 0.17435, PoissonConfidenceLower(0.68, 1), 1e-4)

	assert.Equal(t, 0.0, PoissonConfidenceLower(0.68, 0))
	assert.Equal(t, 0.0, PoissonConfidenceLower(0.68, -1))
	assert.Equal(t, 0.0, PoissonConfidenceUpper(0.68, -1))
}

func TestPoissonErrorBars(t *testing.T) {
	h := hist.NewHistogram("data", hist.LinearBinning(4, 0, 4))
	h.Fill(0.5)
	h.Fill(0.5)
	h.Fill(2.5)
	h.Fill(-1) // underflow never becomes a point

	pts := PoissonErrorBars(h)
	require.Len(t, pts, 2)

	assert.Equal(t, 0.5, pts[0].X)
	assert.Equal(t, 2.0, pts[0].Y)
	assert.Equal(t, 0.5, pts[0].XErrLow)
	assert.Equal(t, 0.5, pts[0].XErrUp)
	assert.InDelta(t, 2-PoissonConfidenceLower(0.68, 2), pts[0].YErrLow, 1e-12)
	assert.InDelta(t, PoissonConfidenceUpper(0.68, 2)-2, pts[0].YErrUp, 1e-12)

	assert.Equal(t, 2.5, pts[1].X)
	assert.Equal(t, 1.0, pts[1].Y)
	assert.InDelta(t, 0.8256, pts[1].YErrLow, 1e-3)

	empty := hist.NewHistogram("empty", hist.LinearBinning(4, 0, 4))
	assert.Empty(t, PoissonErrorBars(empty))
}
