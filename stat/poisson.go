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
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/franaln/histkit/hist"
)

// PoissonConfidenceLower returns the lower edge of the central confidence
// interval with coverage q for a Poisson count n, via the chi-squared
// quantile with 2n degrees of freedom. Counts of 0 or below have no lower
// fluctuation and yield 0.
//
//	lo := stat.PoissonConfidenceLower(0.68, 2) // ≈ 0.71
func PoissonConfidenceLower(q, n float64) float64 {
	if n <= 0 {
		return 0
	}
	a := (1 - q) / 2
	return distuv.ChiSquared{K: 2 * n}.Quantile(a) / 2
}

// PoissonConfidenceUpper returns the upper edge of the central confidence
// interval with coverage q for a Poisson count n, via the chi-squared
// quantile with 2(n+1) degrees of freedom. Negative counts yield 0.
//
//	up := stat.PoissonConfidenceUpper(0.68, 2) // ≈ 4.63
func PoissonConfidenceUpper(q, n float64) float64 {
	if n < 0 {
		return 0
	}
	a := 1 - (1-q)/2
	return distuv.ChiSquared{K: 2 * (n + 1)}.Quantile(a) / 2
}

// A Point is one marker of an error-bar graph: a position and asymmetric
// uncertainties along both axes.
type Point struct {
	X, Y    float64
	XErrLow float64
	XErrUp  float64
	YErrLow float64
	YErrUp  float64
}

// PoissonErrorBars converts a histogram of event counts into graph points
// whose vertical bars span the central 68% Poisson interval of each count,
// the convention for drawing observed data. Horizontal bars cover the bin.
// Bins without positive content produce no point.
func PoissonErrorBars(h *hist.Histogram) []Point {
	b := h.Binning()

	var pts []Point
	for i := 1; i <= b.N(); i++ {
		n := h.BinContent(i)
		if n <= 0 {
			continue
		}
		pts = append(pts, Point{
			X:       b.Center(i),
			Y:       n,
			XErrLow: b.Width(i) / 2,
			XErrUp:  b.Width(i) / 2,
			YErrLow: n - PoissonConfidenceLower(0.68, n),
			YErrUp:  PoissonConfidenceUpper(0.68, n) - n,
		})
	}
	return pts
}
