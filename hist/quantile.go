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

	"github.com/beorn7/perks/quantile"
)

// DefQuantiles are the default tracked quantiles and their respective
// allowed absolute errors: the far tails precisely, the median loosely.
// They suit the common use of bracketing an axis range.
var DefQuantiles = map[float64]float64{
	0.01: 0.001,
	0.5:  0.05,
	0.99: 0.001,
}

// A QuantileTracker estimates quantiles of a value stream without keeping
// the full sample, backed by a targeted-quantile summary stream. Its main
// job is picking a sensible axis range before booking a histogram when the
// distribution of the variable is not known up front: feed it one pass of
// values, derive a Binning, book, and fill on the second pass.
//
// A QuantileTracker is not synchronized.
type QuantileTracker struct {
	stream *quantile.Stream
}

// NewQuantileTracker returns a tracker targeting the given quantiles, a map
// of quantile rank to allowed absolute estimation error. A nil or empty map
// selects DefQuantiles. Estimates for ranks far from every target are still
// returned but carry no precision guarantee.
func NewQuantileTracker(quantiles map[float64]float64) *QuantileTracker {
	if len(quantiles) == 0 {
		quantiles = DefQuantiles
	}
	return &QuantileTracker{stream: quantile.NewTargeted(quantiles)}
}

// Observe feeds a value into the stream.
func (q *QuantileTracker) Observe(v float64) { q.stream.Insert(v) }

// Query returns the current estimate of the quantile phi in [0, 1].
func (q *QuantileTracker) Query(phi float64) float64 { return q.stream.Query(phi) }

// Count returns the number of observed values.
func (q *QuantileTracker) Count() int { return q.stream.Count() }

// Reset forgets all observations.
func (q *QuantileTracker) Reset() { q.stream.Reset() }

// Binning derives a linear binning of n bins spanning the estimated phiLo
// and phiHi quantiles of the observed stream. It returns an error when the
// tracker is empty or the two estimates do not span a positive range, since
// both depend on the data rather than on the caller.
func (q *QuantileTracker) Binning(n int, phiLo, phiHi float64) (Binning, error) {
	if q.stream.Count() == 0 {
		return Binning{}, errors.New("hist: quantile tracker has no observations")
	}
	lo := q.stream.Query(phiLo)
	hi := q.stream.Query(phiHi)
	if hi <= lo {
		return Binning{}, fmt.Errorf("hist: quantile range [%v, %v] does not span a positive interval", lo, hi)
	}
	return LinearBinning(n, lo, hi), nil
}
