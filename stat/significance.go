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

// Package stat provides counting-experiment statistics for binned analyses:
// Poisson p-values and significances, expected significances for a signal
// over an uncertain background, and central Poisson confidence intervals.
//
// All functions are pure. Inputs outside a formula's domain never panic;
// they yield 0, the "no significance" result, so cutflow-style loops over
// many region/selection combinations need no per-call error handling.
package stat

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// Option configures the cut-offs applied by BinomialExpZ and
// CowanSignificance. Without options no cut-offs are applied.
type Option func(*options)

type options struct {
	minSignal        float64
	hasMinSignal     bool
	minBackground    float64
	hasMinBackground bool
}

// WithMinSignal forces the significance to 0 whenever the signal expectation
// is below min.
func WithMinSignal(min float64) Option {
	return func(o *options) {
		o.minSignal = min
		o.hasMinSignal = true
	}
}

// WithMinBackground forces the significance to 0 whenever the background
// expectation is below min, guarding against regions where the background
// estimate is too small to trust.
func WithMinBackground(min float64) Option {
	return func(o *options) {
		o.minBackground = min
		o.hasMinBackground = true
	}
}

// PValue returns the Poisson probability of a fluctuation at least as far
// from the expectation exp as the observed count obs, on the side of obs.
func PValue(obs, exp float64) float64 {
	if obs > exp {
		return 1 - mathext.GammaIncRegComp(obs, exp)
	}
	return mathext.GammaIncRegComp(obs+1, exp)
}

// ZValue maps a p-value to a z-score through the inverse error function.
func ZValue(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(1-0.2*p)
}

// PoissonSignificance returns the signed z-score of observing obs counts for
// a Poisson expectation exp: positive for an excess, negative for a deficit,
// and 0 when the p-value is 0.5 or larger.
func PoissonSignificance(obs, exp float64) float64 {
	p := PValue(obs, exp)
	if p >= 0.5 {
		return 0
	}
	if obs > exp {
		return ZValue(p)
	}
	return -ZValue(p)
}

// BinomialExpZ returns the expected significance of a signal expectation s
// over a background expectation b whose fractional uncertainty is sigmaB,
// from the binomial probability of the on/off counting experiment with an
// auxiliary measurement of equivalent size.
//
// The result is 0 when b or sigmaB is not positive, when s+b is not
// positive, when a configured WithMinSignal or WithMinBackground cut-off
// fires, or when the raw value is negative, infinite, or NaN.
func BinomialExpZ(s, b, sigmaB float64, opts ...Option) float64 {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if b <= 0 || sigmaB <= 0 || s+b <= 0 {
		return 0
	}

	tau := 1 / (b * sigmaB * sigmaB)
	pBi := mathext.RegIncBeta(s+b, b*tau+1, 1/(1+tau))
	z := distuv.UnitNormal.Quantile(1 - pBi)

	if o.hasMinBackground && b < o.minBackground {
		z = 0
	}
	if o.hasMinSignal && s < o.minSignal {
		z = 0
	}
	if z < 0 || math.IsInf(z, 1) || math.IsNaN(z) {
		z = 0
	}
	return z
}

// CowanSignificance returns the asymptotic discovery significance of a
// signal expectation s over a background expectation b with an absolute
// uncertainty of sigmaBFrac*b, rounded to two decimals. The customary
// sigmaBFrac is 0.5.
//
// The result is 0 when s or b is below 1e-5, when sigmaBFrac is not
// positive, when a configured WithMinSignal or WithMinBackground cut-off
// fires, or when the squared significance comes out non-positive.
func CowanSignificance(s, b, sigmaBFrac float64, opts ...Option) float64 {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if s < 1e-5 || b < 1e-5 {
		return 0
	}
	if o.hasMinSignal && s < o.minSignal {
		return 0
	}
	if o.hasMinBackground && b < o.minBackground {
		return 0
	}

	sigmaB := sigmaBFrac * b
	if sigmaB <= 0 {
		return 0
	}
	sb2 := sigmaB * sigmaB

	term1 := (s + b) * math.Log(((s+b)*(b+sb2))/(b*b+(s+b)*sb2))
	term2 := (b * b / sb2) * math.Log(1+(s*sb2)/(b*(b+sb2)))

	za2 := 2 * (term1 - term2)
	if za2 <= 0 {
		return 0
	}
	return math.Round(math.Sqrt(za2)*100) / 100
}

// SignalOverSqrtB returns the naive figure of merit s/sqrt(b), or 0 when b
// is not positive.
func SignalOverSqrtB(s, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return s / math.Sqrt(b)
}
