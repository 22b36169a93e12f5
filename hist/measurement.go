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

// A Measurement is a mean value paired with its statistical uncertainty. It
// is the scalar counterpart of a histogram bin and the currency of every
// error-propagating operation in this package: bin contents, integrals, and
// scale factors are all Measurements or reduce to them.
//
// Arithmetic treats the operands as independent. Add and Sub combine
// absolute errors in quadrature; Mul and Div combine relative errors in
// quadrature. Whenever a relative error would divide by a zero mean, or a
// quotient would divide by a zero mean, the affected result is defined as 0
// instead of NaN or Inf. That convention keeps empty bins flowing through
// ratio pipelines without poisoning them; it is a sentinel, not a
// statistically meaningful value.
//
// Measurements are immutable. Operators return new values and never modify
// their operands. The error field is expected to be non-negative; this is a
// precondition, not an enforced invariant.
type Measurement struct {
	Mean  float64
	Error float64
}

// NewMeasurement returns a Measurement with the given mean and error.
func NewMeasurement(mean, err float64) Measurement {
	return Measurement{Mean: mean, Error: err}
}

// Exact returns a Measurement carrying no uncertainty. It is the way to
// compare a Measurement against a plain scalar: m.Less(Exact(2)).
func Exact(v float64) Measurement {
	return Measurement{Mean: v}
}

// relErrQuad combines the relative errors of a and b in quadrature. A zero
// mean on either side yields 0.
func relErrQuad(a, b Measurement) float64 {
	if a.Mean == 0 || b.Mean == 0 {
		return 0
	}
	ra := a.Error / a.Mean
	rb := b.Error / b.Mean
	return math.Sqrt(ra*ra + rb*rb)
}

// Add returns m + o, errors combined in quadrature.
func (m Measurement) Add(o Measurement) Measurement {
	return Measurement{
		Mean:  m.Mean + o.Mean,
		Error: math.Sqrt(m.Error*m.Error + o.Error*o.Error),
	}
}

// Sub returns m - o, errors combined in quadrature.
func (m Measurement) Sub(o Measurement) Measurement {
	return Measurement{
		Mean:  m.Mean - o.Mean,
		Error: math.Sqrt(m.Error*m.Error + o.Error*o.Error),
	}
}

// Mul returns m * o, relative errors combined in quadrature. If either mean
// is zero the resulting error is 0.
func (m Measurement) Mul(o Measurement) Measurement {
	mean := m.Mean * o.Mean
	return Measurement{Mean: mean, Error: mean * relErrQuad(m, o)}
}

// Div returns m / o, relative errors combined in quadrature. A zero divisor
// mean yields the zero Measurement, and a zero mean on either side zeroes
// the error.
func (m Measurement) Div(o Measurement) Measurement {
	if o.Mean == 0 {
		return Measurement{}
	}
	mean := m.Mean / o.Mean
	return Measurement{Mean: mean, Error: mean * relErrQuad(m, o)}
}

// Scale returns m scaled by the exact factor k. The error scales linearly
// since k carries no uncertainty of its own.
func (m Measurement) Scale(k float64) Measurement {
	return Measurement{Mean: m.Mean * k, Error: m.Error * k}
}

// Ordering compares means only; uncertainties never participate.

// Less reports whether m.Mean < o.Mean.
func (m Measurement) Less(o Measurement) bool { return m.Mean < o.Mean }

// LessEqual reports whether m.Mean <= o.Mean.
func (m Measurement) LessEqual(o Measurement) bool { return m.Mean <= o.Mean }

// Greater reports whether m.Mean > o.Mean.
func (m Measurement) Greater(o Measurement) bool { return m.Mean > o.Mean }

// GreaterEqual reports whether m.Mean >= o.Mean.
func (m Measurement) GreaterEqual(o Measurement) bool { return m.Mean >= o.Mean }

// String renders the measurement as "<mean> +- <error>", using four decimal
// places when |mean| < 0.01 and two otherwise.
func (m Measurement) String() string {
	if math.Abs(m.Mean) < 0.01 {
		return fmt.Sprintf("%.4f +- %.4f", m.Mean, m.Error)
	}
	return fmt.Sprintf("%.2f +- %.2f", m.Mean, m.Error)
}
