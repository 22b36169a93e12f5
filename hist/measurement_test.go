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
	"math"
	"testing"
)

func measEqual(a, b Measurement) bool {
	return math.Abs(a.Mean-b.Mean) < 1e-9 && math.Abs(a.Error-b.Error) < 1e-9
}

func TestMeasurementAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Measurement
		want Measurement
	}{
		{"quadrature", NewMeasurement(1, 3), NewMeasurement(2, 4), NewMeasurement(3, 5)},
		{"negative mean", NewMeasurement(5, 6), NewMeasurement(-2, 8), NewMeasurement(3, 10)},
		{"exact operands", Exact(1.5), Exact(2.25), Exact(3.75)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Add(tt.b); !measEqual(got, tt.want) {
				t.Errorf("(%v).Add(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMeasurementSub(t *testing.T) {
	tests := []struct {
		name string
		a, b Measurement
		want Measurement
	}{
		{"quadrature", NewMeasurement(5, 3), NewMeasurement(2, 4), NewMeasurement(3, 5)},
		{"negative result", Exact(2), Exact(5), Exact(-3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Sub(tt.b); !measEqual(got, tt.want) {
				t.Errorf("(%v).Sub(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMeasurementMul(t *testing.T) {
	tests := []struct {
		name string
		a, b Measurement
		want Measurement
	}{
		{"relative quadrature", NewMeasurement(10, 3), NewMeasurement(20, 8), NewMeasurement(200, 100)},
		{"exact factor", NewMeasurement(10, 1), Exact(2), NewMeasurement(20, 2)},
		{"zero left mean", NewMeasurement(0, 1), NewMeasurement(5, 1), NewMeasurement(0, 0)},
		{"zero right mean", NewMeasurement(5, 1), NewMeasurement(0, 1), NewMeasurement(0, 0)},
		// The error carries the sign of the mean; callers treat errors as
		// magnitudes but the raw convention is preserved.
		{"negative mean carries sign", NewMeasurement(-10, 1), Exact(2), NewMeasurement(-20, -2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Mul(tt.b); !measEqual(got, tt.want) {
				t.Errorf("(%v).Mul(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMeasurementDiv(t *testing.T) {
	tests := []struct {
		name string
		a, b Measurement
		want Measurement
	}{
		{"relative quadrature", NewMeasurement(10, 3), NewMeasurement(20, 8), NewMeasurement(0.5, 0.25)},
		{"divide by zero mean", NewMeasurement(3, 1), NewMeasurement(0, 5), NewMeasurement(0, 0)},
		{"zero numerator", NewMeasurement(0, 1), NewMeasurement(5, 1), NewMeasurement(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Div(tt.b); !measEqual(got, tt.want) {
				t.Errorf("(%v).Div(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMeasurementScale(t *testing.T) {
	if got, want := NewMeasurement(10, 2).Scale(3), NewMeasurement(30, 6); !measEqual(got, want) {
		t.Errorf("Scale(3) = %v, want %v", got, want)
	}
	if got, want := NewMeasurement(10, 2).Scale(0), NewMeasurement(0, 0); !measEqual(got, want) {
		t.Errorf("Scale(0) = %v, want %v", got, want)
	}
}

func TestMeasurementOrdering(t *testing.T) {
	// Ordering ignores the uncertainties entirely.
	a := NewMeasurement(1, 99)
	b := NewMeasurement(2, 0)
	if !a.Less(b) || !a.LessEqual(b) || a.Greater(b) || a.GreaterEqual(b) {
		t.Errorf("expected %v < %v by mean", a, b)
	}
	c := NewMeasurement(2, 7)
	if b.Less(c) || !b.LessEqual(c) || b.Greater(c) || !b.GreaterEqual(c) {
		t.Errorf("expected %v == %v by mean", b, c)
	}
	if !a.Less(Exact(1.5)) {
		t.Errorf("expected %v < scalar 1.5", a)
	}
}

func TestMeasurementString(t *testing.T) {
	tests := []struct {
		m    Measurement
		want string
	}{
		{NewMeasurement(0.005, 0.001), "0.0050 +- 0.0010"},
		{NewMeasurement(-0.005, 0.001), "-0.0050 +- 0.0010"},
		{NewMeasurement(3.14159, 0.5), "3.14 +- 0.50"},
		{NewMeasurement(0.01, 0.2), "0.01 +- 0.20"},
		{NewMeasurement(120, 11), "120.00 +- 11.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
