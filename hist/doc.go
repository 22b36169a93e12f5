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

// Package hist provides binned histograms with error-propagating
// arithmetic for counting analyses.
//
// The building blocks are Binning (an axis), Histogram and Histogram2D
// (binned distributions with per-bin statistical errors), Profile (per-bin
// means of a dependent quantity), and Measurement (a scalar with an
// uncertainty, which bin contents and scale factors reduce to). A Manager
// registers objects by name so booking and filling can be separated, and
// FillAll feeds many histograms from a single pass over an input sequence.
//
// Typical use:
//
//	m := hist.NewManager()
//	met, err := m.AddHistogram("met", hist.LinearBinning(40, 0, 400))
//	if err != nil {
//		...
//	}
//	for _, ev := range events {
//		met.FillW(ev.Met, ev.Weight)
//	}
//	met.AddOverflowBin()
//	met.Normalize()
//
// Transforms that mutate in place say so in their documentation; everything
// else returns new values. Sibling packages cover the statistics formulas
// (stat) and persistence of named collections (histio).
package hist
