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

// A FillOp pairs a target histogram with the closures producing its fill
// value and weight for the event currently loaded.
type FillOp struct {
	Target *Histogram

	// Value returns the quantity to fill for the current event.
	Value func() float64

	// Weight is optional: nil fills with weight 1. A weight of exactly 0
	// skips the event for this target, which is how selection cuts are
	// expressed.
	Weight func() float64
}

// FillAll makes a single pass over an event sequence and feeds every
// operation from that one pass, instead of re-scanning the input once per
// histogram. load positions the caller's event cursor on event i; the
// Value and Weight closures then read whatever load exposed.
//
//	var ev Event
//	hist.FillAll(n, func(i int) { ev = events[i] },
//		hist.FillOp{Target: hMet, Value: func() float64 { return ev.Met }},
//		hist.FillOp{Target: hPt, Value: func() float64 { return ev.Pt },
//			Weight: func() float64 { return ev.W }},
//	)
func FillAll(events int, load func(i int), ops ...FillOp) {
	for i := 0; i < events; i++ {
		load(i)
		for _, op := range ops {
			w := 1.0
			if op.Weight != nil {
				w = op.Weight()
			}
			if w == 0 {
				continue
			}
			op.Target.FillW(op.Value(), w)
		}
	}
}
