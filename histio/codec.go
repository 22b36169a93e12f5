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

package histio

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/franaln/histkit/hist"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Object kinds as stored in snapshot records.
const (
	KindHistogram   = "h1"
	KindHistogram2D = "h2"
	KindProfile     = "profile"
)

// A record is the wire form of one stored object. Buffers carry the flow
// bins too ([0..N+1] per axis, 2-D row-major) and hold raw accumulated
// moments rather than derived errors, so decoding reproduces the encoded
// object exactly.
type record struct {
	Kind string `json:"kind"`
	Name string `json:"name"`

	Edges  []float64 `json:"edges,omitempty"`  // h1, profile
	XEdges []float64 `json:"xedges,omitempty"` // h2
	YEdges []float64 `json:"yedges,omitempty"` // h2

	Content []float64 `json:"content,omitempty"` // h1, h2
	Sumw2   []float64 `json:"sumw2,omitempty"`   // h1, h2, profile

	Sumw   []float64 `json:"sumw,omitempty"`   // profile
	Sumwy  []float64 `json:"sumwy,omitempty"`  // profile
	Sumwy2 []float64 `json:"sumwy2,omitempty"` // profile

	Entries uint64 `json:"entries"`
}

// MarshalObject encodes one histkit object as a snapshot record.
func MarshalObject(obj hist.Object) ([]byte, error) {
	rec, err := encodeRecord(obj)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// UnmarshalObject decodes a snapshot record back into the histkit object
// it was encoded from.
func UnmarshalObject(data []byte) (hist.Object, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("histio: decode record: %w", err)
	}
	return decodeRecord(rec)
}

func encodeRecord(obj hist.Object) (record, error) {
	switch o := obj.(type) {
	case *hist.Histogram:
		n := o.NBins()
		rec := record{
			Kind:    KindHistogram,
			Name:    o.Name(),
			Edges:   o.Binning().Edges(),
			Content: make([]float64, n+2),
			Sumw2:   make([]float64, n+2),
			Entries: o.Entries(),
		}
		for i := 0; i <= n+1; i++ {
			rec.Content[i] = o.BinContent(i)
			rec.Sumw2[i] = o.Sumw2(i)
		}
		return rec, nil

	case *hist.Histogram2D:
		nx, ny := o.NBinsX(), o.NBinsY()
		rec := record{
			Kind:    KindHistogram2D,
			Name:    o.Name(),
			XEdges:  o.XBinning().Edges(),
			YEdges:  o.YBinning().Edges(),
			Content: make([]float64, 0, (nx+2)*(ny+2)),
			Sumw2:   make([]float64, 0, (nx+2)*(ny+2)),
			Entries: o.Entries(),
		}
		for ix := 0; ix <= nx+1; ix++ {
			for iy := 0; iy <= ny+1; iy++ {
				rec.Content = append(rec.Content, o.BinContent(ix, iy))
				rec.Sumw2 = append(rec.Sumw2, o.Sumw2(ix, iy))
			}
		}
		return rec, nil

	case *hist.Profile:
		n := o.NBins()
		rec := record{
			Kind:    KindProfile,
			Name:    o.Name(),
			Edges:   o.Binning().Edges(),
			Sumw:    make([]float64, n+2),
			Sumw2:   make([]float64, n+2),
			Sumwy:   make([]float64, n+2),
			Sumwy2:  make([]float64, n+2),
			Entries: o.Entries(),
		}
		for i := 0; i <= n+1; i++ {
			rec.Sumw[i], rec.Sumw2[i], rec.Sumwy[i], rec.Sumwy2[i] = o.Moments(i)
		}
		return rec, nil

	default:
		return record{}, fmt.Errorf("histio: cannot encode %T", obj)
	}
}

func decodeRecord(rec record) (hist.Object, error) {
	switch rec.Kind {
	case KindHistogram:
		b, err := binningFromEdges(rec.Name, rec.Edges)
		if err != nil {
			return nil, err
		}
		n := b.N()
		if len(rec.Content) != n+2 || len(rec.Sumw2) != n+2 {
			return nil, fmt.Errorf("histio: record %q: buffer length does not match %d bins", rec.Name, n)
		}
		h := hist.NewHistogram(rec.Name, b)
		for i := 0; i <= n+1; i++ {
			h.SetBinContent(i, rec.Content[i])
			h.SetSumw2(i, rec.Sumw2[i])
		}
		h.SetEntries(rec.Entries)
		return h, nil

	case KindHistogram2D:
		xb, err := binningFromEdges(rec.Name, rec.XEdges)
		if err != nil {
			return nil, err
		}
		yb, err := binningFromEdges(rec.Name, rec.YEdges)
		if err != nil {
			return nil, err
		}
		nx, ny := xb.N(), yb.N()
		if size := (nx + 2) * (ny + 2); len(rec.Content) != size || len(rec.Sumw2) != size {
			return nil, fmt.Errorf("histio: record %q: buffer length does not match %dx%d bins", rec.Name, nx, ny)
		}
		h := hist.NewHistogram2D(rec.Name, xb, yb)
		k := 0
		for ix := 0; ix <= nx+1; ix++ {
			for iy := 0; iy <= ny+1; iy++ {
				h.SetBinContent(ix, iy, rec.Content[k])
				h.SetSumw2(ix, iy, rec.Sumw2[k])
				k++
			}
		}
		h.SetEntries(rec.Entries)
		return h, nil

	case KindProfile:
		b, err := binningFromEdges(rec.Name, rec.Edges)
		if err != nil {
			return nil, err
		}
		n := b.N()
		if len(rec.Sumw) != n+2 || len(rec.Sumw2) != n+2 || len(rec.Sumwy) != n+2 || len(rec.Sumwy2) != n+2 {
			return nil, fmt.Errorf("histio: record %q: moment length does not match %d bins", rec.Name, n)
		}
		p := hist.NewProfile(rec.Name, b)
		for i := 0; i <= n+1; i++ {
			p.SetMoments(i, rec.Sumw[i], rec.Sumw2[i], rec.Sumwy[i], rec.Sumwy2[i])
		}
		p.SetEntries(rec.Entries)
		return p, nil

	default:
		return nil, fmt.Errorf("histio: unknown object kind %q", rec.Kind)
	}
}

// binningFromEdges validates snapshot edges before handing them to the
// panicking constructor; records come from files, not from code.
func binningFromEdges(name string, edges []float64) (hist.Binning, error) {
	if len(edges) < 2 {
		return hist.Binning{}, fmt.Errorf("histio: record %q: need at least 2 edges, got %d", name, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return hist.Binning{}, fmt.Errorf("histio: record %q: edges not strictly increasing", name)
		}
	}
	return hist.VariableBinning(edges...), nil
}
