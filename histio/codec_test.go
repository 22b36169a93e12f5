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
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franaln/histkit/hist"
)

// sampleHistogram fills a weighted 1-D histogram including flow entries, so
// round trips cover every buffer slot.
func sampleHistogram(name string) *hist.Histogram {
	h := hist.NewHistogram(name, hist.LinearBinning(4, 0, 8))
	h.FillW(1, 2)
	h.FillW(3, 0.5)
	h.FillW(3.5, 0.5)
	h.FillW(7.9, 1)
	h.FillW(-1, 1) // underflow
	h.FillW(12, 3) // overflow
	return h
}

func sampleHistogram2D(name string) *hist.Histogram2D {
	h := hist.NewHistogram2D(name, hist.LinearBinning(3, 0, 3), hist.VariableBinning(0, 1, 10))
	h.FillW(0.5, 0.5, 1)
	h.FillW(2.5, 5, 0.25)
	h.FillW(-1, 20, 2) // underflow x, overflow y
	return h
}

func sampleProfile(name string) *hist.Profile {
	p := hist.NewProfile(name, hist.LinearBinning(3, 0, 3))
	p.FillW(0.5, 10, 1)
	p.FillW(0.5, 12, 2)
	p.FillW(2.5, -4, 1)
	p.FillW(9, 1, 1) // overflow
	return p
}

// equalHistogram compares every buffer slot, flow bins included, on the raw
// sumw2 moments rather than derived errors.
func equalHistogram(t *testing.T, want, got *hist.Histogram) {
	t.Helper()
	require.Equal(t, want.Name(), got.Name())
	require.True(t, want.Binning().Equal(got.Binning()), "binning mismatch")
	require.Equal(t, want.Entries(), got.Entries())
	for i := 0; i <= want.NBins()+1; i++ {
		if want.BinContent(i) != got.BinContent(i) || want.Sumw2(i) != got.Sumw2(i) {
			t.Fatalf("bin %d differs\nwant: %sgot:  %s", i, spew.Sdump(want), spew.Sdump(got))
		}
	}
}

func TestHistogramRoundTrip(t *testing.T) {
	want := sampleHistogram("met")

	data, err := MarshalObject(want)
	require.NoError(t, err)

	obj, err := UnmarshalObject(data)
	require.NoError(t, err)

	got, ok := obj.(*hist.Histogram)
	require.True(t, ok, "decoded %T, want *hist.Histogram", obj)
	equalHistogram(t, want, got)
}

func TestHistogram2DRoundTrip(t *testing.T) {
	want := sampleHistogram2D("met_vs_pt")

	data, err := MarshalObject(want)
	require.NoError(t, err)

	obj, err := UnmarshalObject(data)
	require.NoError(t, err)

	got, ok := obj.(*hist.Histogram2D)
	require.True(t, ok, "decoded %T, want *hist.Histogram2D", obj)
	require.Equal(t, want.Name(), got.Name())
	require.Equal(t, want.Entries(), got.Entries())
	require.True(t, want.XBinning().Equal(got.XBinning()))
	require.True(t, want.YBinning().Equal(got.YBinning()))
	for ix := 0; ix <= want.NBinsX()+1; ix++ {
		for iy := 0; iy <= want.NBinsY()+1; iy++ {
			if want.BinContent(ix, iy) != got.BinContent(ix, iy) || want.Sumw2(ix, iy) != got.Sumw2(ix, iy) {
				t.Fatalf("bin (%d,%d) differs\nwant: %sgot:  %s", ix, iy, spew.Sdump(want), spew.Sdump(got))
			}
		}
	}
}

func TestProfileRoundTrip(t *testing.T) {
	want := sampleProfile("pt_mean")

	data, err := MarshalObject(want)
	require.NoError(t, err)

	obj, err := UnmarshalObject(data)
	require.NoError(t, err)

	got, ok := obj.(*hist.Profile)
	require.True(t, ok, "decoded %T, want *hist.Profile", obj)
	require.Equal(t, want.Name(), got.Name())
	require.Equal(t, want.Entries(), got.Entries())
	require.True(t, want.Binning().Equal(got.Binning()))
	for i := 0; i <= want.NBins()+1; i++ {
		ww, w2w, wyw, wy2w := want.Moments(i)
		wg, w2g, wyg, wy2g := got.Moments(i)
		if ww != wg || w2w != w2g || wyw != wyg || wy2w != wy2g {
			t.Fatalf("bin %d moments differ\nwant: %sgot:  %s", i, spew.Sdump(want), spew.Sdump(got))
		}
	}

	// The derived view survives too.
	assert.InDelta(t, want.BinContent(1), got.BinContent(1), 1e-12)
	assert.InDelta(t, want.BinError(1), got.BinError(1), 1e-12)
}

func TestUnmarshalObjectRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown kind", `{"kind":"graph","name":"g"}`},
		{"not json", `{"kind":`},
		{"too few edges", `{"kind":"h1","name":"h","edges":[1],"content":[0,0,0],"sumw2":[0,0,0]}`},
		{"unsorted edges", `{"kind":"h1","name":"h","edges":[1,0],"content":[0,0,0],"sumw2":[0,0,0]}`},
		{"short buffers", `{"kind":"h1","name":"h","edges":[0,1],"content":[0],"sumw2":[0]}`},
		{"short moments", `{"kind":"profile","name":"p","edges":[0,1],"sumw":[0],"sumw2":[0],"sumwy":[0],"sumwy2":[0]}`},
		{"bad 2d grid", `{"kind":"h2","name":"h","xedges":[0,1],"yedges":[0,1],"content":[0,0],"sumw2":[0,0]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalObject([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
