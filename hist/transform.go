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

import "math"

// Scale multiplies every bin's content and error by c, flow bins included.
func (h *Histogram) Scale(c float64) {
	scaleBuffers(h.content, h.sumw2, c)
}

// Scale multiplies every bin's content and error by c, flow bins included.
func (h *Histogram2D) Scale(c float64) {
	scaleBuffers(h.content, h.sumw2, c)
}

func scaleBuffers(content, sumw2 []float64, c float64) {
	for i := range content {
		content[i] *= c
		sumw2[i] *= c * c
	}
}

// ScaleMeasurement scales every bin by a factor carrying its own
// uncertainty. Per bin, the new content is content*c.Mean and the new error
// is newContent*sqrt((error/content)^2 + (c.Error/c.Mean)^2), defined as 0
// when the content or the factor mean is zero. This is Measurement
// multiplication applied bin by bin.
func (h *Histogram) ScaleMeasurement(c Measurement) {
	scaleBuffersMeasurement(h.content, h.sumw2, c)
}

// ScaleMeasurement scales every bin by a factor carrying its own
// uncertainty. See Histogram.ScaleMeasurement.
func (h *Histogram2D) ScaleMeasurement(c Measurement) {
	scaleBuffersMeasurement(h.content, h.sumw2, c)
}

func scaleBuffersMeasurement(content, sumw2 []float64, c Measurement) {
	for i := range content {
		m := Measurement{Mean: content[i], Error: math.Sqrt(sumw2[i])}.Mul(c)
		content[i] = m.Mean
		sumw2[i] = m.Error * m.Error
	}
}

// Normalize scales the histogram to unit integral over the regular bins.
// Histograms with a non-positive integral are left untouched.
func (h *Histogram) Normalize() {
	if integral := h.Integral(); integral > 0 {
		h.Scale(1 / integral)
	}
}

// Normalize scales the histogram to unit integral over the regular bins.
// Histograms with a non-positive integral are left untouched.
func (h *Histogram2D) Normalize() {
	if integral := h.Integral(); integral > 0 {
		h.Scale(1 / integral)
	}
}

// NormalizeTo scales h in place so its integral matches other's, and
// returns the factor applied. When h has a non-positive integral the
// histogram is left unscaled and the factor is 1. The binnings need not
// match: only the integrals enter.
func (h *Histogram) NormalizeTo(other *Histogram) float64 {
	return h.normalize(other.Integral(), h.Integral())
}

// NormalizeToRange behaves like NormalizeTo with both integrals restricted
// to the bins containing [xmin, xmax], boundary bins included. Each
// histogram resolves the range on its own axis.
func (h *Histogram) NormalizeToRange(other *Histogram, xmin, xmax float64) float64 {
	num := other.IntegralRange(other.FindBin(xmin), other.FindBin(xmax))
	den := h.IntegralRange(h.FindBin(xmin), h.FindBin(xmax))
	return h.normalize(num, den)
}

func (h *Histogram) normalize(num, den float64) float64 {
	s := 1.0
	if den > 0 {
		s = num / den
	}
	h.Scale(s)
	return s
}

// NormalizeTo scales h in place so its integral matches other's, and
// returns the factor applied. See Histogram.NormalizeTo.
func (h *Histogram2D) NormalizeTo(other *Histogram2D) float64 {
	s := 1.0
	if den := h.Integral(); den > 0 {
		s = other.Integral() / den
	}
	h.Scale(s)
	return s
}

// AddOverflowBin folds the overflow bin into the last regular bin: contents
// add, errors combine in quadrature, and the overflow bin ends up zeroed.
// The underflow bin is left alone.
func (h *Histogram) AddOverflowBin() {
	n := h.NBins()
	h.content[n] += h.content[n+1]
	h.sumw2[n] += h.sumw2[n+1]
	h.content[n+1] = 0
	h.sumw2[n+1] = 0
}

// AddOverflowBin folds the overflow structure into the outermost regular
// bins: the overflow row into the last row and the overflow column into the
// last column, and the four bins around the upper corner, (NX,NY) and its
// three overflow neighbors, into (NX,NY). Contents add and errors combine
// in quadrature everywhere; every folded source bin ends up zeroed. The
// underflow row and column are left alone.
func (h *Histogram2D) AddOverflowBin() {
	nx, ny := h.NBinsX(), h.NBinsY()
	for ix := 1; ix < nx; ix++ {
		h.fold(h.idx(ix, ny), h.idx(ix, ny+1))
	}
	for iy := 1; iy < ny; iy++ {
		h.fold(h.idx(nx, iy), h.idx(nx+1, iy))
	}
	corner := h.idx(nx, ny)
	h.fold(corner, h.idx(nx+1, ny))
	h.fold(corner, h.idx(nx, ny+1))
	h.fold(corner, h.idx(nx+1, ny+1))
}

func (h *Histogram2D) fold(dst, src int) {
	h.content[dst] += h.content[src]
	h.sumw2[dst] += h.sumw2[src]
	h.content[src] = 0
	h.sumw2[src] = 0
}

// Cumulative returns a new histogram in which bin i holds the integral of
// h from bin i through the last regular bin, the form used for
// lower-threshold efficiency scans: contents [1,2,3] become [6,5,3]. With
// inverse set, bin i instead holds the integral from the first bin up to
// and including i: [1,2,3] become [1,3,6]. Errors accumulate in quadrature
// over the integrated range. The result's flow bins are zero, its name and
// entry count are copied from h, and h itself is never modified.
func (h *Histogram) Cumulative(inverse bool) *Histogram {
	out := h.CloneEmpty()
	out.entries = h.entries
	n := h.NBins()
	var c, w2 float64
	if inverse {
		for i := 1; i <= n; i++ {
			c += h.content[i]
			w2 += h.sumw2[i]
			out.content[i] = c
			out.sumw2[i] = w2
		}
	} else {
		for i := n; i >= 1; i-- {
			c += h.content[i]
			w2 += h.sumw2[i]
			out.content[i] = c
			out.sumw2[i] = w2
		}
	}
	return out
}

// Cumulative returns a new histogram in which bin (bx, by) holds the
// integral of h over [bx..NX]x[by..NY]. inverseX and inverseY flip the
// accumulation direction per axis, to [1..bx] and [1..by] respectively,
// giving the four direction combinations. Errors accumulate in quadrature
// over the integrated rectangle. The result's flow bins are zero and h is
// never modified.
func (h *Histogram2D) Cumulative(inverseX, inverseY bool) *Histogram2D {
	out := h.CloneEmpty()
	out.entries = h.entries
	nx, ny := h.NBinsX(), h.NBinsY()
	for bx := 1; bx <= nx; bx++ {
		x1, x2 := bx, nx
		if inverseX {
			x1, x2 = 1, bx
		}
		for by := 1; by <= ny; by++ {
			y1, y2 := by, ny
			if inverseY {
				y1, y2 = 1, by
			}
			var c, w2 float64
			for ix := x1; ix <= x2; ix++ {
				for iy := y1; iy <= y2; iy++ {
					i := h.idx(ix, iy)
					c += h.content[i]
					w2 += h.sumw2[i]
				}
			}
			i := out.idx(bx, by)
			out.content[i] = c
			out.sumw2[i] = w2
		}
	}
	return out
}
