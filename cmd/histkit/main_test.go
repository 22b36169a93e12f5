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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franaln/histkit/hist"
)

func TestKindOf(t *testing.T) {
	b := hist.LinearBinning(2, 0, 2)
	assert.Equal(t, "h1", kindOf(hist.NewHistogram("h", b)))
	assert.Equal(t, "h2", kindOf(hist.NewHistogram2D("h", b, b)))
	assert.Equal(t, "profile", kindOf(hist.NewProfile("p", b)))
}

func TestIntegralOf(t *testing.T) {
	b := hist.LinearBinning(2, 0, 2)

	h := hist.NewHistogram("h", b)
	h.Fill(0.5)
	h.Fill(1.5)
	assert.Equal(t, "2", integralOf(h))

	assert.Equal(t, "-", integralOf(hist.NewProfile("p", b)))
}

func TestMergeGroup(t *testing.T) {
	b := hist.LinearBinning(2, 0, 2)

	a := hist.NewHistogram("met", b)
	a.Fill(0.5)
	o := hist.NewHistogram("met", b)
	o.Fill(0.5)
	o.Fill(1.5)

	merged, err := mergeGroup([]hist.Object{a, o})
	require.NoError(t, err)
	got := merged.(*hist.Histogram)
	assert.Equal(t, 2.0, got.BinContent(1))
	assert.Equal(t, 1.0, got.BinContent(2))

	// Inputs of mixed kinds are rejected.
	_, err = mergeGroup([]hist.Object{a, hist.NewProfile("met", b)})
	assert.Error(t, err)

	// Profiles merge through their moments.
	p1 := hist.NewProfile("prof", b)
	p1.Fill(0.5, 2)
	p2 := hist.NewProfile("prof", b)
	p2.Fill(0.5, 4)
	mergedProf, err := mergeGroup([]hist.Object{p1, p2})
	require.NoError(t, err)
	assert.Equal(t, 3.0, mergedProf.(*hist.Profile).BinContent(1))
}

type fakeStore map[string]hist.Object

func (s fakeStore) Get(name string) (hist.Object, error) {
	obj, ok := s[name]
	if !ok {
		return nil, assert.AnError
	}
	return obj, nil
}

func TestGetHistogram(t *testing.T) {
	b := hist.LinearBinning(2, 0, 2)
	store := fakeStore{
		"met":  hist.NewHistogram("met", b),
		"prof": hist.NewProfile("prof", b),
	}

	h, err := getHistogram(store, "met")
	require.NoError(t, err)
	assert.Equal(t, "met", h.Name())

	_, err = getHistogram(store, "prof")
	assert.Error(t, err)

	_, err = getHistogram(store, "absent")
	assert.Error(t, err)
}
