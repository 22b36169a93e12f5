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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franaln/histkit/hist"
)

func newTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBadgerStorePutGet(t *testing.T) {
	s := newTestBadger(t)

	want := sampleHistogram("met")
	require.NoError(t, s.Put(want))

	obj, err := s.Get("met")
	require.NoError(t, err)
	got, ok := obj.(*hist.Histogram)
	require.True(t, ok, "decoded %T, want *hist.Histogram", obj)
	equalHistogram(t, want, got)
}

func TestBadgerStoreAllKinds(t *testing.T) {
	s := newTestBadger(t)

	require.NoError(t, s.Put(sampleHistogram("met")))
	require.NoError(t, s.Put(sampleHistogram2D("met_vs_pt")))
	require.NoError(t, s.Put(sampleProfile("pt_mean")))

	names, err := s.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"met", "met_vs_pt", "pt_mean"}, names)

	obj, err := s.Get("met_vs_pt")
	require.NoError(t, err)
	assert.IsType(t, (*hist.Histogram2D)(nil), obj)

	obj, err = s.Get("pt_mean")
	require.NoError(t, err)
	assert.IsType(t, (*hist.Profile)(nil), obj)
}

func TestBadgerStoreMissing(t *testing.T) {
	s := newTestBadger(t)

	_, err := s.Get("absent")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestBadgerStorePutReplaces(t *testing.T) {
	s := newTestBadger(t)

	first := sampleHistogram("met")
	require.NoError(t, s.Put(first))

	second := sampleHistogram("met")
	second.Fill(1)
	require.NoError(t, s.Put(second))

	obj, err := s.Get("met")
	require.NoError(t, err)
	assert.Equal(t, second.Entries(), obj.(*hist.Histogram).Entries())
}

func TestBadgerStorePutAs(t *testing.T) {
	s := newTestBadger(t)

	require.NoError(t, s.PutAs(sampleHistogram("met"), "met_nominal"))

	_, err := s.Get("met")
	assert.ErrorIs(t, err, ErrNotExist)

	obj, err := s.Get("met_nominal")
	require.NoError(t, err)
	assert.Equal(t, "met_nominal", obj.Name())
}

func TestBadgerStoreDelete(t *testing.T) {
	s := newTestBadger(t)

	require.NoError(t, s.Put(sampleHistogram("met")))
	require.NoError(t, s.Delete("met"))

	_, err := s.Get("met")
	assert.ErrorIs(t, err, ErrNotExist)

	// Deleting what is not there is a no-op.
	assert.NoError(t, s.Delete("met"))
}

func TestBadgerStoreOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(sampleHistogram("met")))
	require.NoError(t, s.Close())

	// The collection survives a reopen.
	s, err = OpenBadger(dir)
	require.NoError(t, err)
	defer s.Close()

	obj, err := s.Get("met")
	require.NoError(t, err)
	equalHistogram(t, sampleHistogram("met"), obj.(*hist.Histogram))
}
