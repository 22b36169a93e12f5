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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/franaln/histkit/hist"
	"github.com/franaln/histkit/internal/errcapture"
)

// Mode selects how OpenFile treats the file on disk.
type Mode int

const (
	// Read loads an existing snapshot; the store rejects mutations and
	// Close does not write.
	Read Mode = iota

	// Update loads an existing snapshot if there is one and writes the
	// staged collection back on Close.
	Update

	// Recreate starts from an empty collection, discarding any previous
	// snapshot on Close.
	Recreate
)

const snapshotVersion = 1

// envelope is the top-level snapshot document. Objects stays raw so the
// checksum covers its exact bytes.
type envelope struct {
	Version  int                 `json:"version"`
	Checksum string              `json:"checksum"`
	Objects  jsoniter.RawMessage `json:"objects"`
}

// A File stages a collection of named objects against a single JSON
// snapshot on disk. Put and Delete work on the staged collection; the file
// itself changes only when Close flushes, atomically, in Update or
// Recreate mode. The payload carries a checksum that OpenFile verifies, so
// a truncated or edited snapshot fails fast with ErrChecksum.
//
// A File is not synchronized.
type File struct {
	path    string
	mode    Mode
	objects map[string]record
	closed  bool
}

// OpenFile opens the snapshot at path in the given mode. In Read mode the
// file must exist; in Update mode it is loaded when present; in Recreate
// mode the store starts empty.
func OpenFile(path string, mode Mode) (*File, error) {
	f := &File{
		path:    path,
		mode:    mode,
		objects: make(map[string]record),
	}
	if mode == Recreate {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if mode == Update && os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("histio: open %s: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("histio: open %s: %w", path, err)
	}
	if env.Version != snapshotVersion {
		return nil, fmt.Errorf("histio: open %s: unsupported snapshot version %d", path, env.Version)
	}
	if sum := checksum(env.Objects); sum != env.Checksum {
		return nil, fmt.Errorf("%w: %s has %s, payload hashes to %s", ErrChecksum, path, env.Checksum, sum)
	}

	var recs []record
	if err := json.Unmarshal(env.Objects, &recs); err != nil {
		return nil, fmt.Errorf("histio: open %s: %w", path, err)
	}
	for _, rec := range recs {
		f.objects[rec.Name] = rec
	}
	return f, nil
}

func checksum(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

// Path returns the file path the snapshot is bound to.
func (f *File) Path() string { return f.path }

// Len returns the number of staged objects.
func (f *File) Len() int { return len(f.objects) }

// Put stages obj under its own name, replacing any staged object with that
// name. The object's state is captured at the time of the call.
func (f *File) Put(obj hist.Object) error {
	return f.PutAs(obj, obj.Name())
}

// PutAs stages obj under the given name instead of its own.
func (f *File) PutAs(obj hist.Object, name string) error {
	if f.mode == Read {
		return fmt.Errorf("%w: cannot put %q into %s", ErrReadOnly, name, f.path)
	}
	rec, err := encodeRecord(obj)
	if err != nil {
		return err
	}
	rec.Name = name
	f.objects[name] = rec
	return nil
}

// Get returns the stored object with the given name. Every call decodes a
// fresh copy, so callers can mutate the result freely.
func (f *File) Get(name string) (hist.Object, error) {
	rec, ok := f.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrNotExist, name, f.path)
	}
	return decodeRecord(rec)
}

// Names returns the staged object names in sorted order.
func (f *File) Names() ([]string, error) {
	names := make([]string, 0, len(f.objects))
	for name := range f.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// List returns the stored objects whose names contain pattern as a
// substring, in name order. An empty pattern selects everything.
func (f *File) List(pattern string) ([]hist.Object, error) {
	names, _ := f.Names()

	var objs []hist.Object
	for _, name := range names {
		if pattern != "" && !strings.Contains(name, pattern) {
			continue
		}
		obj, err := f.Get(name)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Delete removes the staged object with the given name. Deleting an absent
// name is a no-op.
func (f *File) Delete(name string) error {
	if f.mode == Read {
		return fmt.Errorf("%w: cannot delete %q from %s", ErrReadOnly, name, f.path)
	}
	delete(f.objects, name)
	return nil
}

// Close flushes the staged collection to disk in Update and Recreate mode
// and releases the store. Closing twice is safe; only the first call
// writes.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.mode == Read {
		return nil
	}
	return f.flush()
}

// flush writes the snapshot through a temp file and a rename, so readers
// never see a half-written document.
func (f *File) flush() error {
	names, _ := f.Names()
	recs := make([]record, 0, len(names))
	for _, name := range names {
		recs = append(recs, f.objects[name])
	}

	payload, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("histio: flush %s: %w", f.path, err)
	}
	data, err := json.Marshal(envelope{
		Version:  snapshotVersion,
		Checksum: checksum(payload),
		Objects:  payload,
	})
	if err != nil {
		return fmt.Errorf("histio: flush %s: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".histkit-*")
	if err != nil {
		return fmt.Errorf("histio: flush %s: %w", f.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("histio: flush %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("histio: flush %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("histio: flush %s: %w", f.path, err)
	}
	return nil
}

// Save writes every object registered in m to a fresh snapshot at path.
// The flush happens in the deferred Close; its error is captured.
func Save(path string, m *hist.Manager) (err error) {
	f, err := OpenFile(path, Recreate)
	if err != nil {
		return err
	}
	defer errcapture.Do(&err, f.Close, "histio: close %s", path)

	for _, obj := range m.Objects() {
		if err := f.Put(obj); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the snapshot at path into a new Manager.
func Load(path string) (*hist.Manager, error) {
	f, err := OpenFile(path, Read)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := hist.NewManager()
	names, _ := f.Names()
	for _, name := range names {
		obj, err := f.Get(name)
		if err != nil {
			return nil, err
		}
		if err := m.Register(obj); err != nil {
			return nil, err
		}
	}
	return m, nil
}
