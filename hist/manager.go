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
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned by name-based Manager operations when no object
// is registered under the requested name.
var ErrNotFound = errors.New("hist: object not found")

// Object is implemented by every named type a Manager can hold: Histogram,
// Histogram2D, and Profile.
type Object interface {
	Name() string
	Entries() uint64
}

// AlreadyRegisteredError is returned by Manager registration when an object
// with the same name is already held. ExistingObject carries the earlier
// registration so callers that booked the same histogram twice can keep
// using it.
type AlreadyRegisteredError struct {
	ExistingObject Object
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("hist: an object named %q is already registered", e.ExistingObject.Name())
}

// A Manager is a registry of named histogram objects sharing a default fill
// weight. It separates booking from filling: book histograms by name up
// front, fill them by name inside the event loop, and hand the collection
// to histio for persistence.
//
// Registry operations are safe for concurrent use. The held objects
// themselves are not synchronized; fill a given histogram from one
// goroutine at a time.
type Manager struct {
	mtx     sync.RWMutex
	objects map[string]Object
	weight  float64
}

// NewManager returns an empty Manager with default fill weight 1.
func NewManager() *Manager {
	return &Manager{
		objects: map[string]Object{},
		weight:  1,
	}
}

// SetWeight changes the weight applied by the unweighted Fill variants.
// Typical use is a per-sample event weight set once before an event loop.
func (m *Manager) SetWeight(w float64) {
	m.mtx.Lock()
	m.weight = w
	m.mtx.Unlock()
}

// Weight returns the current default fill weight.
func (m *Manager) Weight() float64 {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.weight
}

// Register adds an externally built object under its own name. It returns
// AlreadyRegisteredError if the name is taken and an error for empty names.
func (m *Manager) Register(obj Object) error {
	if obj.Name() == "" {
		return errors.New("hist: cannot register an object with an empty name")
	}
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if existing, ok := m.objects[obj.Name()]; ok {
		return AlreadyRegisteredError{ExistingObject: existing}
	}
	m.objects[obj.Name()] = obj
	return nil
}

// MustRegister registers the given objects and panics on any error. Meant
// for booking at program start, where a duplicate name is a programming
// mistake.
func (m *Manager) MustRegister(objs ...Object) {
	for _, obj := range objs {
		if err := m.Register(obj); err != nil {
			panic(err)
		}
	}
}

// Unregister removes the named object and reports whether it was held.
func (m *Manager) Unregister(name string) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if _, ok := m.objects[name]; !ok {
		return false
	}
	delete(m.objects, name)
	return true
}

// AddHistogram books a 1-D histogram over b and registers it under name.
func (m *Manager) AddHistogram(name string, b Binning) (*Histogram, error) {
	h := NewHistogram(name, b)
	if err := m.Register(h); err != nil {
		return nil, err
	}
	return h, nil
}

// AddHistogram2D books a 2-D histogram over (xb, yb) and registers it under
// name.
func (m *Manager) AddHistogram2D(name string, xb, yb Binning) (*Histogram2D, error) {
	h := NewHistogram2D(name, xb, yb)
	if err := m.Register(h); err != nil {
		return nil, err
	}
	return h, nil
}

// AddProfile books a profile over b and registers it under name.
func (m *Manager) AddProfile(name string, b Binning) (*Profile, error) {
	p := NewProfile(name, b)
	if err := m.Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the named object.
func (m *Manager) Get(name string) (Object, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	obj, ok := m.objects[name]
	return obj, ok
}

// Histogram returns the named 1-D histogram, or false if the name is
// unknown or held by another kind.
func (m *Manager) Histogram(name string) (*Histogram, bool) {
	obj, ok := m.Get(name)
	if !ok {
		return nil, false
	}
	h, ok := obj.(*Histogram)
	return h, ok
}

// Histogram2D returns the named 2-D histogram, or false if the name is
// unknown or held by another kind.
func (m *Manager) Histogram2D(name string) (*Histogram2D, bool) {
	obj, ok := m.Get(name)
	if !ok {
		return nil, false
	}
	h, ok := obj.(*Histogram2D)
	return h, ok
}

// Profile returns the named profile, or false if the name is unknown or
// held by another kind.
func (m *Manager) Profile(name string) (*Profile, bool) {
	obj, ok := m.Get(name)
	if !ok {
		return nil, false
	}
	p, ok := obj.(*Profile)
	return p, ok
}

func (m *Manager) histogram(name string) (*Histogram, error) {
	m.mtx.RLock()
	obj, ok := m.objects[name]
	m.mtx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	h, ok := obj.(*Histogram)
	if !ok {
		return nil, fmt.Errorf("hist: object %q is a %T, not a 1-D histogram", name, obj)
	}
	return h, nil
}

func (m *Manager) histogram2D(name string) (*Histogram2D, error) {
	m.mtx.RLock()
	obj, ok := m.objects[name]
	m.mtx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	h, ok := obj.(*Histogram2D)
	if !ok {
		return nil, fmt.Errorf("hist: object %q is a %T, not a 2-D histogram", name, obj)
	}
	return h, nil
}

func (m *Manager) profile(name string) (*Profile, error) {
	m.mtx.RLock()
	obj, ok := m.objects[name]
	m.mtx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	p, ok := obj.(*Profile)
	if !ok {
		return nil, fmt.Errorf("hist: object %q is a %T, not a profile", name, obj)
	}
	return p, nil
}

// Fill adds x to the named 1-D histogram with the default weight.
func (m *Manager) Fill(name string, x float64) error {
	return m.FillW(name, x, m.Weight())
}

// FillW adds x to the named 1-D histogram with weight w.
func (m *Manager) FillW(name string, x, w float64) error {
	h, err := m.histogram(name)
	if err != nil {
		return err
	}
	h.FillW(x, w)
	return nil
}

// Fill2D adds (x, y) to the named 2-D histogram with the default weight.
func (m *Manager) Fill2D(name string, x, y float64) error {
	return m.FillW2D(name, x, y, m.Weight())
}

// FillW2D adds (x, y) to the named 2-D histogram with weight w.
func (m *Manager) FillW2D(name string, x, y, w float64) error {
	h, err := m.histogram2D(name)
	if err != nil {
		return err
	}
	h.FillW(x, y, w)
	return nil
}

// FillProfile adds the sample (x, y) to the named profile with the default
// weight.
func (m *Manager) FillProfile(name string, x, y float64) error {
	return m.FillProfileW(name, x, y, m.Weight())
}

// FillProfileW adds the sample (x, y) to the named profile with weight w.
func (m *Manager) FillProfileW(name string, x, y, w float64) error {
	p, err := m.profile(name)
	if err != nil {
		return err
	}
	p.FillW(x, y, w)
	return nil
}

// Names returns the registered names in sorted order.
func (m *Manager) Names() []string {
	m.mtx.RLock()
	names := make([]string, 0, len(m.objects))
	for name := range m.objects {
		names = append(names, name)
	}
	m.mtx.RUnlock()
	sort.Strings(names)
	return names
}

// Objects returns the registered objects sorted by name.
func (m *Manager) Objects() []Object {
	m.mtx.RLock()
	objs := make([]Object, 0, len(m.objects))
	for _, obj := range m.objects {
		objs = append(objs, obj)
	}
	m.mtx.RUnlock()
	sort.Slice(objs, func(i, j int) bool { return objs[i].Name() < objs[j].Name() })
	return objs
}

// Len returns the number of registered objects.
func (m *Manager) Len() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.objects)
}
