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

// Package histio persists collections of named histkit objects.
//
// Two stores are provided. File keeps a whole collection in one
// checksummed JSON snapshot, the handy shape for analysis outputs passed
// between jobs. BadgerStore keeps each object as a key-value pair in an
// embedded Badger database, for collections too large or too hot for a
// single document. Both implement Store.
//
// Save and Load move an entire hist.Manager in and out of a snapshot file
// in one call.
package histio

import (
	"errors"

	"github.com/franaln/histkit/hist"
)

var (
	// ErrNotExist is returned by Get when no object with the requested
	// name is stored.
	ErrNotExist = errors.New("histio: object does not exist")

	// ErrChecksum is returned when a snapshot's payload does not match
	// its recorded checksum.
	ErrChecksum = errors.New("histio: checksum mismatch")

	// ErrReadOnly is returned by mutating calls on a store opened in
	// Read mode.
	ErrReadOnly = errors.New("histio: store is read-only")
)

// A Store holds histkit objects by name. Put replaces any object already
// stored under the same name; Delete of an absent name is a no-op. Stores
// must be closed to release their resources, and a File store writes its
// staged objects out only on Close.
type Store interface {
	Put(obj hist.Object) error
	Get(name string) (hist.Object, error)
	Names() ([]string, error)
	Delete(name string) error
	Close() error
}

var (
	_ Store = (*File)(nil)
	_ Store = (*BadgerStore)(nil)
)
