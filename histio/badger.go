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
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/franaln/histkit/hist"
)

// A BadgerStore keeps each object as one key-value pair in an embedded
// Badger database, object names as keys and snapshot records as values.
// Unlike File it has no staging: every Put and Delete is committed
// immediately, and collections never need to fit in memory at once.
//
// A BadgerStore is safe for concurrent use.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a Badger-backed store in the given
// directory. Badger's internal logging is disabled.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("histio: open badger store %s: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenBadgerInMemory opens a store that lives purely in memory and is lost
// on Close. Meant for tests.
func OpenBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("histio: open in-memory badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Put stores obj under its own name, replacing any previous value.
func (s *BadgerStore) Put(obj hist.Object) error {
	return s.PutAs(obj, obj.Name())
}

// PutAs stores obj under the given name instead of its own.
func (s *BadgerStore) PutAs(obj hist.Object, name string) error {
	rec, err := encodeRecord(obj)
	if err != nil {
		return err
	}
	rec.Name = name
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("histio: encode %q: %w", name, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), data)
	})
}

// Get returns the stored object with the given name.
func (s *BadgerStore) Get(name string) (hist.Object, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrNotExist, name)
	}
	if err != nil {
		return nil, fmt.Errorf("histio: get %q: %w", name, err)
	}
	return UnmarshalObject(data)
}

// Names returns all stored object names in key order.
func (s *BadgerStore) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().Key()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("histio: list names: %w", err)
	}
	return names, nil
}

// Delete removes the object with the given name. Deleting an absent name
// is a no-op.
func (s *BadgerStore) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(name))
	})
}

// Close releases the database. The store cannot be used afterwards.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
