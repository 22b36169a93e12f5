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

package errcapture

import (
	"errors"
	"os"
	"testing"
)

func TestDo(t *testing.T) {
	errCaller := errors.New("caller failed")
	errClose := errors.New("close failed")

	tests := []struct {
		name     string
		err      error
		closeErr error
		want     []error
	}{
		{"both clean", nil, nil, nil},
		{"caller failed, close clean", errCaller, nil, []error{errCaller}},
		{"close failed", nil, errClose, []error{errClose}},
		{"both failed", errCaller, errClose, []error{errCaller, errClose}},
		{"double close ignored", errCaller, os.ErrClosed, []error{errCaller}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.err
			Do(&err, func() error { return tt.closeErr }, "close")

			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("Do left error %v, want nil", err)
				}
				return
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Do left error %v, want it to wrap %v", err, want)
				}
			}
		})
	}

	// The unchanged caller error passes through as itself.
	err := errCaller
	Do(&err, func() error { return nil }, "close")
	if err != errCaller {
		t.Errorf("Do rewrapped a clean close: %v", err)
	}
}
