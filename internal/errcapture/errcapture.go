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

// Package errcapture propagates errors from deferred cleanup calls, so a
// failing Close on a written file is never silently dropped.
package errcapture

import (
	"errors"
	"fmt"
	"os"
)

// Do runs doer and folds its error into *err, joining the two when the
// caller already failed. A double close (os.ErrClosed) is ignored. Meant
// for deferred Close calls on resources whose release can fail:
//
//	defer errcapture.Do(&err, f.Close, "close %s", path)
func Do(err *error, doer func() error, format string, a ...any) {
	derr := doer()
	if err == nil || derr == nil || errors.Is(derr, os.ErrClosed) {
		return
	}
	*err = errors.Join(*err, fmt.Errorf(format+": %w", append(a, derr)...))
}
