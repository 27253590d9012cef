//
// DISCLAIMER
//
// Copyright 2017-2026 ArangoDB GmbH, Cologne, Germany
//
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
//
// Copyright holder is ArangoDB GmbH, Cologne, Germany
//

package logging

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	maskAny = errors.WithStack

	// ErrClosed is returned by operations on a sink that has been closed.
	ErrClosed = errors.New("sink is closed")
)

// OpenError is returned when the target file of a sink cannot be
// created or opened, either at construction or during a reopen.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open log file %s: %s", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Cause is used by github.com/pkg/errors.
func (e *OpenError) Cause() error { return e.Err }

// WriteError is returned when a write, flush, sync or close of the
// underlying file fails.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("log file %s: %s failed: %s", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Cause is used by github.com/pkg/errors.
func (e *WriteError) Cause() error { return e.Err }

// IsOpenError returns true when the given error is (or wraps) an OpenError.
func IsOpenError(err error) bool {
	var oerr *OpenError
	return errors.As(err, &oerr)
}

// IsWriteError returns true when the given error is (or wraps) a WriteError.
func IsWriteError(err error) bool {
	var werr *WriteError
	return errors.As(err, &werr)
}

// IsClosed returns true when the given error was caused by using a closed sink.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
