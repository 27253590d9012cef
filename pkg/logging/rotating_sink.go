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
	"io"
	"os"
	"sync"
)

const (
	defaultFileMode os.FileMode = 0644
	openFlags                   = os.O_APPEND | os.O_CREATE | os.O_WRONLY
)

// RotatingSink is an append-only file writer that can be re-pointed to a
// fresh handle of the same path with Reopen. It is meant as the destination
// of a process's output while an external tool rotates the file.
//
// All operations are serialized by a single mutex, so a write lands
// completely in either the old or the new file.
type RotatingSink struct {
	mutex  sync.Mutex
	path   string
	mode   os.FileMode
	out    io.Writer // never nil; f or io.Discard
	f      *os.File  // nil while discarding
	closed bool
}

// Option configures a RotatingSink.
type Option func(*RotatingSink)

// WithFileMode sets the permissions used when the file is created.
func WithFileMode(mode os.FileMode) Option {
	return func(w *RotatingSink) {
		w.mode = mode
	}
}

var (
	_ io.WriteCloser  = &RotatingSink{}
	_ io.ByteWriter   = &RotatingSink{}
	_ io.StringWriter = &RotatingSink{}
)

// New opens (or creates) the file at given path for appending and returns
// a sink writing to it.
func New(path string, options ...Option) (*RotatingSink, error) {
	w := &RotatingSink{
		path: path,
		mode: defaultFileMode,
		out:  io.Discard,
	}
	for _, o := range options {
		o(w)
	}
	f, err := w.open()
	if err != nil {
		return nil, maskAny(err)
	}
	w.f = f
	w.out = f
	return w, nil
}

// Path returns the path of the file written to.
func (w *RotatingSink) Path() string {
	return w.path
}

func (w *RotatingSink) String() string {
	return "logging.RotatingSink -> " + w.path
}

func (w *RotatingSink) open() (*os.File, error) {
	f, err := os.OpenFile(w.path, openFlags, w.mode)
	if err != nil {
		return nil, &OpenError{Path: w.path, Err: err}
	}
	return f, nil
}

func (w *RotatingSink) writeError(op string, err error) error {
	return maskAny(&WriteError{Op: op, Path: w.path, Err: err})
}

// Write appends p to the current file.
func (w *RotatingSink) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return 0, w.writeError("write", ErrClosed)
	}
	n, err := w.out.Write(p)
	if err != nil {
		return n, w.writeError("write", err)
	}
	return n, nil
}

// WriteString appends s to the current file.
func (w *RotatingSink) WriteString(s string) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return 0, w.writeError("write", ErrClosed)
	}
	n, err := io.WriteString(w.out, s)
	if err != nil {
		return n, w.writeError("write", err)
	}
	return n, nil
}

// WriteByte appends a single byte to the current file.
func (w *RotatingSink) WriteByte(b byte) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return w.writeError("write", ErrClosed)
	}
	if _, err := w.out.Write([]byte{b}); err != nil {
		return w.writeError("write", err)
	}
	return nil
}

// Flush completes pending writes. Writes go straight to the file, so this
// only reports whether the sink is still usable.
func (w *RotatingSink) Flush() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return w.writeError("flush", ErrClosed)
	}
	return nil
}

// Sync commits the current file to stable storage.
func (w *RotatingSink) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return w.writeError("sync", ErrClosed)
	}
	if w.f == nil {
		return nil
	}
	if err := w.f.Sync(); err != nil {
		return w.writeError("sync", err)
	}
	return nil
}

// Reopen closes the current file and opens the path again.
// Between closing and opening, writes are discarded. If the file cannot
// be opened, an OpenError is returned and writes keep being discarded
// until a later Reopen succeeds.
// An error closing the old file does not prevent the reopen; it is
// returned as a WriteError once the new file is in place.
func (w *RotatingSink) Reopen() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return maskAny(ErrClosed)
	}

	var closeErr error
	if w.f != nil {
		closeErr = w.f.Close()
		w.f = nil
	}
	w.out = io.Discard

	f, err := w.open()
	if err != nil {
		return maskAny(err)
	}
	w.f = f
	w.out = f

	if closeErr != nil {
		return w.writeError("close", closeErr)
	}
	return nil
}

// Close closes the current file. The sink cannot be used afterwards.
func (w *RotatingSink) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return w.writeError("close", ErrClosed)
	}
	w.closed = true
	w.out = io.Discard

	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	if err := f.Close(); err != nil {
		return w.writeError("close", err)
	}
	return nil
}
