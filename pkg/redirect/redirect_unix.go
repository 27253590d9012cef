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

//go:build unix

package redirect

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// redirectFiles points the descriptors of files at w. It returns a
// function that undoes it, and for every file a duplicate of its
// original descriptor.
func redirectFiles(w *os.File, files []*os.File) (func() error, []*os.File, error) {
	var fds []int
	var originals []*os.File

	restore := func() error {
		var result error
		for i, orig := range originals {
			if err := dup2(int(orig.Fd()), fds[i]); err != nil && result == nil {
				result = errors.Wrapf(err, "while restoring descriptor %d", fds[i])
			}
			orig.Close()
		}
		fds, originals = nil, nil
		return result
	}

	for _, f := range files {
		fd := int(f.Fd())
		orig, err := unix.Dup(fd)
		if err != nil {
			restore()
			return nil, nil, errors.Wrapf(err, "while saving descriptor %d", fd)
		}
		unix.CloseOnExec(orig)
		fds = append(fds, fd)
		originals = append(originals, os.NewFile(uintptr(orig), f.Name()))
		if err := dup2(int(w.Fd()), fd); err != nil {
			restore()
			return nil, nil, errors.Wrapf(err, "while redirecting descriptor %d", fd)
		}
	}
	return restore, append([]*os.File(nil), originals...), nil
}
