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

package redirect

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

var (
	maskAny = errors.WithStack

	// ErrUnsupported is returned when descriptors cannot be redirected
	// on this platform.
	ErrUnsupported = errors.New("redirecting file descriptors is not supported on this platform")
)

// Redirection routes everything written to a set of files (typically
// stdout and stderr) into a writer, until Restore is called.
type Redirection struct {
	restore   func() error
	originals []*os.File
	done      chan struct{}
	err       error
}

// Std redirects the process's stdout and stderr into dst.
func Std(dst io.Writer) (*Redirection, error) {
	return Files(dst, os.Stdout, os.Stderr)
}

// Files redirects the descriptors of the given files into dst.
// Each line read from the files is passed to dst with a single Write call.
func Files(dst io.Writer, files ...*os.File) (*Redirection, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, maskAny(err)
	}
	restore, originals, err := redirectFiles(w, files)
	// The duplicated descriptors keep the write end open.
	w.Close()
	if err != nil {
		r.Close()
		return nil, maskAny(err)
	}
	rd := &Redirection{
		restore:   restore,
		originals: originals,
		done:      make(chan struct{}),
	}
	go rd.pump(r, dst)
	return rd, nil
}

// Original returns a file that writes to where files[i] (as passed to
// Files) wrote before it was redirected. Use it for output that must not
// end up in the destination, such as a report that the destination
// failed. The file is closed by Restore.
func (rd *Redirection) Original(i int) *os.File {
	return rd.originals[i]
}

// pump copies lines from r into dst until all write ends are closed.
func (rd *Redirection) pump(r *os.File, dst io.Writer) {
	defer close(rd.done)
	defer r.Close()

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := dst.Write(line); werr != nil && rd.err == nil {
				rd.err = werr
			}
		}
		if err != nil {
			if err != io.EOF && rd.err == nil {
				rd.err = err
			}
			return
		}
	}
}

// Restore puts the original descriptors back and waits until all output
// written so far has been passed on. It returns the first error the
// destination reported, if any.
func (rd *Redirection) Restore() error {
	if err := rd.restore(); err != nil {
		return maskAny(err)
	}
	<-rd.done
	return maskAny(rd.err)
}
