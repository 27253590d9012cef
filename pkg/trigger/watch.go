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

package trigger

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// FileWatcher reopens a target when its file is renamed or removed by
// another process, or when another file is moved onto its path. It serves
// rotation tools that cannot deliver a signal.
type FileWatcher struct {
	log     zerolog.Logger
	r       Reopener
	opts    Options
	path    string
	name    string
	current os.FileInfo // file at path as of the last (re)open, nil if missing
	watcher *fsnotify.Watcher
}

// NewFileWatcher starts watching the directory that holds path.
// The directory is watched instead of the file, since the file itself
// is replaced on every rotation.
func NewFileWatcher(log zerolog.Logger, path string, r Reopener, opts Options) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, maskAny(err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "while creating file watcher")
	}
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "while watching %s", dir)
	}
	w := &FileWatcher{
		log:     log,
		r:       r,
		opts:    opts,
		path:    abs,
		name:    filepath.Base(abs),
		watcher: watcher,
	}
	w.current, _ = os.Stat(abs)
	return w, nil
}

// replaced returns true when the file at our path is no longer the one
// seen at the last (re)open.
func (w *FileWatcher) replaced() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	return w.current == nil || !os.SameFile(w.current, info)
}

func (w *FileWatcher) reopen(ev fsnotify.Event) {
	w.log.Info().Str("event", ev.Op.String()).Str("file", ev.Name).Msg("Log file moved away or replaced")
	w.opts.reopen(w.log, w.r, "watch")
	w.current, _ = os.Stat(w.path)
}

// Run handles file events until the given context is canceled or the
// watcher is closed.
func (w *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			switch {
			case ev.Has(fsnotify.Rename), ev.Has(fsnotify.Remove):
				w.reopen(ev)
			case ev.Has(fsnotify.Create) && w.replaced():
				// Another file was moved onto our path; the old one is gone.
				w.reopen(ev)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("File watcher reported an error")
		}
	}
}

// Close stops watching.
func (w *FileWatcher) Close() error {
	return maskAny(w.watcher.Close())
}
