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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher(t *testing.T) {
	sink, path := newSink(t)

	reopened := make(chan struct{}, 1)
	watcher, err := NewFileWatcher(zerolog.Nop(), path, sink, Options{
		OnReopen: func() {
			select {
			case reopened <- struct{}{}:
			default:
			}
		},
		OnFailure: func(err error) {
			t.Errorf("Unexpected reopen failure: %v", err)
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		watcher.Run(ctx)
	}()

	_, err = sink.Write([]byte("a\n"))
	require.NoError(t, err)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(path+".other", []byte("x"), 0644))
	require.NoError(t, os.Remove(path+".other"))

	require.NoError(t, os.Rename(path, path+".1"))
	waitFor(t, reopened, "reopen after rename")

	_, err = sink.Write([]byte("b\n"))
	require.NoError(t, err)

	cancel()
	waitFor(t, done, "file watcher to stop")
	require.NoError(t, watcher.Close())
	require.NoError(t, sink.Close())

	assert.Equal(t, "a\n", readFile(t, path+".1"))
	assert.Equal(t, "b\n", readFile(t, path))
}

func TestFileWatcher_Replaced(t *testing.T) {
	sink, path := newSink(t)

	reopened := make(chan struct{}, 1)
	watcher, err := NewFileWatcher(zerolog.Nop(), path, sink, Options{
		OnReopen: func() {
			select {
			case reopened <- struct{}{}:
			default:
			}
		},
		OnFailure: func(err error) {
			t.Errorf("Unexpected reopen failure: %v", err)
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		watcher.Run(ctx)
	}()

	_, err = sink.Write([]byte("a\n"))
	require.NoError(t, err)

	// Move a new file onto the path, the old inode is unlinked.
	require.NoError(t, os.WriteFile(path+".new", []byte("fresh\n"), 0644))
	require.NoError(t, os.Rename(path+".new", path))
	waitFor(t, reopened, "reopen after replace")

	_, err = sink.Write([]byte("b\n"))
	require.NoError(t, err)

	cancel()
	waitFor(t, done, "file watcher to stop")
	require.NoError(t, watcher.Close())
	require.NoError(t, sink.Close())

	assert.Equal(t, "fresh\nb\n", readFile(t, path))
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(zerolog.Nop(), "/nonexistent-logsink-dir/x.log", ReopenFunc(func() error { return nil }), Options{})
	assert.Error(t, err)
}
