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
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func readLines(t *testing.T, path string) []string {
	content := strings.TrimSuffix(readFile(t, path), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func TestRotatingSink_WriteAndReopen(t *testing.T) {
	t.Run("same-path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x.log")
		w, err := New(path)
		require.NoError(t, err)

		_, err = w.Write([]byte("a\n"))
		require.NoError(t, err)
		require.NoError(t, w.Reopen())
		_, err = w.Write([]byte("b\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, "a\nb\n", readFile(t, path))
	})

	t.Run("external-rename", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x.log")
		w, err := New(path)
		require.NoError(t, err)

		_, err = w.Write([]byte("a\n"))
		require.NoError(t, err)
		require.NoError(t, os.Rename(path, path+".1"))
		require.NoError(t, w.Reopen())
		_, err = w.Write([]byte("b\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, "a\n", readFile(t, path+".1"))
		assert.Equal(t, "b\n", readFile(t, path))
	})

	t.Run("appends-to-existing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x.log")
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

		w, err := New(path)
		require.NoError(t, err)
		_, err = w.WriteString("new")
		require.NoError(t, err)
		require.NoError(t, w.WriteByte('\n'))
		require.NoError(t, w.Flush())
		require.NoError(t, w.Sync())
		require.NoError(t, w.Close())

		assert.Equal(t, "old\nnew\n", readFile(t, path))
	})

	t.Run("file-mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x.log")
		w, err := New(path, WithFileMode(0600))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0), info.Mode().Perm()&0077)
	})
}

func TestRotatingSink_OpenFailures(t *testing.T) {
	t.Run("missing-parent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "x.log")
		w, err := New(path)
		require.Error(t, err)
		assert.Nil(t, w)
		assert.True(t, IsOpenError(err))
		assert.True(t, os.IsNotExist(errors.Cause(err)))
	})

	t.Run("directory-deleted-before-reopen", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")
		require.NoError(t, os.Mkdir(dir, 0755))
		path := filepath.Join(dir, "x.log")

		w, err := New(path)
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(dir))

		err = w.Reopen()
		require.Error(t, err)
		assert.True(t, IsOpenError(err))

		// Writes during the failure window are dropped, not reported.
		n, err := w.Write([]byte("lost\n"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		require.NoError(t, w.WriteByte('x'))
		require.NoError(t, w.Sync())

		// A later successful reopen resumes writing.
		require.NoError(t, os.Mkdir(dir, 0755))
		require.NoError(t, w.Reopen())
		_, err = w.Write([]byte("found\n"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, "found\n", readFile(t, path))
	})
}

func TestRotatingSink_Closed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log")
	w, err := New(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("a"))
	require.Error(t, err)
	assert.True(t, IsWriteError(err))
	assert.True(t, IsClosed(err))

	_, err = w.WriteString("a")
	assert.True(t, IsWriteError(err))
	assert.True(t, IsWriteError(w.WriteByte('a')))
	assert.True(t, IsWriteError(w.Flush()))
	assert.True(t, IsWriteError(w.Sync()))
	assert.True(t, IsClosed(w.Reopen()))
	assert.True(t, IsClosed(w.Close()))

	assert.Equal(t, "", readFile(t, path))
	assert.Equal(t, "logging.RotatingSink -> "+path, w.String())
}

func TestRotatingSink_ConcurrentWritersAndReopen(t *testing.T) {
	const (
		writers        = 16
		linesPerWriter = 500
	)
	path := filepath.Join(t.TempDir(), "x.log")
	w, err := New(path)
	require.NoError(t, err)

	var halfway, done sync.WaitGroup
	halfway.Add(writers)
	done.Add(writers)
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func(id int) {
			defer done.Done()
			for j := 0; j < linesPerWriter; j++ {
				line := fmt.Sprintf("writer-%02d line-%04d %s\n", id, j, strings.Repeat("x", id))
				if _, err := w.Write([]byte(line)); err != nil {
					errs <- err
					return
				}
				if j == linesPerWriter/2 {
					halfway.Done()
				}
			}
		}(i)
	}

	halfway.Wait()
	require.NoError(t, os.Rename(path, path+".1"))
	require.NoError(t, w.Reopen())
	done.Wait()
	require.NoError(t, w.Close())
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	before := readLines(t, path+".1")
	after := readLines(t, path)
	assert.GreaterOrEqual(t, len(before), writers*linesPerWriter/2)

	var expected []string
	for i := 0; i < writers; i++ {
		for j := 0; j < linesPerWriter; j++ {
			expected = append(expected, fmt.Sprintf("writer-%02d line-%04d %s", i, j, strings.Repeat("x", i)))
		}
	}
	actual := append(append([]string{}, before...), after...)
	sort.Strings(expected)
	sort.Strings(actual)
	assert.Equal(t, expected, actual)

	// Per writer, the old file holds a prefix of its lines and the new
	// file the rest, both in write order. Everything up to the halfway
	// mark was written before Reopen started.
	beforeIdx := lineIndexes(t, before, writers)
	afterIdx := lineIndexes(t, after, writers)
	for i := 0; i < writers; i++ {
		split := len(beforeIdx[i])
		assert.Greater(t, split, linesPerWriter/2, "writer %d", i)
		for j, idx := range beforeIdx[i] {
			require.Equal(t, j, idx, "writer %d in %s.1", i, path)
		}
		for j, idx := range afterIdx[i] {
			require.Equal(t, split+j, idx, "writer %d in %s", i, path)
		}
	}
}

// lineIndexes returns the line numbers found in lines, per writer, in file order.
func lineIndexes(t *testing.T, lines []string, writers int) [][]int {
	result := make([][]int, writers)
	for _, line := range lines {
		var id, idx int
		_, err := fmt.Sscanf(line, "writer-%d line-%d", &id, &idx)
		require.NoError(t, err, line)
		require.True(t, id >= 0 && id < writers, line)
		result[id] = append(result[id], idx)
	}
	return result
}
