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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToLevel(t *testing.T) {
	for in, out := range map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"Warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
	} {
		t.Run(in, func(t *testing.T) {
			l, err := stringToLevel(in)
			require.NoError(t, err)
			assert.Equal(t, out, l)
		})
	}

	_, err := stringToLevel("verbose")
	require.Error(t, err)
}

func TestService_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logsink.log")
	s, err := NewService("info", LoggerOutputOptions{JSON: true, LogFile: path})
	require.NoError(t, err)

	log := s.MustGetLogger("main")
	log.Debug().Msg("hidden")
	log.Info().Msg("before")

	require.NoError(t, os.Rename(path, path+".1"))
	require.NoError(t, s.RotateLogFiles())
	log.Info().Msg("after")

	s.MustSetLevel("verbose", "debug")
	verbose := s.MustGetLogger("verbose")
	verbose.Debug().Msg("shown")
	require.NoError(t, s.Close())

	before := readFile(t, path+".1")
	assert.Contains(t, before, `"message":"before"`)
	assert.Contains(t, before, `"component":"main"`)
	assert.NotContains(t, before, "hidden")

	after := readFile(t, path)
	assert.Contains(t, after, `"message":"after"`)
	assert.Contains(t, after, `"message":"shown"`)
	assert.NotContains(t, after, "before")
}

func TestService_NoLogFile(t *testing.T) {
	s, err := NewService("info", LoggerOutputOptions{})
	require.NoError(t, err)
	assert.NoError(t, s.RotateLogFiles())
	assert.NoError(t, s.Close())

	_, err = NewService("loud", LoggerOutputOptions{})
	assert.Error(t, err)
}
