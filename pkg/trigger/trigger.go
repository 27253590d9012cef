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
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/arangodb-helper/logsink/pkg/logging"
)

var (
	maskAny = errors.WithStack
)

// Reopener is implemented by writers that can re-open their target file.
type Reopener interface {
	Reopen() error
}

// ReopenFunc adapts a function to a Reopener.
type ReopenFunc func() error

// Reopen calls f.
func (f ReopenFunc) Reopen() error {
	return f()
}

// Options tune how a trigger reacts to the outcome of a reopen.
type Options struct {
	// OnFailure is called when the target cannot be opened again.
	// When nil, the failure is logged and the process exits with code 1.
	OnFailure func(err error)
	// OnReopen is called after each reopen that installed a new file.
	OnReopen func()
}

// reopen calls Reopen on r and dispatches the result.
func (o Options) reopen(log zerolog.Logger, r Reopener, reason string) {
	err := r.Reopen()
	switch {
	case err == nil:
		log.Debug().Str("reason", reason).Msg("Reopened log file")
	case logging.IsClosed(err):
		log.Debug().Str("reason", reason).Msg("Log file already closed, ignoring rotation")
		return
	case logging.IsOpenError(err):
		if o.OnFailure != nil {
			o.OnFailure(err)
		} else {
			exitOnFailure(log, err)
		}
		return
	default:
		// The new file is in place; only the old one failed to close.
		log.Warn().Err(err).Str("reason", reason).Msg("Reopened log file, closing previous file failed")
	}
	if o.OnReopen != nil {
		o.OnReopen()
	}
}

// exitOnFailure terminates the process. Continuing without a writable
// log file would silently drop all further output.
func exitOnFailure(log zerolog.Logger, err error) {
	log.WithLevel(zerolog.FatalLevel).Err(err).Msg("Failed to reopen log file")
	os.Exit(1)
}
