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

package main

import (
	"context"
	goerrors "errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arangodb-helper/logsink/pkg/logging"
	"github.com/arangodb-helper/logsink/pkg/trigger"
)

// newReopener returns the reopener the rotation triggers call. It reopens
// the output sink and then our own log file (own). The own log file is
// rotated even when closing the old output handle failed; a sink that
// cannot be opened again stops right there.
func newReopener(sink, own trigger.Reopener) trigger.ReopenFunc {
	return func() error {
		err := sink.Reopen()
		if logging.IsOpenError(err) || logging.IsClosed(err) {
			return maskAny(err)
		}
		if ownErr := own.Reopen(); ownErr != nil {
			if err == nil {
				return maskAny(ownErr)
			}
			return maskAny(goerrors.Join(err, ownErr))
		}
		return maskAny(err)
	}
}

// reopenFailureHandler reports a failed reopen on w and then calls exit.
// w must not lead back into the sink, since the sink discards everything
// once a reopen failed.
func reopenFailureHandler(log zerolog.Logger, w io.Writer, exit func(int)) func(error) {
	return func(err error) {
		direct := zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: "2006-01-02T15:04:05-07:00",
		}).With().Timestamp().Logger()
		direct.WithLevel(zerolog.FatalLevel).Err(err).Msg("Failed to reopen log file")
		// Our own log file (if any) gets it too.
		log.WithLevel(zerolog.FatalLevel).Err(err).Msg("Failed to reopen log file")
		exit(1)
	}
}

// startTriggers starts the configured rotation triggers. They stop when
// the given context is canceled.
func startTriggers(ctx context.Context, wg *sync.WaitGroup, path string, r trigger.Reopener, triggerOpts trigger.Options) {
	if name := opts.rotate.signal; name != "" {
		if !trigger.SignalsSupported() {
			log.Warn().Str("signal", name).Msg("Signals are not supported on this platform, use --rotate.watch to reopen the log file")
		} else if sig, ok := trigger.RotationSignal(name); !ok {
			showUnknownSignalHelp(name)
		} else {
			t := trigger.NewSignalTrigger(logService.MustGetLogger("trigger.signal"), r, sig, triggerOpts)
			wg.Add(1)
			go func() {
				defer wg.Done()
				t.Run(ctx)
			}()
		}
	}
	if opts.rotate.watch {
		w, err := trigger.NewFileWatcher(logService.MustGetLogger("trigger.watch"), path, r, triggerOpts)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to watch log file")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer w.Close()
			w.Run(ctx)
		}()
	}
}
