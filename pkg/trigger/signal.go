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
	"os/signal"

	"github.com/rs/zerolog"
)

// DefaultSignalName is the name of the signal that requests a reopen
// when nothing else is configured.
const DefaultSignalName = "ALRM"

// SignalTrigger reopens a target each time the process receives a signal.
type SignalTrigger struct {
	log  zerolog.Logger
	r    Reopener
	opts Options
	sig  os.Signal
	ch   chan os.Signal
}

// NewSignalTrigger subscribes to the given signal right away, so signals
// delivered before Run is called are not lost.
func NewSignalTrigger(log zerolog.Logger, r Reopener, sig os.Signal, opts Options) *SignalTrigger {
	t := &SignalTrigger{
		log:  log,
		r:    r,
		opts: opts,
		sig:  sig,
		ch:   make(chan os.Signal, 1),
	}
	signal.Notify(t.ch, sig)
	return t
}

// Run handles signals one at a time until the given context is canceled.
func (t *SignalTrigger) Run(ctx context.Context) {
	defer signal.Stop(t.ch)

	t.log.Debug().Str("signal", t.sig.String()).Msg("Listening for rotation signal")
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-t.ch:
			t.log.Info().Str("signal", s.String()).Msg("Received rotation signal")
			t.opts.reopen(t.log, t.r, "signal")
		}
	}
}
