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
	"os"

	"github.com/spf13/cobra"

	"github.com/arangodb-helper/logsink/pkg/trigger"
)

var (
	cmdReopen = &cobra.Command{
		Use:   "reopen",
		Short: "Ask a running logsink to reopen its log file",
		Run:   cmdReopenRun,
	}
	reopenOptions struct {
		pid int
	}
)

func init() {
	f := cmdReopen.Flags()
	f.IntVar(&reopenOptions.pid, "pid", 0, "Process ID of the logsink to signal (default taken from --pid-file)")

	cmdMain.AddCommand(cmdReopen)
}

func cmdReopenRun(cmd *cobra.Command, args []string) {
	if !trigger.SignalsSupported() {
		log.Fatal().Msg("Signals are not supported on this platform")
	}
	sig, ok := trigger.RotationSignal(opts.rotate.signal)
	if !ok {
		showUnknownSignalHelp(opts.rotate.signal)
	}

	pid := reopenOptions.pid
	if pid == 0 {
		if opts.pidFile == "" {
			showReopenTargetMissingHelp()
		}
		var err error
		pid, err = readPidFile(mustExpand(opts.pidFile))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to find logsink process")
		}
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		log.Fatal().Err(err).Int("pid", pid).Msg("Failed to find logsink process")
	}
	if err := proc.Signal(sig); err != nil {
		log.Fatal().Err(err).Int("pid", pid).Msg("Failed to signal logsink process")
	}
	log.Info().Int("pid", pid).Str("signal", sig.String()).Msg("Requested reopen of log file")
}
