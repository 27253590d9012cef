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
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arangodb-helper/logsink/pkg/logging"
	"github.com/arangodb-helper/logsink/pkg/redirect"
	"github.com/arangodb-helper/logsink/pkg/trigger"
)

// Configuration data with defaults:

const (
	projectName           = "logsink"
	defaultConfigFilePath = "logsink.conf"
	defaultLogFileMode    = "0644"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
	cmdMain        = &cobra.Command{
		Use:   projectName,
		Short: "Copy standard input into a log file that can be rotated without a restart",
		Long: "Copy standard input into a log file, one line per write.\n" +
			"The file is reopened (at the same path) when the rotation signal is received\n" +
			"or, with --rotate.watch, when the file is renamed or removed by another process.",
		Run: cmdMainRun,
	}
	log            zerolog.Logger
	logService     logging.Service
	configFilePath string

	maskAny = errors.WithStack
)

func init() {
	log, _ = logging.NewRootLogger(logging.LoggerOutputOptions{Stderr: true})

	cmdMain.PersistentPreRun = cmdMainPreRun

	f := cmdMain.Flags()
	pf := cmdMain.PersistentFlags()

	pf.StringVarP(&configFilePath, "configuration", "c", defaultConfigFilePath, "Configuration file path (use `none` to ignore)")

	f.StringVar(&opts.logfile.path, "logfile.path", "", "Path of the file standard input is written to")
	f.StringVar(&opts.logfile.mode, "logfile.mode", defaultLogFileMode, "Permissions (octal) used when the log file is created")

	pf.StringVar(&opts.rotate.signal, "rotate.signal", trigger.DefaultSignalName, "Name of the signal that makes logsink reopen its log file (empty to disable)")
	f.BoolVar(&opts.rotate.watch, "rotate.watch", false, "Reopen the log file when it is renamed or removed by another process")

	f.BoolVar(&opts.redirect, "redirect", false, "Write our own standard output and error into the log file as well")
	pf.StringVar(&opts.pidFile, "pid-file", "", "Path of a file holding the process ID of logsink")

	pf.StringVar(&opts.log.level, "log.level", "info", "Level of our own log messages (debug|info|warning|error)")
	pf.BoolVar(&opts.log.json, "log.json", false, "Output our own log messages as JSON")
	pf.BoolVar(&opts.log.color, "log.color", !color.NoColor, "Colorize our own log output on the console")
	pf.BoolVar(&opts.log.console, "log.console", true, "Send our own log output to the console (stderr)")
	pf.StringVar(&opts.log.file, "log.file", "", "Custom file for our own log output, reopened together with the log file")

	cmdMain.SetGlobalNormalizationFunc(normalizeOptionNames)
}

var (
	obsoleteOptionNameMap = map[string]string{
		"logfile":   "logfile.path",
		"pidfile":   "pid-file",
		"log-level": "log.level",
	}
)

// normalizeOptionNames provides support for short and obsolete option names.
func normalizeOptionNames(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if newName, found := obsoleteOptionNameMap[name]; found {
		name = newName
	}
	return pflag.NormalizedName(name)
}

// handleSignal listens for termination signals and stops this process on termination.
func handleSignal(sigChannel chan os.Signal, cancel context.CancelFunc) {
	signalCount := 0
	for s := range sigChannel {
		signalCount++
		log.Info().Str("signal", s.String()).Msg("Received signal")
		if signalCount > 1 {
			os.Exit(1)
		}
		cancel()
	}
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		os.Exit(1)
	}
}

// cmdMainPreRun loads the configuration file and sets up logging for all commands.
func cmdMainPreRun(cmd *cobra.Command, args []string) {
	loadFlagValuesFromConfig(configFilePath, cmd.Flags(), cmdMain.Flags(), cmdMain.PersistentFlags())
	configureLogging()
}

func cmdMainRun(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		log.Fatal().Msgf("Expected no arguments, got %q", args)
	}
	if opts.logfile.path == "" {
		showLogFilePathMissingHelp()
	}
	path := mustExpand(opts.logfile.path)
	mode, err := parseFileMode(opts.logfile.mode)
	if err != nil {
		showInvalidFileModeHelp(opts.logfile.mode)
	}

	sink, err := logging.New(path, logging.WithFileMode(mode))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open log file")
	}
	log.Info().Msgf("Starting %s version %s, build %s, writing to %s", projectName, projectVersion, projectBuild, path)

	// Interrupt signal:
	sigChannel := make(chan os.Signal, 1)
	rootCtx, cancel := context.WithCancel(context.Background())
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	go handleSignal(sigChannel, cancel)

	if opts.pidFile != "" {
		pidFile := mustExpand(opts.pidFile)
		if err := writePidFile(pidFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to write pid file")
		}
		defer os.Remove(pidFile)
	}

	// Redirect before the triggers start so a failing reopen can be
	// reported on the stderr we had before.
	var rd *redirect.Redirection
	var triggerOpts trigger.Options
	if opts.redirect {
		if rd, err = redirect.Std(sink); err != nil {
			log.Fatal().Err(err).Msg("Failed to redirect standard output")
		}
		triggerOpts.OnFailure = reopenFailureHandler(log, rd.Original(1), os.Exit)
	}

	// Reopen our own log file together with the output file.
	reopener := newReopener(sink, trigger.ReopenFunc(logService.RotateLogFiles))
	triggerCtx, stopTriggers := context.WithCancel(rootCtx)
	var wg sync.WaitGroup
	startTriggers(triggerCtx, &wg, path, reopener, triggerOpts)

	// Copy until stdin is exhausted or we're interrupted.
	copyDone := make(chan error, 1)
	go func() {
		copyDone <- copyLines(os.Stdin, sink, log)
	}()
	select {
	case err := <-copyDone:
		if err != nil {
			log.Error().Err(err).Msg("Failed to read standard input")
		}
	case <-rootCtx.Done():
	}

	stopTriggers()
	wg.Wait()
	if rd != nil {
		if err := rd.Restore(); err != nil {
			log.Warn().Err(err).Msg("Failed to write redirected output")
		}
	}
	if err := sink.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close log file")
	}
	log.Info().Msg("Stopped")
	if err := logService.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close own log file")
	}
	cancel()
}

// configureLogging creates the log service according to command line arguments.
func configureLogging() {
	var err error
	logService, err = logging.NewService(opts.log.level, logging.LoggerOutputOptions{
		Color:   opts.log.color,
		JSON:    opts.log.json,
		Stderr:  opts.log.console,
		LogFile: mustExpand(opts.log.file),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize log service")
	}
	log = logService.MustGetLogger(projectName)
}

// copyLines copies r into w, one line per Write call, until r is exhausted.
// Write failures are reported once and then dropped until a write succeeds
// again (typically after a reopen).
func copyLines(r io.Reader, w io.Writer, log zerolog.Logger) error {
	br := bufio.NewReader(r)
	failing := false
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := w.Write(line); werr != nil {
				if !failing {
					log.Error().Err(werr).Msg("Failed to write to log file")
				}
				failing = true
			} else if failing {
				log.Info().Msg("Writing to log file again")
				failing = false
			}
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return maskAny(err)
		}
	}
}

// parseFileMode parses an octal permission string such as "0640".
func parseFileMode(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 8, 32)
	if err != nil {
		return 0, maskAny(err)
	}
	if v > 0777 {
		return 0, errors.Errorf("file mode %s out of range", s)
	}
	return os.FileMode(v), nil
}

// writePidFile writes the ID of this process into the given file.
func writePidFile(path string) error {
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644); err != nil {
		return errors.Wrapf(err, "while writing %s", path)
	}
	return nil
}

// readPidFile reads a process ID written by writePidFile.
func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "while reading %s", path)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, errors.Errorf("invalid process ID in %s", path)
	}
	return pid, nil
}

// mustExpand performs a homedir.Expand and fails on errors.
func mustExpand(s string) string {
	result, err := homedir.Expand(s)
	if err != nil {
		log.Fatal().Err(err).Msgf("Cannot expand '%s'", s)
	}
	return result
}
