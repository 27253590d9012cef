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
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// --logfile.path missing
func showLogFilePathMissingHelp() {
	showFatalHelp(
		"No log file given.",
		"",
		"How to solve this:",
		"1 - Add a commandline argument:",
		"",
		"    `logsink ... --logfile.path=<path of the file to write to>`",
		"",
		"2 - Or add it to the configuration file:",
		"",
		"    `[logfile]`",
		"    `path = <path of the file to write to>`",
		"",
	)
}

// --logfile.mode is not an octal permission.
func showInvalidFileModeHelp(mode string) {
	showFatalHelp(
		fmt.Sprintf("Invalid file mode `%s`.", mode),
		"",
		"How to solve this:",
		"1 - Use octal permissions:",
		"",
		"    `logsink ... --logfile.mode=0640`",
		"",
	)
}

// --rotate.signal names a signal we don't know.
func showUnknownSignalHelp(name string) {
	showFatalHelp(
		fmt.Sprintf("Unknown rotation signal `%s`.", name),
		"",
		"How to solve this:",
		"1 - Use a signal name such as ALRM, HUP, USR1 or USR2:",
		"",
		"    `logsink ... --rotate.signal=HUP`",
		"",
		"2 - Disable the signal and watch the file instead:",
		"",
		"    `logsink ... --rotate.signal= --rotate.watch`",
		"",
	)
}

// `logsink reopen` without a process to signal.
func showReopenTargetMissingHelp() {
	showFatalHelp(
		"Cannot find the logsink process to reopen.",
		"",
		"How to solve this:",
		"1 - Pass the pid file the running logsink was started with:",
		"",
		"    `logsink reopen --pid-file=<path>`",
		"",
		"2 - Or pass its process ID:",
		"",
		"    `logsink reopen --pid=<process ID>`",
		"",
	)
}

// showFatalHelp logs a title and prints additional usages
// underneeth and the exit with code 1.
// Backticks in the lines are colored yellow.
func showFatalHelp(title string, lines ...string) {
	log.Error().Msg(highlight(title))
	content := strings.Join(lines, "\n")
	fmt.Println(highlight(content))
	os.Exit(1)
}

func highlight(content string) string {
	parts := strings.Split(content, "`")
	for i, p := range parts {
		if i%2 == 1 {
			parts[i] = color.YellowString(p)
		}
	}
	return strings.Join(parts, "")
}
