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

type logsinkOptions struct {
	logfile struct {
		path string
		mode string // Octal permissions used when creating the file
	}
	rotate struct {
		signal string // Name of the signal that requests a reopen (empty disables)
		watch  bool   // Reopen when the file is renamed or removed
	}
	log struct {
		level   string
		json    bool
		color   bool
		console bool
		file    string // Custom file for our own log output (default "")
	}
	redirect bool // Route our own stdout & stderr into the log file
	pidFile  string
}

var opts logsinkOptions
