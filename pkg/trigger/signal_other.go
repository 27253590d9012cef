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

//go:build !unix

package trigger

import "os"

// SignalsSupported reports whether a signal can be used to request a reopen.
func SignalsSupported() bool {
	return false
}

// RotationSignal always returns false: this platform has no signal that
// can request a reopen. Use Reopen directly or a FileWatcher.
func RotationSignal(name string) (os.Signal, bool) {
	return nil, false
}
