// SPDX-License-Identifier: MPL-2.0

package config

import "testing"

// overrideConfigDir points ConfigDir at dir until the test finishes.
// Tests calling it must not run in parallel.
func overrideConfigDir(t *testing.T, dir string) {
	t.Helper()
	configDirOverride = dir
	t.Cleanup(func() { configDirOverride = "" })
}
