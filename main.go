// SPDX-License-Identifier: MPL-2.0

// Command textkit runs the streaming text utilities.
package main

import cmd "github.com/invowk/textkit/cmd/textkit"

func main() {
	cmd.Execute()
}
