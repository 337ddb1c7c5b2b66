// SPDX-License-Identifier: MPL-2.0

package main

import cmd "jsmod-cli/cmd/jsmod"

func main() {
	cmd.Execute()
}
