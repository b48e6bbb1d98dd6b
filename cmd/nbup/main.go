// nbup is a CLI for launching and supervising notebook servers in
// persistent tmux sessions.
package main

import (
	"os"

	"github.com/nbup/nbup/internal/cmd"
)

// main delegates all command parsing and execution to cmd.Execute() and
// exits with its return code.
func main() {
	os.Exit(cmd.Execute())
}
