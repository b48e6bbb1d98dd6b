// Package cmd implements the nbup CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/nbup/nbup/internal/logging"
	"github.com/nbup/nbup/internal/style"
	"github.com/spf13/cobra"
)

// Version is the CLI version reported by --version.
const Version = "0.2.0"

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "nbup",
	Short: "Launch and supervise a notebook server in a persistent tmux session",
	Long: `nbup launches a Jupyter notebook server for a project inside a named,
detached tmux session, waits for the server to report readiness, and prints
a browser URL with the connection token.

The session outlives the launching shell: log out and the notebook keeps
running. Re-running "nbup up" for the same project replaces the session.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "more output, repeat for even more")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", style.Error.Render("Error:"), err)
		return 1
	}
	return 0
}
