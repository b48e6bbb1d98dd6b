package cmd

import (
	"fmt"

	"github.com/nbup/nbup/internal/session"
	"github.com/spf13/cobra"
)

var attachDir string

// attacher is implemented by session backends that can hand the current
// terminal over to a session (tmux can; a plain Sessions backend need not).
type attacher interface {
	Attach(id session.SessionID) error
}

var attachCmd = &cobra.Command{
	Use:   "attach <project>",
	Short: "Attach the current terminal to the project's session",
	Long: `Attach to the project's tmux session to watch the notebook server's
output directly. Detach with the usual tmux binding (prefix + d); the
session and the server keep running.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttach,
}

func init() {
	attachCmd.Flags().StringVar(&attachDir, "dir", "", "Project working directory (default: current directory)")
	rootCmd.AddCommand(attachCmd)
}

func runAttach(cmd *cobra.Command, args []string) error {
	project := args[0]

	workDir, err := resolveWorkDir(attachDir)
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	name := session.ProjectSessionName(project, workDir)
	sessions := newSessions()

	exists, err := sessions.Exists(session.SessionID(name))
	if err != nil {
		return fmt.Errorf("checking session %s: %w", name, err)
	}
	if !exists {
		return fmt.Errorf("no session for %s; start one with: nbup up %s", project, project)
	}

	a, ok := sessions.(attacher)
	if !ok {
		return fmt.Errorf("session backend does not support attaching")
	}
	return a.Attach(session.SessionID(name))
}
