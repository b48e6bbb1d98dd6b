package cmd

import (
	"fmt"

	"github.com/nbup/nbup/internal/session"
	"github.com/nbup/nbup/internal/style"
	"github.com/spf13/cobra"
)

var stopDir string

var stopCmd = &cobra.Command{
	Use:   "stop <project>",
	Short: "Stop the project's notebook session",
	Long: `Kill the project's tmux session and the notebook server inside it.
Stopping a project that has no session is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopDir, "dir", "", "Project working directory (default: current directory)")
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	project := args[0]

	workDir, err := resolveWorkDir(stopDir)
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
		fmt.Printf("%s No session for %s\n", style.Dim.Render("·"), project)
		return nil
	}

	if err := sessions.Stop(session.SessionID(name)); err != nil {
		return fmt.Errorf("stopping session %s: %w", name, err)
	}
	fmt.Printf("%s Stopped %s\n", style.Success.Render("✓"), style.Bold.Render(name))
	return nil
}
