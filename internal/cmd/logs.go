package cmd

import (
	"fmt"

	"github.com/nbup/nbup/internal/diagnose"
	"github.com/nbup/nbup/internal/session"
	"github.com/spf13/cobra"
)

// Logs command flags
var (
	logsDir   string
	logsLines int
	logsAll   bool
)

// allCapturer is implemented by session backends that can return the full
// scrollback history, not just the last N lines.
type allCapturer interface {
	CaptureAll(id session.SessionID) (string, error)
}

var logsCmd = &cobra.Command{
	Use:   "logs <project>",
	Short: "Show recent output from the project's session",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().StringVar(&logsDir, "dir", "", "Project working directory (default: current directory)")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", diagnose.DefaultCaptureLines, "Number of lines to show")
	logsCmd.Flags().BoolVar(&logsAll, "all", false, "Show the entire scrollback history")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	project := args[0]

	workDir, err := resolveWorkDir(logsDir)
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	name := session.ProjectSessionName(project, workDir)
	sessions := newSessions()

	var out string
	if logsAll {
		c, ok := sessions.(allCapturer)
		if !ok {
			return fmt.Errorf("session backend does not support full history")
		}
		out, err = c.CaptureAll(session.SessionID(name))
	} else {
		out, err = sessions.Capture(session.SessionID(name), logsLines)
	}
	if err != nil {
		return fmt.Errorf("capturing output of %s: %w", name, err)
	}
	fmt.Println(out)
	return nil
}
