package cmd

import (
	"fmt"

	"github.com/nbup/nbup/internal/session"
	"github.com/nbup/nbup/internal/style"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List nbup-managed sessions",
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	sessions := newSessions()

	ids, err := sessions.List()
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	count := 0
	for _, id := range ids {
		if !session.IsManaged(string(id)) {
			continue
		}
		count++

		project, _ := session.ProjectFromSessionName(string(id))
		line := fmt.Sprintf("%s  %s", style.Bold.Render(string(id)), project)
		if info, err := sessions.GetInfo(id); err == nil && info.Created != "" {
			line += "  " + style.Dim.Render("since "+info.Created)
		}
		fmt.Println(line)
	}

	if count == 0 {
		fmt.Println(style.Dim.Render("no nbup sessions; start one with: nbup up <project>"))
	}
	return nil
}
