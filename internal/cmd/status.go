package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/nbup/nbup/internal/config"
	"github.com/nbup/nbup/internal/notebook"
	"github.com/nbup/nbup/internal/report"
	"github.com/nbup/nbup/internal/session"
	"github.com/nbup/nbup/internal/style"
	"github.com/spf13/cobra"
)

var statusDir string

var statusCmd = &cobra.Command{
	Use:   "status <project>",
	Short: "Check whether the project's notebook server is reachable",
	Long: `Check the project's session and query the notebook status listing once.
Prints the connection report when the server is up, or the session state
when it isn't.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusDir, "dir", "", "Project working directory (default: current directory)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	project := args[0]

	workDir, err := resolveWorkDir(statusDir)
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.LoadDefault(workDir)
	if err != nil {
		return err
	}

	name := session.ProjectSessionName(project, workDir)
	sessions := newSessions()

	exists, err := sessions.Exists(session.SessionID(name))
	if err != nil {
		return fmt.Errorf("checking session %s: %w", name, err)
	}
	if !exists {
		fmt.Printf("%s No session for %s (expected %s)\n",
			style.Dim.Render("·"), project, style.Bold.Render(name))
		fmt.Printf("Start one with: nbup up %s\n", project)
		return nil
	}

	bin, err := notebook.ResolveBin(cfg.EnvsRoot, project)
	if err != nil {
		return err
	}

	// Single poll pass; status should answer now, not wait.
	poller := &notebook.Poller{
		Query:       (&notebook.Lister{Bin: bin}).Query,
		Port:        cfg.Port,
		MaxAttempts: 1,
	}

	res, ok := poller.Poll()
	if !ok {
		fmt.Printf("%s Session %s is running but the server on port %d is not answering yet\n",
			style.Dim.Render("·"), style.Bold.Render(name), cfg.Port)
		fmt.Printf("Inspect with: nbup logs %s\n", project)
		return nil
	}

	report.WriteSuccess(os.Stdout, report.Success{
		RunID:   uuid.NewString()[:8],
		Project: project,
		WorkDir: workDir,
		Session: name,
		Record:  res.Record,
		Attempt: res.Attempt,
		Elapsed: res.Elapsed,
	})
	return nil
}
