package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/nbup/nbup/internal/config"
	"github.com/nbup/nbup/internal/diagnose"
	"github.com/nbup/nbup/internal/notebook"
	"github.com/nbup/nbup/internal/report"
	"github.com/nbup/nbup/internal/session"
	"github.com/nbup/nbup/internal/style"
	"github.com/nbup/nbup/internal/supervisor"
	"github.com/nbup/nbup/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Up command flags
var (
	upDir      string
	upPort     int
	upIP       string
	upEnvsRoot string
	upAttempts int
	upInterval int
	upNoWait   bool
	upPlain    bool
)

var upCmd = &cobra.Command{
	Use:   "up <project>",
	Short: "Launch the project's notebook server and wait for it",
	Long: `Launch a notebook server for a project inside a detached tmux session,
poll its status listing until a server on the configured port appears, and
print a ready-to-use browser URL with the connection token.

Re-running up for the same project kills the previous session first, so
there is at most one session per project. If the server does not report
ready within the poll budget, diagnostics (active sessions and the last
lines of session output) are printed instead; the command still exits zero
because a slow server may become reachable later.

Examples:
  nbup up demo                     # Launch from the current directory
  nbup up demo --dir ~/work/demo   # Explicit project directory
  nbup up demo --port 5000         # Override the configured port
  nbup up demo --no-wait           # Launch without waiting for readiness`,
	Args: cobra.ExactArgs(1),
	RunE: runUp,
}

func init() {
	upCmd.Flags().StringVar(&upDir, "dir", "", "Project working directory (default: current directory)")
	upCmd.Flags().IntVar(&upPort, "port", 0, "Notebook server port (default: from config)")
	upCmd.Flags().StringVar(&upIP, "ip", "", "Bind address for the server (default: from config)")
	upCmd.Flags().StringVar(&upEnvsRoot, "envs-root", "", "Directory containing project environments")
	upCmd.Flags().IntVar(&upAttempts, "attempts", 0, "Readiness poll attempts (default: from config)")
	upCmd.Flags().IntVar(&upInterval, "interval", 0, "Seconds between poll attempts (default: from config)")
	upCmd.Flags().BoolVar(&upNoWait, "no-wait", false, "Launch the session without polling for readiness")
	upCmd.Flags().BoolVar(&upPlain, "plain", false, "Disable the interactive progress display")

	rootCmd.AddCommand(upCmd)
}

// upConfig merges flag overrides over the loaded config.
func upConfig(cmd *cobra.Command, workDir string) (config.Config, error) {
	cfg, err := config.LoadDefault(workDir)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = upPort
	}
	if cmd.Flags().Changed("ip") {
		cfg.IP = upIP
	}
	if cmd.Flags().Changed("envs-root") {
		cfg.EnvsRoot = upEnvsRoot
	}
	if cmd.Flags().Changed("attempts") {
		cfg.PollAttempts = upAttempts
	}
	if cmd.Flags().Changed("interval") {
		cfg.PollIntervalSeconds = upInterval
	}
	return cfg, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	project := args[0]

	workDir, err := resolveWorkDir(upDir)
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := upConfig(cmd, workDir)
	if err != nil {
		return err
	}

	// Resolve the binary up front: launching an ambiguous or missing
	// jupyter inside the session would only surface minutes later.
	bin, err := notebook.ResolveBin(cfg.EnvsRoot, project)
	if err != nil {
		return err
	}

	runID := uuid.NewString()[:8]
	name := session.ProjectSessionName(project, workDir)
	command := notebook.LaunchCommand(bin, cfg.IP, cfg.Port)
	slog.Info("launching notebook session",
		"run", runID, "project", project, "session", name, "port", cfg.Port)

	sessions := newSessions()
	id, err := supervisor.New(sessions).EnsureSession(name, workDir, command)
	if err != nil {
		return err
	}
	fmt.Printf("%s Session %s started\n", style.Success.Render("✓"), style.Bold.Render(name))

	if upNoWait {
		fmt.Printf("%s\n", style.Dim.Render("not waiting for readiness (--no-wait); check later with: nbup status "+project))
		return nil
	}

	poller := &notebook.Poller{
		Query:       (&notebook.Lister{Bin: bin}).Query,
		Port:        cfg.Port,
		MaxAttempts: cfg.PollAttempts,
		Interval:    cfg.Interval(),
	}

	res, ok, aborted := pollWithProgress(poller)
	if aborted {
		// Interrupted, not exhausted: the session keeps running, and the
		// timeout diagnostics would be misleading here.
		fmt.Printf("%s\n", style.Dim.Render("readiness wait interrupted; check later with: nbup status "+project))
		return nil
	}
	if ok {
		report.WriteSuccess(os.Stdout, report.Success{
			RunID:   runID,
			Project: project,
			WorkDir: workDir,
			Session: name,
			Record:  res.Record,
			Attempt: res.Attempt,
			Elapsed: res.Elapsed,
		})
		return nil
	}

	// Soft failure: the server may just be slow. Surface state and exit zero.
	dump := diagnose.Collect(sessions, id, cfg.CaptureLines)
	report.WriteTimeout(os.Stdout, report.Timeout{
		RunID:    runID,
		Project:  project,
		Session:  name,
		Port:     cfg.Port,
		Attempts: cfg.PollAttempts,
		Interval: cfg.Interval(),
		Dump:     dump,
	})
	return nil
}

// pollWithProgress runs the readiness poll, interactively when stdout is a
// terminal and --plain is not set. The third return is true when the
// operator interrupted the interactive poll.
func pollWithProgress(poller *notebook.Poller) (notebook.Result, bool, bool) {
	if !upPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		res, ok, err := ui.RunPoll(poller)
		if err == nil {
			return res, ok, false
		}
		if errors.Is(err, ui.ErrAborted) {
			return notebook.Result{}, false, true
		}
		slog.Warn("interactive progress failed, polling plainly", "error", err)
	}
	res, ok := poller.Poll()
	return res, ok, false
}
