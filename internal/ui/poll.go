// Package ui renders interactive progress for the readiness poll when stdout
// is a terminal. The plain (non-TTY) path bypasses this package entirely and
// uses notebook.Poller directly.
package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nbup/nbup/internal/notebook"
	"github.com/nbup/nbup/internal/style"
)

// ErrAborted is returned by RunPoll when the operator interrupts the poll.
// An interrupted poll is neither a match nor a timeout; callers must not
// treat it as attempts-exhausted.
var ErrAborted = errors.New("readiness poll interrupted")

// attemptMsg carries the outcome of one status query.
type attemptMsg struct {
	lines []string
	err   error
}

// tickMsg requests the next query after the poll interval.
type tickMsg struct{}

// PollModel is a bubbletea model that drives the bounded readiness loop,
// one status query per interval, with a spinner and attempt counter.
type PollModel struct {
	spin        spinner.Model
	query       notebook.QueryFunc
	port        int
	maxAttempts int
	interval    time.Duration

	attempt  int
	start    time.Time
	result   notebook.Result
	matched  bool
	aborted  bool
	finished bool
}

// NewPollModel builds the model from poller parameters. Defaults mirror
// notebook.Poller.
func NewPollModel(p *notebook.Poller) PollModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = style.Bold

	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = notebook.DefaultMaxAttempts
	}
	interval := p.Interval
	if interval <= 0 {
		interval = notebook.DefaultInterval
	}

	return PollModel{
		spin:        s,
		query:       p.Query,
		port:        p.Port,
		maxAttempts: maxAttempts,
		interval:    interval,
		start:       time.Now(),
	}
}

// Init starts the spinner and fires the first query immediately.
func (m PollModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.queryCmd())
}

// queryCmd runs one status query off the UI loop.
func (m PollModel) queryCmd() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		lines, err := query()
		return attemptMsg{lines: lines, err: err}
	}
}

// Update handles spinner ticks, query results, and operator interrupts.
func (m PollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case attemptMsg:
		m.attempt++
		// Query errors are expected while the server binds its listener.
		if msg.err == nil {
			if rec, ok := notebook.MatchFirst(msg.lines, m.port); ok {
				m.result = notebook.Result{
					Record:  rec,
					Attempt: m.attempt,
					Elapsed: time.Since(m.start),
				}
				m.matched = true
				m.finished = true
				return m, tea.Quit
			}
		}
		if m.attempt >= m.maxAttempts {
			m.finished = true
			return m, tea.Quit
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })

	case tickMsg:
		return m, m.queryCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			m.finished = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the spinner line; cleared on exit.
func (m PollModel) View() string {
	if m.finished {
		return ""
	}
	return fmt.Sprintf("%s waiting for notebook on port %d %s\n",
		m.spin.View(),
		m.port,
		style.Dim.Render(fmt.Sprintf("(attempt %d/%d)", m.attempt, m.maxAttempts)))
}

// Result returns the poll outcome after the program finishes.
func (m PollModel) Result() (notebook.Result, bool) {
	return m.result, m.matched
}

// Aborted reports whether the operator interrupted the poll.
func (m PollModel) Aborted() bool {
	return m.aborted
}

// RunPoll runs the interactive poll to completion and returns the outcome,
// matching the contract of notebook.Poller.Poll. An operator interrupt is
// reported as ErrAborted.
func RunPoll(p *notebook.Poller) (notebook.Result, bool, error) {
	prog := tea.NewProgram(NewPollModel(p))
	final, err := prog.Run()
	if err != nil {
		return notebook.Result{}, false, err
	}
	model, ok := final.(PollModel)
	if !ok {
		return notebook.Result{}, false, fmt.Errorf("unexpected model type %T", final)
	}
	return resultFromModel(model)
}

// resultFromModel maps a finished model to the RunPoll outcome.
func resultFromModel(m PollModel) (notebook.Result, bool, error) {
	if m.Aborted() {
		return notebook.Result{}, false, ErrAborted
	}
	res, matched := m.Result()
	return res, matched, nil
}
