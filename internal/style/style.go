// Package style defines the shared terminal styles for nbup output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// Bold is for headings and result markers.
	Bold = lipgloss.NewStyle().Bold(true)

	// Dim is for secondary information.
	Dim = lipgloss.NewStyle().Faint(true)

	// Success marks a completed provisioning step.
	Success = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	// Error marks fatal failures and the timeout banner.
	Error = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// URL highlights the browser URL in the success report.
	URL = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("12"))
)

// HasColor reports whether the current terminal supports colored output.
func HasColor() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}
