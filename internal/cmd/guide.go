package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/nbup/nbup/internal/style"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideMarkdown string

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the quickstart guide",
	Args:  cobra.NoArgs,
	RunE:  runGuide,
}

func init() {
	rootCmd.AddCommand(guideCmd)
}

func runGuide(cmd *cobra.Command, args []string) error {
	// Dumb terminals (and NO_COLOR) get the raw markdown.
	if !style.HasColor() {
		fmt.Print(guideMarkdown)
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// No styled renderer (e.g. dumb terminal): print the raw markdown.
		fmt.Print(guideMarkdown)
		return nil
	}

	out, err := r.Render(guideMarkdown)
	if err != nil {
		fmt.Print(guideMarkdown)
		return nil
	}
	fmt.Print(out)
	return nil
}
