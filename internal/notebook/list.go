package notebook

import (
	"bytes"
	"os/exec"
	"strings"
)

// Lister queries a live notebook server's status listing by running
// "<bin> notebook list" as a subprocess. Bin must be an absolute path so
// there is no ambiguity about which installed binary answers.
type Lister struct {
	Bin string
}

// Query runs the status command and returns its output lines.
// Satisfies QueryFunc.
func (l *Lister) Query() ([]string, error) {
	cmd := exec.Command(l.Bin, "notebook", "list")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
