package notebook

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveBin returns the absolute path of the jupyter binary for a project's
// environment, e.g. <envsRoot>/<project>/bin/jupyter. The binary must already
// exist; installing it is out of scope for this tool.
func ResolveBin(envsRoot, project string) (string, error) {
	bin := filepath.Join(envsRoot, project, "bin", "jupyter")
	info, err := os.Stat(bin)
	if err != nil {
		return "", fmt.Errorf("jupyter binary for %s: %w", project, err)
	}
	if info.IsDir() || info.Mode()&0o111 == 0 {
		return "", fmt.Errorf("jupyter binary for %s: %s is not executable", project, bin)
	}
	return bin, nil
}

// LaunchCommand builds the notebook server invocation. The binary path is
// absolute and the bind address and port are explicit, so the launched
// session inherits nothing ambiguous from the supervisor's environment.
func LaunchCommand(bin, ip string, port int) string {
	return fmt.Sprintf("%s notebook --no-browser --ip=%s --port=%d", bin, ip, port)
}
