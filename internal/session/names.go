package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Prefix is the common prefix for nbup-managed tmux sessions.
const Prefix = "nb-"

// DirIDLength is the number of characters in a directory ID suffix.
const DirIDLength = 6

// dirIDPattern matches a valid directory ID suffix (hyphen + 6 hex chars at end).
var dirIDPattern = regexp.MustCompile(`-([0-9a-f]{6})$`)

// DirID generates a 6-character hex identifier from the project's working
// directory. This provides collision resistance when two projects share a name
// in different directories on the same machine.
// Returns empty string if workDir is empty.
func DirID(workDir string) string {
	if workDir == "" {
		return ""
	}
	h := sha256.Sum256([]byte(workDir))
	return hex.EncodeToString(h[:])[:DirIDLength]
}

// ProjectSessionName returns the session name for a project's notebook server.
// The name is "nb-<project>" plus a directory ID suffix when workDir is set,
// e.g. "nb-demo-3fa9c1".
func ProjectSessionName(project, workDir string) string {
	name := Prefix + sanitize(project)
	if id := DirID(workDir); id != "" {
		name += "-" + id
	}
	return name
}

// sanitize replaces characters tmux treats specially in session names.
// tmux rejects "." and ":" in names; everything else passes through.
func sanitize(name string) string {
	r := strings.NewReplacer(".", "-", ":", "-", " ", "-")
	return r.Replace(name)
}

// ExtractDirID extracts the directory ID suffix from a session name.
// Returns empty string if no directory ID is present.
func ExtractDirID(sessionName string) string {
	matches := dirIDPattern.FindStringSubmatch(sessionName)
	if len(matches) == 2 {
		return matches[1]
	}
	return ""
}

// StripDirID removes the directory ID suffix from a session name.
// Returns the original name if no suffix is present.
func StripDirID(sessionName string) string {
	return dirIDPattern.ReplaceAllString(sessionName, "")
}

// IsManaged reports whether a session name belongs to nbup.
func IsManaged(sessionName string) bool {
	return strings.HasPrefix(sessionName, Prefix)
}

// ProjectFromSessionName recovers the project name from a managed session
// name, e.g. "nb-demo-3fa9c1" -> "demo". Returns an error for names without
// the nbup prefix.
func ProjectFromSessionName(sessionName string) (string, error) {
	if !IsManaged(sessionName) {
		return "", fmt.Errorf("not an nbup session: %s", sessionName)
	}
	return StripDirID(strings.TrimPrefix(sessionName, Prefix)), nil
}
