package supervisor_test

import (
	"testing"

	"github.com/nbup/nbup/internal/session"
	"github.com/nbup/nbup/internal/supervisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupervisor(t *testing.T) (*supervisor.Supervisor, *session.Double) {
	t.Helper()
	d := session.NewDouble()
	s := supervisor.New(d).WithLockDir(t.TempDir())
	return s, d
}

func TestEnsureSession_CreatesSession(t *testing.T) {
	s, d := newSupervisor(t)
	workDir := t.TempDir()

	id, err := s.EnsureSession("nb-demo", workDir, "jupyter notebook")
	require.NoError(t, err)
	assert.Equal(t, session.SessionID("nb-demo"), id)

	exists, err := d.Exists(id)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, d.SessionCount())
}

func TestEnsureSession_Idempotent(t *testing.T) {
	s, d := newSupervisor(t)
	workDir := t.TempDir()

	_, err := s.EnsureSession("nb-demo", workDir, "jupyter notebook")
	require.NoError(t, err)

	// Second call with the same name must replace, not fail or duplicate.
	_, err = s.EnsureSession("nb-demo", workDir, "jupyter notebook")
	require.NoError(t, err)

	assert.Equal(t, 1, d.SessionCount())
}

func TestEnsureSession_ReplacementDiscardsPriorState(t *testing.T) {
	s, d := newSupervisor(t)
	workDir := t.TempDir()

	id, err := s.EnsureSession("nb-demo", workDir, "old-command")
	require.NoError(t, err)
	require.NoError(t, d.SetBuffer(id, []string{"old output"}))

	id, err = s.EnsureSession("nb-demo", workDir, "new-command")
	require.NoError(t, err)

	out, err := d.Capture(id, 80)
	require.NoError(t, err)
	assert.NotContains(t, out, "old output")
	assert.Contains(t, d.GetCommand(id), "new-command")
}

func TestEnsureSession_WrapsCommandInLoginShell(t *testing.T) {
	s, d := newSupervisor(t)
	workDir := t.TempDir()

	id, err := s.EnsureSession("nb-demo", workDir, "jupyter notebook --port=5000")
	require.NoError(t, err)

	cmd := d.GetCommand(id)
	assert.Contains(t, cmd, "bash -lc")
	assert.Contains(t, cmd, "cd ")
	assert.Contains(t, cmd, workDir)
	assert.Contains(t, cmd, "exec jupyter notebook --port=5000")
}

func TestEnsureSession_MissingWorkDir(t *testing.T) {
	s, _ := newSupervisor(t)

	_, err := s.EnsureSession("nb-demo", "/does/not/exist", "true")
	assert.Error(t, err)
}

func TestEnsureSession_EmptyName(t *testing.T) {
	s, _ := newSupervisor(t)

	_, err := s.EnsureSession("", t.TempDir(), "true")
	assert.Error(t, err)
}

func TestLoginShellCommand_EscapesWorkDir(t *testing.T) {
	cmd := supervisor.LoginShellCommand("/tmp/my project", "true")
	assert.Contains(t, cmd, "'/tmp/my project'")
}
