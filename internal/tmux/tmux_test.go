package tmux_test

import (
	"crypto/rand"
	"encoding/hex"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/nbup/nbup/internal/session"
	"github.com/nbup/nbup/internal/tmux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfNoTmux skips the test if tmux is not installed.
func skipIfNoTmux(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping tmux tests in short mode")
	}
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("skipping: tmux not installed")
	}
}

// randomSuffix returns a short random hex string for unique session names.
func randomSuffix() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// cleanupSession ensures a session is killed after the test.
func cleanupSession(t *testing.T, tm *tmux.Tmux, name string) {
	t.Helper()
	t.Cleanup(func() {
		_ = tm.Stop(session.SessionID(name))
	})
}

func TestTmux_ImplementsSessions(t *testing.T) {
	var _ session.Sessions = (*tmux.Tmux)(nil)
}

func TestTmux_StartAndStop(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()
	sessionName := "nb-test-start-" + randomSuffix()
	cleanupSession(t, tm, sessionName)

	id, err := tm.Start(sessionName, "/tmp", "sleep 30")
	require.NoError(t, err)
	assert.Equal(t, session.SessionID(sessionName), id)

	exists, err := tm.Exists(id)
	require.NoError(t, err)
	assert.True(t, exists)

	err = tm.Stop(id)
	require.NoError(t, err)

	exists, err = tm.Exists(id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTmux_Exists_NotFound(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()

	exists, err := tm.Exists("nb-nonexistent-session-12345")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTmux_StartDuplicateFails(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()
	sessionName := "nb-test-dup-" + randomSuffix()
	cleanupSession(t, tm, sessionName)

	_, err := tm.Start(sessionName, "/tmp", "sleep 30")
	require.NoError(t, err)

	_, err = tm.Start(sessionName, "/tmp", "sleep 30")
	assert.ErrorIs(t, err, tmux.ErrSessionExists)
}

func TestTmux_StopIsIdempotent(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()
	err := tm.Stop(session.SessionID("nb-never-existed-" + randomSuffix()))
	assert.NoError(t, err)
}

func TestTmux_Capture(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()
	sessionName := "nb-test-capture-" + randomSuffix()
	cleanupSession(t, tm, sessionName)

	_, err := tm.Start(sessionName, "/tmp", "sh -c 'echo hello-capture; sleep 30'")
	require.NoError(t, err)

	// The echo output lands in the pane almost immediately, but allow the
	// session a moment to spin up.
	var out string
	require.Eventually(t, func() bool {
		out, err = tm.Capture(session.SessionID(sessionName), 10)
		return err == nil && strings.Contains(out, "hello-capture")
	}, 5*time.Second, 100*time.Millisecond, "pane output: %q", out)
}

func TestTmux_List(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()
	sessionName := "nb-test-list-" + randomSuffix()
	cleanupSession(t, tm, sessionName)

	_, err := tm.Start(sessionName, "/tmp", "sleep 30")
	require.NoError(t, err)

	ids, err := tm.List()
	require.NoError(t, err)
	assert.Contains(t, ids, session.SessionID(sessionName))
}

func TestTmux_GetInfo(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()
	sessionName := "nb-test-info-" + randomSuffix()
	cleanupSession(t, tm, sessionName)

	id, err := tm.Start(sessionName, "/tmp", "sleep 30")
	require.NoError(t, err)

	info, err := tm.GetInfo(id)
	require.NoError(t, err)
	assert.Equal(t, sessionName, info.Name)
	assert.Equal(t, 1, info.Windows)
	assert.False(t, info.Attached)
}

func TestTmux_PanePID(t *testing.T) {
	skipIfNoTmux(t)

	tm := tmux.NewTmux()
	sessionName := "nb-test-pid-" + randomSuffix()
	cleanupSession(t, tm, sessionName)

	id, err := tm.Start(sessionName, "/tmp", "sleep 30")
	require.NoError(t, err)

	pid, err := tm.PanePID(id)
	require.NoError(t, err)
	assert.Greater(t, pid, 0)
}
