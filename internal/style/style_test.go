package style_test

import (
	"testing"

	"github.com/nbup/nbup/internal/style"
	"github.com/stretchr/testify/assert"
)

func TestHasColor_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, style.HasColor())
}

func TestHasColor_DumbTerm(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "dumb")
	assert.False(t, style.HasColor())
}

func TestHasColor_Forced(t *testing.T) {
	// Test processes have no TTY, so color only shows up when forced.
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")
	t.Setenv("TERM", "xterm-256color")
	assert.True(t, style.HasColor())
}
