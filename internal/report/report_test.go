package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/nbup/nbup/internal/diagnose"
	"github.com/nbup/nbup/internal/notebook"
	"github.com/nbup/nbup/internal/report"
	"github.com/nbup/nbup/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSuccess(t *testing.T) {
	rec, ok := notebook.ParseLine("http://0.0.0.0:5000/?token=xyz :: /home/dev/demo", 5000)
	require.True(t, ok)

	var buf bytes.Buffer
	report.WriteSuccess(&buf, report.Success{
		RunID:   "ab12cd34",
		Project: "demo",
		WorkDir: "/home/dev/demo",
		Session: "nb-demo-3fa9c1",
		Record:  rec,
		Attempt: 2,
		Elapsed: 1200 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "Demo notebook is ready")
	assert.Contains(t, out, "/home/dev/demo")
	assert.Contains(t, out, "nb-demo-3fa9c1")
	assert.Contains(t, out, "http://localhost:5000/?token=xyz")
	assert.Contains(t, out, "http://0.0.0.0:5000/?token=xyz")
	assert.Contains(t, out, "2 attempt(s)")
	assert.Contains(t, out, "ab12cd34")
}

func TestWriteSuccess_NoToken(t *testing.T) {
	rec, ok := notebook.ParseLine("http://0.0.0.0:5000/ :: /home/dev/demo", 5000)
	require.True(t, ok)

	var buf bytes.Buffer
	report.WriteSuccess(&buf, report.Success{Project: "demo", Record: rec, Attempt: 1})

	assert.Contains(t, buf.String(), "http://localhost:5000/")
	assert.NotContains(t, buf.String(), "token=")
}

func TestWriteTimeout(t *testing.T) {
	var buf bytes.Buffer
	report.WriteTimeout(&buf, report.Timeout{
		RunID:    "ab12cd34",
		Project:  "demo",
		Session:  "nb-demo-3fa9c1",
		Port:     5000,
		Attempts: 90,
		Interval: time.Second,
		Dump: &diagnose.Dump{
			Sessions: []session.SessionID{"nb-demo-3fa9c1", "other"},
			Pane:     "ImportError: no module named notebook",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "not ready after 90 attempts")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "nb-demo-3fa9c1")
	assert.Contains(t, out, "ImportError: no module named notebook")
	assert.Contains(t, out, "nbup logs demo")
}

func TestWriteTimeout_EmptyDump(t *testing.T) {
	var buf bytes.Buffer
	report.WriteTimeout(&buf, report.Timeout{
		Project:  "demo",
		Session:  "nb-demo",
		Port:     5000,
		Attempts: 3,
		Interval: time.Second,
		Dump:     &diagnose.Dump{},
	})

	out := buf.String()
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "(no output captured)")
}
