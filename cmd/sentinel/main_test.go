package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IssuanceSentinel/internal/recorder"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--to", "929938")
	require.NoError(t, err)
	assert.Contains(t, out, "Verifying from block 929929")
	assert.Contains(t, out, "Blocks evaluated: 10")
}

func TestRunCommand_InvalidRange(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--from", "5")
	require.Error(t, err)
}

func TestSweepCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
run:
  to: 929938
  verbose: false
sweep:
  - label: no-throttle
    beta: 0
`), 0644))

	out, err := execute(t, "sweep", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "no-throttle")
	assert.Contains(t, out, "50,000,000")
}

func TestFollowCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "follow.db")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
run:
  from: 929935
  verbose: false
follow:
  cron: "@every 1h"
database:
  sqlite_path: `+dbPath+`
`), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := executeContext(t, ctx, "follow", "--config", path, "--run-on-start", "--summary-cron", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Verifying from block 929929")
	assert.Contains(t, out, "Run default | blocks 929935..929935")
	assert.Contains(t, out, "Blocks evaluated: 1")
	assert.Contains(t, out, "Issued: 2,106,987 CASH")
	assert.Contains(t, out, "Total minted: 23,537,112 CASH")

	rec, err := recorder.NewSQLiteRecorder(dbPath)
	require.NoError(t, err)
	defer rec.Close()
	n, err := rec.BlockCount("default")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFollowCommand_BadCron(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("follow:\n  cron: \"not a schedule\"\n"), 0644))

	_, err := execute(t, "follow", "--config", path)
	require.Error(t, err)
}
