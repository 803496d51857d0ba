package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter(t *testing.T) {
	entry := logrus.NewEntry(NewLogger()).WithFields(logrus.Fields{
		"module": "runner",
		"height": 929929,
	})
	entry.Time = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry.Level = logrus.WarnLevel
	entry.Message = "issuance mismatch"

	out, err := (&TextFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02 03:04:05 [warning] runner: issuance mismatch height=929929\n", string(out))
}

func TestTextFormatter_FieldOrder(t *testing.T) {
	entry := logrus.NewEntry(NewLogger()).WithFields(logrus.Fields{
		"module": "runner",
		"run":    "base",
		"height": 929929,
		"epoch":  0,
	})
	entry.Time = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry.Level = logrus.InfoLevel
	entry.Message = "block"

	for i := 0; i < 20; i++ {
		out, err := (&TextFormatter{}).Format(entry)
		require.NoError(t, err)
		require.Equal(t, "2026-01-02 03:04:05 [info] runner: block epoch=0 height=929929 run=base\n", string(out))
	}
}

func TestConfigure_Level(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	require.NoError(t, Configure(Options{Level: "debug"}))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	require.NoError(t, Configure(Options{Level: "nonsense"}))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestConfigure_FileOutput(t *testing.T) {
	defer Log.SetOutput(os.Stdout)

	dir := t.TempDir()
	require.NoError(t, Configure(Options{Level: "info", Path: dir}))
	For("test").Info("hello")

	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}
