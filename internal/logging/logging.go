// Package logging owns the process-wide logrus logger.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Package loggers derive from it through For.
var Log = NewLogger()

// NewLogger returns a logger with the module-tagged text format.
func NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&TextFormatter{})
	return l
}

// For returns an entry tagged with module.
func For(module string) *logrus.Entry {
	return Log.WithField("module", module)
}

// Options controls Configure.
type Options struct {
	Level string // logrus level name; unknown values fall back to info
	Path  string // directory for rotated log files; empty logs to stdout only
}

// Configure applies level and output settings to Log.
func Configure(opts Options) error {
	lvl, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	writers := []io.Writer{os.Stdout}
	if opts.Path != "" {
		exePath, _ := os.Executable()
		name := filepath.Base(exePath)
		rotator, err := rotatelogs.New(
			filepath.Join(opts.Path, name+".%Y%m%d%H%M.log"),
			rotatelogs.WithLinkName(filepath.Join(opts.Path, name+".log")),
			rotatelogs.WithMaxAge(30*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			return fmt.Errorf("create rotating log file: %w", err)
		}
		writers = append(writers, rotator)
	}
	Log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// TextFormatter renders "2006-01-02 15:04:05 [level] module: message k=v".
type TextFormatter struct{}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, " [%s] ", entry.Level.String())

	module, ok := entry.Data["module"].(string)
	if !ok {
		module = "main"
	}
	b.WriteString(module)
	b.WriteString(": ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "module" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
