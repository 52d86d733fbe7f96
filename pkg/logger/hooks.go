package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// LevelRouterHook writes each entry to a per-level writer using a per-level
// formatter. Progress messages (Info) go to stdout as plain lines, diagnostics
// go to stderr with timestamps.
type LevelRouterHook struct {
	mu         sync.Mutex
	Writers    map[logrus.Level]io.Writer
	Formatters map[logrus.Level]logrus.Formatter
	LogLevels  []logrus.Level
}

// NewLevelRouterHook routes Info to stdout and everything else to stderr.
func NewLevelRouterHook() *LevelRouterHook {
	hook := &LevelRouterHook{LogLevels: logrus.AllLevels}
	hook.SetWriters(os.Stdout, os.Stderr)
	return hook
}

// SetWriters replaces the destinations: out receives Info, errOut the rest.
func (hook *LevelRouterHook) SetWriters(out, errOut io.Writer) {
	hook.mu.Lock()
	defer hook.mu.Unlock()

	timestamped := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	hook.Writers = map[logrus.Level]io.Writer{}
	hook.Formatters = map[logrus.Level]logrus.Formatter{}
	for _, level := range logrus.AllLevels {
		hook.Writers[level] = errOut
		hook.Formatters[level] = timestamped
	}
	hook.Writers[logrus.InfoLevel] = out
	hook.Formatters[logrus.InfoLevel] = &MessageFormatter{}
}

func (hook *LevelRouterHook) Levels() []logrus.Level {
	return hook.LogLevels
}

func (hook *LevelRouterHook) Fire(entry *logrus.Entry) error {
	hook.mu.Lock()
	defer hook.mu.Unlock()

	writer, ok := hook.Writers[entry.Level]
	if !ok {
		writer = os.Stdout
	}
	formatter, ok := hook.Formatters[entry.Level]
	if !ok {
		formatter = &MessageFormatter{}
	}

	line, err := formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = writer.Write(line)
	return err
}

// MessageFormatter prints the message followed by any fields as key=value.
type MessageFormatter struct{}

func (f *MessageFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	line := entry.Message
	for _, key := range sortedKeys(entry.Data) {
		line += " " + key + "=" + toString(entry.Data[key])
	}
	return []byte(line + "\n"), nil
}
