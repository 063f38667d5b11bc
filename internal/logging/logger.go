package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger   *logrus.Logger
	loggerMu sync.Mutex
)

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // json, text, simple, or compact
}

// CompactFormatter renders "[LEVEL][component][switch] message (k=v, ...)".
type CompactFormatter struct {
	ShowTime bool
}

// Format renders a single log entry
func (f *CompactFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	if f.ShowTime {
		fmt.Fprintf(b, "[%s]", entry.Time.Format("15:04:05"))
	}
	fmt.Fprintf(b, "[%s]", strings.ToUpper(entry.Level.String()))

	if component, ok := entry.Data["component"]; ok {
		fmt.Fprintf(b, "[%v]", component)
	}
	if sw, ok := entry.Data["switch"]; ok {
		fmt.Fprintf(b, "[%v]", sw)
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "component" && k != "switch" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		b.WriteString(" (")
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s=%v", key, entry.Data[key])
		}
		b.WriteString(")")
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger initializes the global logger with the provided configuration
func InitLogger(config LogConfig) *logrus.Logger {
	return InitLoggerWithOutput(config, os.Stderr)
}

// InitLoggerWithOutput is InitLogger writing to w.
func InitLoggerWithOutput(config LogConfig, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
		if config.Level != "" {
			l.Warnf("Invalid log level '%s', defaulting to 'info'", config.Level)
		}
	}
	l.SetLevel(level)

	switch strings.ToLower(config.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case "simple":
		l.SetFormatter(&CompactFormatter{ShowTime: false})
	case "compact":
		l.SetFormatter(&CompactFormatter{ShowTime: true})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		l.Warnf("Invalid log format '%s', defaulting to 'text'", config.Format)
	}

	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
	return l
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	loggerMu.Lock()
	l := logger
	loggerMu.Unlock()
	if l == nil {
		return InitLogger(LogConfig{Level: "info", Format: "simple"})
	}
	return l
}

// LevelForVerbosity maps the CLI verbosity count to a log level.
func LevelForVerbosity(verbosity int) string {
	if verbosity == 1 || verbosity == 3 {
		return "debug"
	}
	return "info"
}

func WithComponent(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}

func WithSwitch(sw string) *logrus.Entry {
	return GetLogger().WithField("switch", sw)
}

func WithComponentAndSwitch(component, sw string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"component": component,
		"switch":    sw,
	})
}
