package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{log.InfoLevel, func(l *log.Logger) { l.Info("rendered") }, true},
		{log.InfoLevel, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{log.DebugLevel, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{log.WarnLevel, func(l *log.Logger) { l.Info("rendered") }, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.emit(newLogger(&buf, tt.level))
		if got := buf.Len() > 0; got != tt.want {
			t.Errorf("level %s: logged = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("serving")
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).Match(buf.Bytes()) {
		t.Errorf("log line %q should start with an HH:MM:SS.ms timestamp", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Rendered 3 diagrams")
	if !regexp.MustCompile(`Rendered 3 diagrams \([\d.]+m?s\)`).MatchString(buf.String()) {
		t.Errorf("done output = %q, want message with elapsed time", buf.String())
	}

	buf.Reset()
	newProgress(newLogger(&buf, log.InfoLevel)).debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug progress should be filtered at info level")
	}

	buf.Reset()
	newProgress(newLogger(&buf, log.DebugLevel)).debug("Runtime ready")
	if !strings.Contains(buf.String(), "Runtime ready") {
		t.Errorf("debug progress output = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("loggerFromContext should return the attached logger")
	}
}
