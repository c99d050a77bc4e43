// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, level filtering, derived
//              loggers and both formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	rairerror "github.com/msto63/rair/foundation/core/error"
)

func newTestLogger(buf *bytes.Buffer, level Level, format Format) *Logger {
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: buf,
		Name:   "test",
	})
	if tf, ok := logger.formatter.(*TextFormatter); ok {
		tf.DisableTimestamp = true
	}
	return logger
}

func TestNew(t *testing.T) {
	logger := New()

	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.contextFields == nil {
		t.Error("New() should initialize context fields")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelWarn, FormatText)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")
	logger.Error("shown too")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug, FormatText).WithField("component", "core")

	logger.Debug("Command dispatched", Fields{"command": "map", "args": 3})

	want := "[DBG] {test} Command dispatched [args=3 command=map component=core]\n"
	if buf.String() != want {
		t.Errorf("text output = %q, want %q", buf.String(), want)
	}
}

func TestJSONFormatWithCodedError(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug, FormatJSON)

	err := rairerror.New("Command seeker is not found.").WithCode(rairerror.CodeCommandNotFound)
	logger.WarnWithErr("Execution failed", err)

	var data map[string]interface{}
	if jsonErr := json.Unmarshal(buf.Bytes(), &data); jsonErr != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), jsonErr)
	}
	if data["level"] != "warn" {
		t.Errorf("level = %v, want warn", data["level"])
	}
	if data["error_code"] != "COMMAND_NOT_FOUND" {
		t.Errorf("error_code = %v, want COMMAND_NOT_FOUND", data["error_code"])
	}
	if data["logger"] != "test" {
		t.Errorf("logger = %v, want test", data["logger"])
	}
}

func TestWithFieldIsImmutable(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, LevelInfo, FormatText)
	derived := base.WithField("session", "abc")

	base.Info("base")
	if strings.Contains(buf.String(), "session") {
		t.Errorf("base logger picked up derived field: %q", buf.String())
	}

	buf.Reset()
	derived.Info("derived")
	if !strings.Contains(buf.String(), "session=abc") {
		t.Errorf("derived logger lost its field: %q", buf.String())
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug, FormatText)

	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}

	logger.LogError(rairerror.New("Command s already existed.").
		WithCode(rairerror.CodeDuplicateRegistration).
		WithDetail("name", "s"))
	out := buf.String()
	if !strings.Contains(out, "error_code=DUPLICATE_REGISTRATION") || !strings.Contains(out, "error_name=s") {
		t.Errorf("LogError() output = %q", out)
	}

	buf.Reset()
	logger.LogError(errors.New("plain"))
	if !strings.Contains(buf.String(), "[WRN] {test} plain") {
		t.Errorf("LogError(plain) output = %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelInfo, true},
		{"", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger.IsLevelEnabled(LevelError) {
		t.Error("nop logger should not enable any level")
	}
}
