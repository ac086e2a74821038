package logger

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rfarias/garimpo/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "json",
	}

	log := New(cfg)
	if log == nil {
		t.Fatal("New() returned nil")
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := New(cfg)
	if log == nil {
		t.Fatal("New() returned nil")
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()

	// Everything goes to the void without panicking
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.Infof("formatted %d", 42)
}

func TestWithField(t *testing.T) {
	log := NewNop()

	child := log.WithField("ticker", "PETR4")
	if child == nil {
		t.Fatal("WithField() returned nil")
	}
	if child == log {
		t.Error("WithField() should return a new logger")
	}
}

func TestWithFields(t *testing.T) {
	log := NewNop()

	child := log.WithFields(map[string]interface{}{
		"source": "br-stocks",
		"rows":   120,
	})
	if child == nil {
		t.Fatal("WithFields() returned nil")
	}
	if child == log {
		t.Error("WithFields() should return a new logger")
	}
}

func TestWithError(t *testing.T) {
	log := NewNop()

	child := log.WithError(errors.New("upstream unavailable"))
	if child == nil {
		t.Fatal("WithError() returned nil")
	}
	if child == log {
		t.Error("WithError() should return a new logger")
	}
}
