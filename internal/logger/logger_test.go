package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func swapLogger(t *testing.T, l *slog.Logger) {
	t.Helper()
	orig := Logger
	Logger = l
	t.Cleanup(func() { Logger = orig })
}

func TestWrappersUseGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	swapLogger(t, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	Debug("segment roster request shared", "segment", "Champions")
	Info("pruned audit log", "rows", 3)
	Warn("model info check failed")
	Error("failed to close database")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=\"segment roster request shared\" segment=Champions",
		"level=INFO msg=\"pruned audit log\" rows=3",
		"level=WARN msg=\"model info check failed\"",
		"level=ERROR msg=\"failed to close database\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_WritesToFile(t *testing.T) {
	swapLogger(t, Logger)

	path := filepath.Join(t.TempDir(), "logs", "tui.log")
	closer, err := Init(path, "warn")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info("dropped below threshold")
	Warn("kept", "endpoint", "/api/insights")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "dropped below threshold") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "endpoint=/api/insights") {
		t.Errorf("log file missing warn record: %q", out)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("log file mode = %o, want 600", perm)
	}
}

func TestInit_EmptyPathDiscards(t *testing.T) {
	swapLogger(t, Logger)

	closer, err := Init("", "debug")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer closer.Close()
	Error("nowhere")
	if !Logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled")
	}
}
