package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tubeclip/internal/config"
	"tubeclip/internal/logging"
	"tubeclip/internal/services"
)

func newFileLogger(t *testing.T, format, level string) (*slog.Logger, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Format: format, Level: level, OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return logger, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(data)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Level = "info"

	logger, err := logging.NewFromConfig(&cfg, "")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if !strings.Contains(content, "hello from config") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestNewFromConfigLevelOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "error"

	logger, err := logging.NewFromConfig(&cfg, "debug")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug visible")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if !strings.Contains(content, "debug visible") {
		t.Fatalf("expected override level to emit debug, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "info")
	logger.Info("message without caller")

	if content := readLog(t, logPath); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "debug")
	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerHeaderAndFields(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "info")
	ctx := services.WithRunID(context.Background(), "0123456789abcdef")
	ctx = services.WithStage(ctx, "captions")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "highlights")).
		Info("captions parsed", logging.Int("cue_count", 3))

	content := readLog(t, logPath)
	for _, want := range []string{"INFO [highlights]", "run 01234567 (captions)", "captions parsed", "- cue_count: 3"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestWithContextAddsContextFields(t *testing.T) {
	logger, logPath := newFileLogger(t, "json", "info")
	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithStage(ctx, "download")
	ctx = services.WithRequestID(ctx, "req-9")
	logging.WithContext(ctx, logger).Info("downloaded")
	logging.WithContext(context.Background(), logger).Info("bare")

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	var withFields, bare map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &withFields); err != nil {
		t.Fatalf("decode first line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &bare); err != nil {
		t.Fatalf("decode second line: %v", err)
	}
	want := map[string]string{
		logging.FieldRunID:         "run-1",
		logging.FieldStage:         "download",
		logging.FieldCorrelationID: "req-9",
	}
	for key, value := range want {
		if withFields[key] != value {
			t.Fatalf("expected %s=%q, got %v", key, value, withFields[key])
		}
		if _, ok := bare[key]; ok {
			t.Fatalf("did not expect %s on a bare context", key)
		}
	}
}

func TestConsoleLoggerHidesExtraInfoFields(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "info")
	attrs := make([]logging.Attr, 0, 10)
	for i := 0; i < 10; i++ {
		attrs = append(attrs, logging.Int("field_"+string(rune('a'+i)), i))
	}
	logger.Info("many fields", logging.Args(attrs...)...)

	if content := readLog(t, logPath); !strings.Contains(content, "+ 2 more fields hidden") {
		t.Fatalf("expected hidden field summary, got %q", content)
	}
}

func TestJSONLoggerShape(t *testing.T) {
	logger, logPath := newFileLogger(t, "json", "info")
	logger.Info("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["msg"] != "json message" || record["level"] != "info" || record["k"] != "v" {
		t.Fatalf("unexpected record %#v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %#v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logger, logPath := newFileLogger(t, "console", "invalid")
	logger.Debug("hidden")
	logger.Info("shown")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") || !strings.Contains(content, "shown") {
		t.Fatalf("expected info level filtering, got %q", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logger, logPath := newFileLogger(t, "json", "info")
	logging.WarnWithContext(logger, "something odd", "odd_event", logging.Error(errors.New("boom")))

	content := readLog(t, logPath)
	for _, want := range []string{`"event_type":"odd_event"`, `"error_hint"`, `"impact"`, `"error":"boom"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestErrorWithContextDerivesHint(t *testing.T) {
	logger, logPath := newFileLogger(t, "json", "info")
	failure := services.Wrap(services.ErrExternalTool, "clips", "ffmpeg", "render failed", errors.New("exit 1"))
	logging.ErrorWithContext(logger, "clip failed", "clip_render_failed", logging.Error(failure))
	logging.ErrorWithContext(logger, "explicit", "explicit_hint",
		logging.Error(failure), logging.String(logging.FieldErrorHint, "reinstall ffmpeg"))

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode first line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode second line: %v", err)
	}
	if first[logging.FieldErrorHint] != services.Hint(failure) {
		t.Fatalf("expected derived hint, got %v", first[logging.FieldErrorHint])
	}
	if second[logging.FieldErrorHint] != "reinstall ffmpeg" {
		t.Fatalf("expected explicit hint kept, got %v", second[logging.FieldErrorHint])
	}
	if _, ok := first[logging.FieldImpact]; ok {
		t.Fatal("errors should not carry an impact field")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled")
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.log")
	active := filepath.Join(dir, logging.LogFileName)
	fresh := filepath.Join(dir, "fresh.log")
	for _, path := range []string{old, active, fresh} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	past := time.Now().AddDate(0, 0, -30)
	for _, path := range []string{old, active} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	removed := logging.CleanupOldLogs(logging.NewNop(), 7, dir, "*.log", logging.LogFileName)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected old log removed, stat err=%v", err)
	}
	for _, path := range []string{active, fresh} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s kept: %v", path, err)
		}
	}
}

func TestCleanupOldLogsDisabled(t *testing.T) {
	if removed := logging.CleanupOldLogs(nil, 0, t.TempDir(), "", ""); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
}
