package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plexmissing/internal/config"
	"plexmissing/internal/logging"
	"plexmissing/internal/services"
)

func TestNewFromConfigHonoursLevelAndDebug(t *testing.T) {
	cfg := config.Default()

	var quiet bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &quiet, false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hidden at warn")
	if quiet.Len() != 0 {
		t.Fatalf("expected default warn level to drop info, got %q", quiet.String())
	}

	var loud bytes.Buffer
	logger, err = logging.NewFromConfig(&cfg, &loud, true)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("shown with debug")
	if !strings.Contains(loud.String(), "DEBUG shown with debug") {
		t.Fatalf("expected debug record, got %q", loud.String())
	}
}

func TestNewFromConfigCopiesToLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "plexmissing.log")

	var stderr bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &stderr, false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Warn("collection skipped")

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for name, got := range map[string]string{"stderr": stderr.String(), "file": string(data)} {
		if !strings.Contains(got, "collection skipped") {
			t.Fatalf("expected record in %s, got %q", name, got)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "INFO  message without caller") {
		t.Fatalf("unexpected console line: %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "walker")
	component.Warn("collection skipped",
		logging.String(logging.FieldCollection, "Star Wars"),
		logging.Int("index", 3),
		logging.Error(errors.New("no guid")),
	)

	line := buf.String()
	for _, fragment := range []string{"WARN  walker [Star Wars]: collection skipped", "index=3", `error="no guid"`} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
}

func TestLevelFiltersLowerRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %q", buf.String())
	}
}

func TestJSONLoggerWritesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "plexmissing.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("json message", logging.String("library", "Movies"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["msg"] != "json message" || entry["level"] != "info" || entry["library"] != "Movies" {
		t.Fatalf("unexpected json entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithLibrary(ctx, "Movies")
	logging.WithContext(ctx, logger).Info("processing")

	if !strings.Contains(buf.String(), "INFO  [Movies]: processing") || !strings.Contains(buf.String(), "run_id=run-1") {
		t.Fatalf("expected context fields, got %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored")
	if logging.WithContext(context.Background(), nil) == nil {
		t.Fatal("expected nop logger fallback")
	}
}
