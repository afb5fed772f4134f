package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviesphere/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hello", "component", "test")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("unexpected log output: %s", data)
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := logging.NewNop()
	ctx := logging.IntoContext(context.Background(), logger)
	if got := logging.FromContext(ctx); got != logger {
		t.Fatal("expected logger from context")
	}
	if got := logging.FromContext(context.Background()); got == nil {
		t.Fatal("expected fallback logger")
	}
}
