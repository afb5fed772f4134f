package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviesphere/internal/testsupport"
)

// writeTestConfig writes a config file rooted in a temp directory and
// returns its path along with the models directory.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	modelsDir := filepath.Join(base, "models")
	content := fmt.Sprintf(`[paths]
data_dir = %q
models_dir = %q
frames_dir = %q
log_dir = %q

[logging]
level = "error"
`,
		filepath.Join(base, "data"),
		modelsDir,
		filepath.Join(base, "frames"),
		filepath.Join(base, "logs"),
	)
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, modelsDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	output, err := runCommand(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, expect := range []string{"daemon", "moderate", "queue", "strikes", "analyze"} {
		if !strings.Contains(output, expect) {
			t.Fatalf("help output missing %q:\n%s", expect, output)
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("output does not mention target path:\n%s", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// Without --overwrite a second init must refuse.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestQueueAddListStatus(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	output, err := runCommand(t, "--config", configPath, "queue", "add",
		"--movie", "Night Train", "--duration", "5400", "--actor", "Maria Voss")
	if err != nil {
		t.Fatalf("queue add: %v", err)
	}
	if !strings.Contains(output, "state pending") {
		t.Fatalf("unexpected add output:\n%s", output)
	}

	output, err = runCommand(t, "--config", configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(output, "Night Train") || !strings.Contains(output, "Maria Voss") {
		t.Fatalf("list output missing performance:\n%s", output)
	}

	output, err = runCommand(t, "--config", configPath, "queue", "status")
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	if !strings.Contains(output, "pending") {
		t.Fatalf("status output missing pending row:\n%s", output)
	}
}

func TestQueueAddWithExplicitScreenTime(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	output, err := runCommand(t, "--config", configPath, "queue", "add",
		"--movie", "Night Train", "--duration", "5400", "--actor", "Otto Hahn",
		"--screen-time", "312.5")
	if err != nil {
		t.Fatalf("queue add: %v", err)
	}
	if !strings.Contains(output, "state skipped") {
		t.Fatalf("explicit screen time should skip analysis:\n%s", output)
	}
}

func TestModerateReviewPublishesCleanContent(t *testing.T) {
	configPath, modelsDir := writeTestConfig(t)
	testsupport.WriteDefaultModels(t, modelsDir, "Maria Voss")

	output, err := runCommand(t, "--config", configPath, "moderate", "review",
		"--author", "7", "--username", "casey", "--body", "a lovely film")
	if err != nil {
		t.Fatalf("moderate review: %v", err)
	}
	if !strings.Contains(output, "state=published") || !strings.Contains(output, "score=0") {
		t.Fatalf("unexpected moderation output:\n%s", output)
	}
}

func TestModerateForbiddenContentIssuesStrike(t *testing.T) {
	configPath, modelsDir := writeTestConfig(t)
	testsupport.WriteDefaultModels(t, modelsDir, "Maria Voss")
	// All three classifiers fire on the trigger word.
	for _, name := range []string{"toxic", "offensive", "hate"} {
		testsupport.WriteTextModel(t, modelsDir, name, testsupport.TextModelDoc{
			Bias:      -5,
			Threshold: 0.5,
			Weights:   map[string]float64{"vile": 10},
		})
	}

	output, err := runCommand(t, "--config", configPath, "moderate", "review",
		"--author", "9", "--username", "troll", "--body", "vile")
	if err != nil {
		t.Fatalf("moderate review: %v", err)
	}
	if !strings.Contains(output, "state=forbidden") {
		t.Fatalf("expected forbidden outcome:\n%s", output)
	}
	if !strings.Contains(output, "Strike issued") {
		t.Fatalf("expected strike notice:\n%s", output)
	}

	// The strike is now visible to the strikes command.
	output, err = runCommand(t, "--config", configPath, "strikes", "list", "9")
	if err != nil {
		t.Fatalf("strikes list: %v", err)
	}
	if !strings.Contains(output, "1 total, 1 active") {
		t.Fatalf("unexpected strikes listing:\n%s", output)
	}
}

func TestModerateDraftSkipsScoring(t *testing.T) {
	configPath, modelsDir := writeTestConfig(t)
	testsupport.WriteDefaultModels(t, modelsDir, "Maria Voss")
	for _, name := range []string{"toxic", "offensive", "hate"} {
		testsupport.WriteTextModel(t, modelsDir, name, testsupport.TextModelDoc{
			Bias:      -5,
			Threshold: 0.5,
			Weights:   map[string]float64{"vile": 10},
		})
	}

	output, err := runCommand(t, "--config", configPath, "moderate", "review",
		"--author", "9", "--body", "vile", "--draft")
	if err != nil {
		t.Fatalf("moderate draft: %v", err)
	}
	if !strings.Contains(output, "state=draft") || !strings.Contains(output, "score=0") {
		t.Fatalf("draft must not be scored:\n%s", output)
	}
}

func TestStrikesIssueCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	output, err := runCommand(t, "--config", configPath, "strikes", "issue",
		"--kind", "review", "--target", "11", "--user", "5")
	if err != nil {
		t.Fatalf("strikes issue: %v", err)
	}
	if !strings.Contains(output, "1 active strikes") {
		t.Fatalf("unexpected issue output:\n%s", output)
	}

	// Issuing against the same target again fails loudly.
	if _, err := runCommand(t, "--config", configPath, "strikes", "issue",
		"--kind", "review", "--target", "11", "--user", "5"); err == nil {
		t.Fatal("expected duplicate strike error")
	}
}

func TestTestNotifyWithoutTopic(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	output, err := runCommand(t, "--config", configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	if !strings.Contains(output, "not configured") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}
