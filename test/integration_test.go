// ABOUTME: Integration tests for minds CLI.
// ABOUTME: Builds the binary and runs the commit, list, delete, and export workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	mindsBinary := filepath.Join(t.TempDir(), "minds")

	buildCmd := exec.Command("go", "build", "-o", mindsBinary, "./cmd/minds")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Use temp data, config, and database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath}, args...)
		cmd := exec.Command(mindsBinary, fullArgs...)
		cmd.Env = append(os.Environ(),
			"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Commit one row per log
	output, err := run("commit", "wefe", "--excite", "3", "--energy", "5")
	if err != nil {
		t.Fatalf("Failed to commit wefe: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Saved wefe_table") || !strings.Contains(output, "sum=8") {
		t.Errorf("Expected saved WEFE row with sum 8, got: %s", output)
	}

	output, err = run("commit", "cspr", "1", "2", "3", "4", "--date", "2024-03-09", "--time", "21:15:04")
	if err != nil {
		t.Fatalf("Failed to commit cspr: %v\n%s", err, output)
	}
	id := regexp.MustCompile(`#(\d+)`).FindStringSubmatch(output)
	if id == nil {
		t.Fatalf("Expected row id in output, got: %s", output)
	}

	output, err = run("commit", "mm", "--mood", "7")
	if err != nil {
		t.Fatalf("Failed to commit mm: %v\n%s", err, output)
	}

	// Rejected commit writes nothing
	output, err = run("commit", "cspr", "--pain", "11")
	if err == nil {
		t.Errorf("Expected out of range commit to fail, got: %s", output)
	}

	// List
	output, err = run("list", "cspr")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2024-03-09") || !strings.Contains(output, "rage=4") {
		t.Errorf("Expected CSPR row in list output, got: %s", output)
	}
	if strings.Contains(output, "pain=11") {
		t.Errorf("Rejected row was stored: %s", output)
	}

	// Export
	output, err = run("export", "markdown")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Calm / Stress / Pain / Rage") {
		t.Errorf("Expected CSPR section in markdown, got: %s", output)
	}

	// Delete
	output, err = run("delete", "cspr", id[1])
	if err != nil {
		t.Fatalf("Failed to delete: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Deleted 1 row(s) from cspr_table") {
		t.Errorf("Expected delete confirmation, got: %s", output)
	}

	output, err = run("list", "cspr")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No entries found.") {
		t.Errorf("Expected empty CSPR log, got: %s", output)
	}
}
