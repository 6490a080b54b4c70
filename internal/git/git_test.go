package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsRepository(t *testing.T) {
	dir := t.TempDir()

	if IsRepository(dir) {
		t.Error("expected false for a plain directory")
	}

	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !IsRepository(dir) {
		t.Error("expected true once .git exists")
	}
}

func TestInit_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !Available() {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !IsRepository(dir) {
		t.Fatal("Init did not create a repository")
	}

	// Idempotent on an existing repository.
	if err := Init(dir); err != nil {
		t.Errorf("second Init() error = %v", err)
	}

	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	if err := os.WriteFile(filepath.Join(dir, "main.cpp"), []byte("int main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := InitialCommit(dir, "scaffold my-app"); err != nil {
		t.Fatalf("InitialCommit() error = %v", err)
	}

	out := gitOutput(t, dir, "log", "--oneline")
	if !strings.Contains(out, "scaffold my-app") {
		t.Errorf("commit message missing from log: %s", out)
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s failed: %v\nOutput: %s", strings.Join(args, " "), err, out)
	}
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\nOutput: %s", strings.Join(args, " "), err, out)
	}
	return string(out)
}
