// Package git initializes version control for generated projects.
package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepository reports whether dir already carries a .git directory.
func IsRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Init creates an empty repository in dir. A directory that is already a
// repository is left alone.
func Init(dir string) error {
	if !Available() {
		return errors.New("git is not installed")
	}
	if IsRepository(dir) {
		return nil
	}
	if err := run(dir, "init", "--quiet"); err != nil {
		return errors.Wrap(err, "git init failed")
	}
	return nil
}

// InitialCommit stages everything in dir and records one commit. It fails
// when the repository has no committer identity configured; callers treat
// that as advisory, the generated project is complete without the commit.
func InitialCommit(dir, message string) error {
	if message == "" {
		message = "Initial commit"
	}
	if err := run(dir, "add", "--all"); err != nil {
		return errors.Wrap(err, "git add failed")
	}
	if err := run(dir, "commit", "--quiet", "--message", message); err != nil {
		return errors.Wrap(err, "git commit failed")
	}
	return nil
}

func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Newf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(out)))
	}
	return nil
}
