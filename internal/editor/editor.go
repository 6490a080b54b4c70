// Package editor launches the user's preferred text editor on a file.
package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Open launches the user's preferred editor for the given path and waits for
// it to exit. The editor is resolved from $EDITOR, then $VISUAL, then nano,
// then vi.
func Open(path string) error {
	cmd := exec.Command(detect(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

func detect() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
