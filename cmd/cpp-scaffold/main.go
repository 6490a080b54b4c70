// Package main is the entry point for the cpp-scaffold CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/AstroAir/create-cpp-project-sub000/cmd/cpp-scaffold/commands"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	code := errors.ExitUser
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		// A bare exit code carries no message; the command already
		// reported its findings.
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("Hint:"), exitErr.Suggestion)
		}
	} else {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	}
	os.Exit(code)
}
