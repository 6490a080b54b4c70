package validate

import (
	"fmt"
	"strings"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

const (
	// MaxProjectNameLength is the hard upper bound on project names.
	MaxProjectNameLength = 100
	// Recommended length range; names outside it warn but do not fail.
	recommendedNameMin = 3
	recommendedNameMax = 50
)

// windowsDeviceNames are file names Windows reserves regardless of extension.
// Project names matching one case-insensitively would produce a directory
// that cannot be created there.
var windowsDeviceNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

const nameCategory = "project-name"

// checkProjectName validates the project name grammar: 1-100 characters of
// [A-Za-z0-9_-], first character a letter or underscore, no trailing dash,
// and not a reserved Windows device name. Findings accumulate into r.
func checkProjectName(name string, r *Result) {
	if name == "" {
		r.Add(Message{
			Severity:   SeverityError,
			Category:   nameCategory,
			Component:  "projectName",
			Message:    "project name is empty",
			Suggestion: "choose a name of letters, digits, '-' and '_'",
		})
		return
	}

	if len(name) > MaxProjectNameLength {
		r.Add(Message{
			Severity:  SeverityError,
			Category:  nameCategory,
			Component: "projectName",
			Message:   fmt.Sprintf("project name exceeds %d characters", MaxProjectNameLength),
		})
	}

	first := name[0]
	if !isLetter(first) && first != '_' {
		r.Add(Message{
			Severity:  SeverityError,
			Category:  nameCategory,
			Component: "projectName",
			Message:   fmt.Sprintf("project name %q must start with a letter or underscore", name),
		})
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isLetter(c) && !isDigit(c) && c != '-' && c != '_' {
			r.Add(Message{
				Severity:   SeverityError,
				Category:   nameCategory,
				Component:  "projectName",
				Message:    fmt.Sprintf("project name %q contains invalid character %q", name, string(c)),
				Suggestion: "use only letters, digits, '-' and '_'",
			})
			break
		}
	}

	if strings.HasSuffix(name, "-") {
		r.Add(Message{
			Severity:  SeverityError,
			Category:  nameCategory,
			Component: "projectName",
			Message:   fmt.Sprintf("project name %q must not end with '-'", name),
		})
	}

	if _, reserved := windowsDeviceNames[strings.ToLower(name)]; reserved {
		r.Add(Message{
			Severity:   SeverityError,
			Category:   nameCategory,
			Component:  "projectName",
			Message:    fmt.Sprintf("project name %q is a reserved device name on Windows", name),
			Suggestion: "pick a different name; this one cannot be a directory on Windows",
		})
	}

	if len(name) < recommendedNameMin || len(name) > recommendedNameMax {
		r.Add(Message{
			Severity:  SeverityWarning,
			Category:  nameCategory,
			Component: "projectName",
			Message: fmt.Sprintf("project name length %d is outside the recommended %d-%d range",
				len(name), recommendedNameMin, recommendedNameMax),
		})
	}
}

// ProjectName runs only the project-name checks and returns the first
// blocking finding as an error, or nil. Interactive prompts use this for
// per-field feedback before the full pipeline runs.
func ProjectName(name string) error {
	r := &Result{}
	checkProjectName(name, r)
	if blocking := r.Blocking(); len(blocking) > 0 {
		return errors.New(blocking[0].Message)
	}
	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
