package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format selects the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter renders validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report writes the result in the reporter's format.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(result), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) error {
	if len(result.Messages) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed"))
		return nil
	}

	blocking := result.Blocking()
	warnings := result.BySeverity(SeverityWarning)
	infos := result.BySeverity(SeverityInfo)

	var summary []string
	if len(blocking) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(blocking)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	if len(infos) > 0 {
		summary = append(summary, fmt.Sprintf("%d note(s)", len(infos)))
	}

	if result.Valid() {
		fmt.Fprintf(r.out, "%s %s\n\n", color.GreenString("✓ Validation passed with"), strings.Join(summary, ", "))
	} else {
		fmt.Fprintf(r.out, "Validation failed: %s\n\n", strings.Join(summary, ", "))
	}

	r.printGroup("Errors:", blocking, color.FgRed)
	r.printGroup("Warnings:", warnings, color.FgYellow)
	r.printGroup("Notes:", infos, color.FgCyan)
	return nil
}

func (r *Reporter) printGroup(heading string, messages []Message, c color.Attribute) {
	if len(messages) == 0 {
		return
	}

	printer := color.New(c).SprintFunc()
	fmt.Fprintln(r.out, heading)
	for _, m := range messages {
		var sb strings.Builder
		sb.WriteString("  • ")
		if m.Component != "" {
			sb.WriteString(printer(m.Component))
			sb.WriteString(": ")
		}
		sb.WriteString(m.Message)
		if m.Suggestion != "" {
			sb.WriteString(" (")
			sb.WriteString(m.Suggestion)
			sb.WriteString(")")
		}
		fmt.Fprintln(r.out, sb.String())
	}
	fmt.Fprintln(r.out)
}
