package validate

import (
	"encoding/json"
	"strings"
)

// Severity grades a validation message.
type Severity int

const (
	// SeverityInfo is an informational note.
	SeverityInfo Severity = iota
	// SeverityWarning is a recommended but non-blocking issue.
	SeverityWarning
	// SeverityError is a blocking validation failure.
	SeverityError
	// SeverityCritical is a blocking failure that also indicates the
	// surrounding configuration cannot be trusted.
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its name, not its ordinal.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Blocking reports whether a message of this severity fails validation.
func (s Severity) Blocking() bool {
	return s >= SeverityError
}

// Message is a single graded validation finding.
type Message struct {
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	// Component names the setting or pair of settings the finding is about.
	Component string `json:"component,omitempty"`
}

func (m Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Severity.String())
	sb.WriteString(": ")
	if m.Component != "" {
		sb.WriteString(m.Component)
		sb.WriteString(": ")
	}
	sb.WriteString(m.Message)
	return sb.String()
}

// Result aggregates the findings of one validation run.
type Result struct {
	Messages []Message `json:"messages"`
}

// Valid reports whether the run passed: false iff any message is Error or
// Critical.
func (r *Result) Valid() bool {
	if r == nil {
		return true
	}
	for _, m := range r.Messages {
		if m.Severity.Blocking() {
			return false
		}
	}
	return true
}

// MarshalJSON includes the computed validity alongside the messages so JSON
// consumers do not re-derive it.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Valid    bool      `json:"valid"`
		Messages []Message `json:"messages"`
	}{Valid: r.Valid(), Messages: r.Messages})
}

// Add appends a message.
func (r *Result) Add(m Message) {
	r.Messages = append(r.Messages, m)
}

// Merge appends all of other's messages.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Messages = append(r.Messages, other.Messages...)
}

// BySeverity returns the messages with the given severity, in order.
func (r *Result) BySeverity(s Severity) []Message {
	if r == nil {
		return nil
	}
	var out []Message
	for _, m := range r.Messages {
		if m.Severity == s {
			out = append(out, m)
		}
	}
	return out
}

// Blocking returns the Error and Critical messages, in order.
func (r *Result) Blocking() []Message {
	if r == nil {
		return nil
	}
	var out []Message
	for _, m := range r.Messages {
		if m.Severity.Blocking() {
			out = append(out, m)
		}
	}
	return out
}
