package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubCheck struct {
	name   string
	status Severity
}

func (s *stubCheck) Name() string     { return s.name }
func (s *stubCheck) Category() string { return "test" }
func (s *stubCheck) Run() *CheckResult {
	return &CheckResult{Name: s.name, Category: "test", Status: s.status}
}

func TestRunnerAggregatesSummary(t *testing.T) {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "a", status: SeverityPass})
	r.AddCheck(&stubCheck{name: "b", status: SeverityInfo})
	r.AddCheck(&stubCheck{name: "c", status: SeverityWarning})
	r.AddCheck(&stubCheck{name: "d", status: SeverityError})

	report := r.Run()

	assert.Len(t, report.Results, 4)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Info)
	assert.Equal(t, 1, report.Summary.Warnings)
	assert.Equal(t, 1, report.Summary.Errors)
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())
	assert.False(t, report.Timestamp.IsZero())

	// Results keep registration order.
	assert.Equal(t, "a", report.Results[0].Name)
	assert.Equal(t, "d", report.Results[3].Name)
}

func TestEmptyRunnerReportsClean(t *testing.T) {
	report := NewRunner().Run()
	assert.Empty(t, report.Results)
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "pass", SeverityPass.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
