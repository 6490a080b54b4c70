// Package validate checks a resolved settings object before any scaffolding
// runs: project-name grammar, pairwise compatibility between enumerated
// choices, advisory host-platform findings and caller-registered custom
// rules. Every check always runs so one pass reports every problem.
package validate
