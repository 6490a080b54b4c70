package validate

import (
	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

// Rule is a named custom validation rule contributing its own findings.
type Rule struct {
	Name  string
	Check func(settings.Options) *Result
}

// Validator runs the full validation pipeline over a settings object.
// All steps always run; validation is exhaustive, never fail-fast, so one
// run reports every problem at once.
type Validator struct {
	goos          string
	platformCheck bool
	rules         []Rule
}

// Option configures a Validator.
type Option func(*Validator)

// WithPlatformChecks enables the advisory host-platform checks.
func WithPlatformChecks() Option {
	return func(v *Validator) { v.platformCheck = true }
}

// WithGOOS overrides the detected host platform. Tests use this to exercise
// platform findings deterministically.
func WithGOOS(goos string) Option {
	return func(v *Validator) { v.goos = goos }
}

// New creates a validator.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AddRule registers a custom rule. Rules run in registration order after the
// builtin checks; registering a rule under an existing name replaces that
// rule in place rather than appending a second copy.
func (v *Validator) AddRule(rule Rule) {
	for i, existing := range v.rules {
		if existing.Name == rule.Name {
			v.rules[i] = rule
			return
		}
	}
	v.rules = append(v.rules, rule)
}

// enumMembership checks that every enumerated choice is a known member.
// Settings usually arrive through the typed parsers, but hand-edited
// documents can carry anything.
func enumMembership(opts settings.Options, r *Result) {
	add := func(component, value string) {
		r.Add(Message{
			Severity:  SeverityError,
			Category:  "settings",
			Component: component,
			Message:   "unknown value " + value,
		})
	}

	if _, err := settings.ParseTemplateType(string(opts.TemplateType)); err != nil {
		add("templateType", string(opts.TemplateType))
	}
	if _, err := settings.ParseBuildSystem(string(opts.BuildSystem)); err != nil {
		add("buildSystem", string(opts.BuildSystem))
	}
	if _, err := settings.ParsePackageManager(string(opts.PackageManager)); err != nil {
		add("packageManager", string(opts.PackageManager))
	}
	if _, err := settings.ParseTestFramework(string(opts.TestFramework)); err != nil {
		add("testFramework", string(opts.TestFramework))
	}
	for _, ed := range opts.Editors {
		if _, err := settings.ParseEditor(string(ed)); err != nil {
			add("editors", string(ed))
		}
	}
	for _, ci := range opts.CiSystems {
		if _, err := settings.ParseCiSystem(string(ci)); err != nil {
			add("ciSystems", string(ci))
		}
	}
}

// Validate runs every check and aggregates the findings. The input settings
// object is never mutated.
func (v *Validator) Validate(opts settings.Options) *Result {
	opts = opts.Clone()
	r := &Result{}

	checkProjectName(opts.ProjectName, r)
	enumMembership(opts, r)

	pairs := []struct {
		component string
		info      CompatibilityInfo
	}{
		{"templateType/buildSystem", CheckTemplateWithBuildSystem(opts.TemplateType, opts.BuildSystem)},
		{"templateType/packageManager", CheckTemplateWithPackageManager(opts.TemplateType, opts.PackageManager)},
		{"buildSystem/packageManager", CheckBuildSystemWithPackageManager(opts.BuildSystem, opts.PackageManager)},
		{"testFramework/buildSystem", CheckTestFrameworkWithBuildSystem(opts.TestFramework, opts.BuildSystem)},
	}
	for _, p := range pairs {
		if !p.info.Compatible {
			r.Add(p.info.message(p.component))
		}
	}

	if v.platformCheck {
		checkPlatform(v.goos, opts, r)
	}

	for _, rule := range v.rules {
		r.Merge(rule.Check(opts))
	}

	return r
}
