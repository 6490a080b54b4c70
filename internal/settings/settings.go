// Package settings defines the resolved options record handed to project
// generation collaborators, together with the enumerations of every user
// choice the tool recognizes.
package settings

// Options is the fully resolved settings object for one scaffold invocation.
// The configuration engine materializes it from precedence-resolved keys or
// from a loaded profile; the validator and the generators consume it.
type Options struct {
	ProjectName    string         `json:"projectName" yaml:"projectName" toml:"projectName"`
	TemplateType   TemplateType   `json:"templateType" yaml:"templateType" toml:"templateType"`
	BuildSystem    BuildSystem    `json:"buildSystem" yaml:"buildSystem" toml:"buildSystem"`
	PackageManager PackageManager `json:"packageManager" yaml:"packageManager" toml:"packageManager"`
	TestFramework  TestFramework  `json:"testFramework" yaml:"testFramework" toml:"testFramework"`

	IncludeTests          bool `json:"includeTests" yaml:"includeTests" toml:"includeTests"`
	IncludeDocumentation  bool `json:"includeDocumentation" yaml:"includeDocumentation" toml:"includeDocumentation"`
	IncludeCodeStyleTools bool `json:"includeCodeStyleTools" yaml:"includeCodeStyleTools" toml:"includeCodeStyleTools"`
	InitGit               bool `json:"initGit" yaml:"initGit" toml:"initGit"`

	Editors   []Editor   `json:"editors,omitempty" yaml:"editors,omitempty" toml:"editors,omitempty"`
	CiSystems []CiSystem `json:"ciSystems,omitempty" yaml:"ciSystems,omitempty" toml:"ciSystems,omitempty"`

	Language Language `json:"language" yaml:"language" toml:"language"`
}

// Default returns the options used when no source provides a value.
// These mirror the registry defaults; the engine layers user choices on top.
func Default() Options {
	return Options{
		TemplateType:   TemplateConsole,
		BuildSystem:    BuildCMake,
		PackageManager: PackageVcpkg,
		TestFramework:  TestNone,
		IncludeTests:   false,
		InitGit:        true,
		Language:       LangEnglish,
	}
}

// Clone returns a deep copy of the options. The validator relies on this to
// guarantee it never mutates a caller's settings object.
func (o Options) Clone() Options {
	out := o
	out.Editors = append([]Editor(nil), o.Editors...)
	out.CiSystems = append([]CiSystem(nil), o.CiSystems...)
	return out
}
