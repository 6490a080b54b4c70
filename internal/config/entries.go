package config

import (
	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

// Registry key names for the builtin catalog.
const (
	KeyProjectName           = "project.name"
	KeyTemplateType          = "defaults.templateType"
	KeyBuildSystem           = "defaults.buildSystem"
	KeyPackageManager        = "defaults.packageManager"
	KeyTestFramework         = "defaults.testFramework"
	KeyIncludeTests          = "defaults.includeTests"
	KeyIncludeDocumentation  = "defaults.includeDocumentation"
	KeyIncludeCodeStyleTools = "defaults.includeCodeStyleTools"
	KeyInitGit               = "defaults.initGit"
	KeyEditors               = "defaults.editors"
	KeyCiSystems             = "defaults.ciSystems"
	KeyLanguage              = "ui.language"
	KeyColorOutput           = "ui.color"
	KeyConfirmOverwrite      = "behavior.confirmOverwrite"
	KeyParallelJobs          = "behavior.parallelJobs"
	KeyNetworkProxy          = "network.proxy"
	KeyAPIToken              = "network.apiToken"
	KeyInstallID             = "app.installId"
)

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// DefaultRegistry returns the builtin catalog of every key the tool
// recognizes. It is built once at startup; registration errors here are
// programming mistakes and panic.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	entries := []Entry{
		{
			Key:         KeyProjectName,
			Type:        KindString,
			Default:     String(""),
			Category:    "project",
			Description: "Name of the project being scaffolded",
		},
		{
			Key:           KeyTemplateType,
			Type:          KindString,
			Default:       String(string(settings.TemplateConsole)),
			AllowedValues: enumStrings(settings.TemplateTypes()),
			Category:      "defaults",
			Description:   "Project template used when none is specified",
			EnvVar:        "CPP_SCAFFOLD_DEFAULT_TEMPLATE",
		},
		{
			Key:           KeyBuildSystem,
			Type:          KindString,
			Default:       String(string(settings.BuildCMake)),
			AllowedValues: enumStrings(settings.BuildSystems()),
			Category:      "defaults",
			Description:   "Build system used when none is specified",
			EnvVar:        "CPP_SCAFFOLD_DEFAULT_BUILD_SYSTEM",
		},
		{
			Key:           KeyPackageManager,
			Type:          KindString,
			Default:       String(string(settings.PackageVcpkg)),
			AllowedValues: enumStrings(settings.PackageManagers()),
			Category:      "defaults",
			Description:   "Package manager used when none is specified",
			EnvVar:        "CPP_SCAFFOLD_DEFAULT_PACKAGE_MANAGER",
		},
		{
			Key:           KeyTestFramework,
			Type:          KindString,
			Default:       String(string(settings.TestNone)),
			AllowedValues: enumStrings(settings.TestFrameworks()),
			Category:      "defaults",
			Description:   "Test framework used when none is specified",
			EnvVar:        "CPP_SCAFFOLD_DEFAULT_TEST_FRAMEWORK",
		},
		{
			Key:         KeyIncludeTests,
			Type:        KindBool,
			Default:     Bool(false),
			Category:    "defaults",
			Description: "Generate a test scaffold by default",
			EnvVar:      "CPP_SCAFFOLD_INCLUDE_TESTS",
		},
		{
			Key:         KeyIncludeDocumentation,
			Type:        KindBool,
			Default:     Bool(false),
			Category:    "defaults",
			Description: "Generate documentation boilerplate by default",
		},
		{
			Key:         KeyIncludeCodeStyleTools,
			Type:        KindBool,
			Default:     Bool(false),
			Category:    "defaults",
			Description: "Generate clang-format/clang-tidy configs by default",
		},
		{
			Key:         KeyInitGit,
			Type:        KindBool,
			Default:     Bool(true),
			Category:    "defaults",
			Description: "Initialize a git repository in new projects",
			EnvVar:      "CPP_SCAFFOLD_INIT_GIT",
		},
		{
			Key:           KeyEditors,
			Type:          KindStringList,
			Default:       Strings(),
			AllowedValues: enumStrings(settings.Editors()),
			Category:      "defaults",
			Description:   "Editor integrations emitted with new projects",
			EnvVar:        "CPP_SCAFFOLD_EDITORS",
		},
		{
			Key:           KeyCiSystems,
			Type:          KindStringList,
			Default:       Strings(),
			AllowedValues: enumStrings(settings.CiSystems()),
			Category:      "defaults",
			Description:   "CI pipeline configs emitted with new projects",
			EnvVar:        "CPP_SCAFFOLD_CI",
		},
		{
			Key:           KeyLanguage,
			Type:          KindString,
			Default:       String(string(settings.LangEnglish)),
			AllowedValues: enumStrings(settings.Languages()),
			Category:      "ui",
			Description:   "Interface language",
			EnvVar:        "CPP_SCAFFOLD_LANGUAGE",
		},
		{
			Key:         KeyColorOutput,
			Type:        KindBool,
			Default:     Bool(true),
			Category:    "ui",
			Description: "Colorize terminal output",
			EnvVar:      "CPP_SCAFFOLD_COLOR",
		},
		{
			Key:         KeyConfirmOverwrite,
			Type:        KindBool,
			Default:     Bool(true),
			Category:    "behavior",
			Description: "Ask before overwriting existing files",
		},
		{
			Key:         KeyParallelJobs,
			Type:        KindInt,
			Default:     Int(4),
			Category:    "behavior",
			Description: "Parallel jobs passed to generated build presets",
			EnvVar:      "CPP_SCAFFOLD_JOBS",
		},
		{
			Key:         KeyNetworkProxy,
			Type:        KindString,
			Default:     String(""),
			Category:    "network",
			Description: "Proxy URL for package manager bootstrap downloads",
			EnvVar:      "CPP_SCAFFOLD_PROXY",
		},
		{
			Key:         KeyAPIToken,
			Type:        KindString,
			Default:     String(""),
			Category:    "network",
			Description: "Token for authenticated template registries",
			EnvVar:      "CPP_SCAFFOLD_API_TOKEN",
			Secret:      true,
		},
		{
			Key:         KeyInstallID,
			Type:        KindString,
			Default:     String(""),
			Category:    "app",
			Description: "Stable identifier stamped at first run",
			ReadOnly:    true,
		},
	}

	for _, e := range entries {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}
