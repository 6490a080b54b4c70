package settings

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TemplateType identifies the project template a scaffold is generated from.
type TemplateType string

// Supported project templates.
const (
	TemplateConsole         TemplateType = "console"
	TemplateLibrary         TemplateType = "lib"
	TemplateHeaderOnly      TemplateType = "header-only-lib"
	TemplateMultiExecutable TemplateType = "multi-executable"
	TemplateGui             TemplateType = "gui"
	TemplateNetwork         TemplateType = "network"
	TemplateEmbedded        TemplateType = "embedded"
	TemplateWebService      TemplateType = "webservice"
	TemplateModules         TemplateType = "modules"
)

// BuildSystem identifies the build system the generated project uses.
type BuildSystem string

// Supported build systems.
const (
	BuildCMake   BuildSystem = "cmake"
	BuildMeson   BuildSystem = "meson"
	BuildBazel   BuildSystem = "bazel"
	BuildXMake   BuildSystem = "xmake"
	BuildPremake BuildSystem = "premake"
	BuildMake    BuildSystem = "make"
	BuildNinja   BuildSystem = "ninja"
)

// PackageManager identifies the C++ dependency manager wired into the scaffold.
type PackageManager string

// Supported package managers.
const (
	PackageVcpkg  PackageManager = "vcpkg"
	PackageConan  PackageManager = "conan"
	PackageSpack  PackageManager = "spack"
	PackageHunter PackageManager = "hunter"
	PackageNone   PackageManager = "none"
)

// TestFramework identifies the unit test framework added to the scaffold.
type TestFramework string

// Supported test frameworks.
const (
	TestGoogleTest TestFramework = "gtest"
	TestCatch2     TestFramework = "catch2"
	TestDoctest    TestFramework = "doctest"
	TestBoost      TestFramework = "boost"
	TestNone       TestFramework = "none"
)

// Editor identifies an editor/IDE integration emitted alongside the project.
type Editor string

// Supported editor integrations.
const (
	EditorVSCode  Editor = "vscode"
	EditorCLion   Editor = "clion"
	EditorVS      Editor = "vs"
	EditorVim     Editor = "vim"
	EditorEmacs   Editor = "emacs"
	EditorSublime Editor = "sublime"
)

// CiSystem identifies a CI pipeline configuration emitted alongside the project.
type CiSystem string

// Supported CI systems.
const (
	CiGitHub   CiSystem = "github"
	CiGitLab   CiSystem = "gitlab"
	CiTravis   CiSystem = "travis"
	CiAppVeyor CiSystem = "appveyor"
	CiAzure    CiSystem = "azure"
	CiCircleCI CiSystem = "circleci"
)

// Language identifies the interface language of the tool's own output.
type Language string

// Supported interface languages.
const (
	LangEnglish  Language = "english"
	LangChinese  Language = "chinese"
	LangSpanish  Language = "spanish"
	LangJapanese Language = "japanese"
	LangGerman   Language = "german"
	LangFrench   Language = "french"
)

var (
	templateTypes = []TemplateType{
		TemplateConsole, TemplateLibrary, TemplateHeaderOnly,
		TemplateMultiExecutable, TemplateGui, TemplateNetwork,
		TemplateEmbedded, TemplateWebService, TemplateModules,
	}
	buildSystems = []BuildSystem{
		BuildCMake, BuildMeson, BuildBazel, BuildXMake,
		BuildPremake, BuildMake, BuildNinja,
	}
	packageManagers = []PackageManager{
		PackageVcpkg, PackageConan, PackageSpack, PackageHunter, PackageNone,
	}
	testFrameworks = []TestFramework{
		TestGoogleTest, TestCatch2, TestDoctest, TestBoost, TestNone,
	}
	editors = []Editor{
		EditorVSCode, EditorCLion, EditorVS, EditorVim, EditorEmacs, EditorSublime,
	}
	ciSystems = []CiSystem{
		CiGitHub, CiGitLab, CiTravis, CiAppVeyor, CiAzure, CiCircleCI,
	}
	languages = []Language{
		LangEnglish, LangChinese, LangSpanish, LangJapanese, LangGerman, LangFrench,
	}
)

// TemplateTypes returns all supported template types.
func TemplateTypes() []TemplateType { return append([]TemplateType(nil), templateTypes...) }

// BuildSystems returns all supported build systems.
func BuildSystems() []BuildSystem { return append([]BuildSystem(nil), buildSystems...) }

// PackageManagers returns all supported package managers.
func PackageManagers() []PackageManager {
	return append([]PackageManager(nil), packageManagers...)
}

// TestFrameworks returns all supported test frameworks.
func TestFrameworks() []TestFramework { return append([]TestFramework(nil), testFrameworks...) }

// Editors returns all supported editor integrations.
func Editors() []Editor { return append([]Editor(nil), editors...) }

// CiSystems returns all supported CI systems.
func CiSystems() []CiSystem { return append([]CiSystem(nil), ciSystems...) }

// Languages returns all supported interface languages.
func Languages() []Language { return append([]Language(nil), languages...) }

func parseEnum[T ~string](what, s string, valid []T) (T, error) {
	needle := T(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range valid {
		if v == needle {
			return v, nil
		}
	}
	var zero T
	return zero, errors.Newf("unknown %s %q (valid: %s)", what, s, joinEnum(valid))
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// ParseTemplateType parses a template type name, case-insensitively.
func ParseTemplateType(s string) (TemplateType, error) {
	return parseEnum("template type", s, templateTypes)
}

// ParseBuildSystem parses a build system name, case-insensitively.
func ParseBuildSystem(s string) (BuildSystem, error) {
	return parseEnum("build system", s, buildSystems)
}

// ParsePackageManager parses a package manager name, case-insensitively.
func ParsePackageManager(s string) (PackageManager, error) {
	return parseEnum("package manager", s, packageManagers)
}

// ParseTestFramework parses a test framework name, case-insensitively.
func ParseTestFramework(s string) (TestFramework, error) {
	return parseEnum("test framework", s, testFrameworks)
}

// ParseEditor parses an editor name, case-insensitively.
func ParseEditor(s string) (Editor, error) {
	return parseEnum("editor", s, editors)
}

// ParseCiSystem parses a CI system name, case-insensitively.
func ParseCiSystem(s string) (CiSystem, error) {
	return parseEnum("CI system", s, ciSystems)
}

// ParseLanguage parses an interface language name, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	return parseEnum("language", s, languages)
}
