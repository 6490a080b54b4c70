package validate

import (
	"fmt"
	"strings"

	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

// CompatibilityInfo is the verdict of one pairwise compatibility check.
// Alternatives suggest replacements for the second member of the pair.
type CompatibilityInfo struct {
	Compatible   bool     `json:"compatible"`
	Reason       string   `json:"reason,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
	Workaround   string   `json:"workaround,omitempty"`
}

var compatible = CompatibilityInfo{Compatible: true}

type pair struct{ a, b string }

// templateBuildRules lists the template/build-system pairs that deviate from
// the default (compatible). An entry with Compatible false and no Workaround
// is a hard error; one with a Workaround is merely suboptimal.
var templateBuildRules = map[pair]CompatibilityInfo{
	{string(settings.TemplateEmbedded), string(settings.BuildMeson)}: {
		Reason:       "embedded targets need the generated cross-compilation toolchain files, which only the cmake scaffolding produces",
		Alternatives: []string{"cmake"},
	},
	{string(settings.TemplateEmbedded), string(settings.BuildBazel)}: {
		Reason:       "embedded targets need the generated cross-compilation toolchain files, which only the cmake scaffolding produces",
		Alternatives: []string{"cmake"},
	},
	{string(settings.TemplateModules), string(settings.BuildMake)}: {
		Reason:       "C++20 module dependency scanning is not expressible in plain makefiles",
		Alternatives: []string{"cmake"},
	},
	{string(settings.TemplateModules), string(settings.BuildPremake)}: {
		Reason:       "premake has no support for C++20 module dependency scanning",
		Alternatives: []string{"cmake"},
	},
	{string(settings.TemplateGui), string(settings.BuildMake)}: {
		Reason:     "Qt meta-object and resource compilation rules are not generated for plain makefiles",
		Workaround: "write the moc/uic/rcc rules by hand after generation",
	},
}

// templatePackageRules lists template/package-manager deviations.
var templatePackageRules = map[pair]CompatibilityInfo{
	{string(settings.TemplateGui), string(settings.PackageNone)}: {
		Reason:     "the GUI template depends on Qt, which will not be fetched without a package manager",
		Workaround: "install Qt system-wide and point the build at it",
	},
	{string(settings.TemplateWebService), string(settings.PackageNone)}: {
		Reason:     "the web service template depends on third-party HTTP and JSON libraries",
		Workaround: "vendor the dependencies manually",
	},
}

// buildPackageRules lists build-system/package-manager deviations.
var buildPackageRules = map[pair]CompatibilityInfo{
	{string(settings.BuildBazel), string(settings.PackageVcpkg)}: {
		Reason:       "bazel manages third-party sources through its own workspace rules",
		Alternatives: []string{"none"},
	},
	{string(settings.BuildBazel), string(settings.PackageConan)}: {
		Reason:       "bazel manages third-party sources through its own workspace rules",
		Alternatives: []string{"none"},
	},
	{string(settings.BuildBazel), string(settings.PackageHunter)}: {
		Reason:       "bazel manages third-party sources through its own workspace rules",
		Alternatives: []string{"none"},
	},
}

// testBuildRules lists test-framework/build-system deviations.
var testBuildRules = map[pair]CompatibilityInfo{
	{string(settings.TestBoost), string(settings.BuildPremake)}: {
		Reason:     "premake ships no Boost.Test discovery module",
		Workaround: "register the test executables manually in the premake script",
	},
	{string(settings.TestBoost), string(settings.BuildXMake)}: {
		Reason:     "xmake ships no Boost.Test discovery module",
		Workaround: "register the test executables manually in the xmake script",
	},
}

func lookupRule(rules map[pair]CompatibilityInfo, a, b string) CompatibilityInfo {
	if info, ok := rules[pair{a, b}]; ok {
		return info
	}
	return compatible
}

// CheckTemplateWithBuildSystem reports whether the template type works with
// the chosen build system.
func CheckTemplateWithBuildSystem(t settings.TemplateType, b settings.BuildSystem) CompatibilityInfo {
	return lookupRule(templateBuildRules, string(t), string(b))
}

// CheckTemplateWithPackageManager reports whether the template type works
// with the chosen package manager.
func CheckTemplateWithPackageManager(t settings.TemplateType, p settings.PackageManager) CompatibilityInfo {
	return lookupRule(templatePackageRules, string(t), string(p))
}

// CheckBuildSystemWithPackageManager reports whether the build system works
// with the chosen package manager. Hunter is CMake-only regardless of the
// rest of the table.
func CheckBuildSystemWithPackageManager(b settings.BuildSystem, p settings.PackageManager) CompatibilityInfo {
	if p == settings.PackageHunter && b != settings.BuildCMake {
		return CompatibilityInfo{
			Reason:       "hunter is implemented as a cmake module and cannot drive other build systems",
			Alternatives: []string{"vcpkg", "conan"},
		}
	}
	return lookupRule(buildPackageRules, string(b), string(p))
}

// CheckTestFrameworkWithBuildSystem reports whether the test framework works
// with the chosen build system.
func CheckTestFrameworkWithBuildSystem(f settings.TestFramework, b settings.BuildSystem) CompatibilityInfo {
	if f == settings.TestNone {
		return compatible
	}
	return lookupRule(testBuildRules, string(f), string(b))
}

// message converts a non-compatible verdict into a graded finding: Error when
// there is no workaround, Warning when the combination merely needs manual
// steps.
func (c CompatibilityInfo) message(component string) Message {
	severity := SeverityError
	if c.Workaround != "" {
		severity = SeverityWarning
	}

	suggestion := c.Workaround
	if suggestion == "" && len(c.Alternatives) > 0 {
		suggestion = fmt.Sprintf("use %s instead", strings.Join(c.Alternatives, " or "))
	}

	return Message{
		Severity:   severity,
		Category:   "compatibility",
		Component:  component,
		Message:    c.Reason,
		Suggestion: suggestion,
	}
}
