package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

func TestCheckTemplateWithBuildSystem(t *testing.T) {
	info := CheckTemplateWithBuildSystem(settings.TemplateEmbedded, settings.BuildMeson)
	assert.False(t, info.Compatible)
	assert.Equal(t, []string{"cmake"}, info.Alternatives)
	assert.NotEmpty(t, info.Reason)

	info = CheckTemplateWithBuildSystem(settings.TemplateConsole, settings.BuildCMake)
	assert.True(t, info.Compatible)

	// Suboptimal pairs carry a workaround instead of alternatives.
	info = CheckTemplateWithBuildSystem(settings.TemplateGui, settings.BuildMake)
	assert.False(t, info.Compatible)
	assert.NotEmpty(t, info.Workaround)
}

func TestCheckBuildSystemWithPackageManager(t *testing.T) {
	info := CheckBuildSystemWithPackageManager(settings.BuildBazel, settings.PackageVcpkg)
	assert.False(t, info.Compatible)
	assert.Equal(t, []string{"none"}, info.Alternatives)

	// Hunter only works under cmake, whatever the table says.
	info = CheckBuildSystemWithPackageManager(settings.BuildMeson, settings.PackageHunter)
	assert.False(t, info.Compatible)
	assert.Contains(t, info.Alternatives, "vcpkg")

	info = CheckBuildSystemWithPackageManager(settings.BuildCMake, settings.PackageHunter)
	assert.True(t, info.Compatible)
}

func TestCheckTestFrameworkWithBuildSystem(t *testing.T) {
	info := CheckTestFrameworkWithBuildSystem(settings.TestBoost, settings.BuildPremake)
	assert.False(t, info.Compatible)
	assert.NotEmpty(t, info.Workaround, "suboptimal, not unsupported")

	assert.True(t, CheckTestFrameworkWithBuildSystem(settings.TestGoogleTest, settings.BuildMeson).Compatible)
	assert.True(t, CheckTestFrameworkWithBuildSystem(settings.TestNone, settings.BuildPremake).Compatible)
}

func TestCompatibilitySeverityGrading(t *testing.T) {
	// No workaround: blocking error.
	hard := CheckTemplateWithBuildSystem(settings.TemplateEmbedded, settings.BuildBazel)
	assert.Equal(t, SeverityError, hard.message("templateType/buildSystem").Severity)

	// Workaround present: warning only.
	soft := CheckTemplateWithPackageManager(settings.TemplateGui, settings.PackageNone)
	assert.Equal(t, SeverityWarning, soft.message("templateType/packageManager").Severity)
}
