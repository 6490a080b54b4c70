package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateType(t *testing.T) {
	tests := []struct {
		in      string
		want    TemplateType
		wantErr bool
	}{
		{"console", TemplateConsole, false},
		{"Console", TemplateConsole, false},
		{"  embedded  ", TemplateEmbedded, false},
		{"header-only-lib", TemplateHeaderOnly, false},
		{"kernel-module", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTemplateType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "template type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBuildSystem(t *testing.T) {
	got, err := ParseBuildSystem("CMake")
	require.NoError(t, err)
	assert.Equal(t, BuildCMake, got)

	_, err = ParseBuildSystem("scons")
	require.Error(t, err)
	// The error should name the valid set so the CLI can surface it directly.
	assert.Contains(t, err.Error(), "cmake")
}

func TestParseListValuedEnums(t *testing.T) {
	ed, err := ParseEditor("vscode")
	require.NoError(t, err)
	assert.Equal(t, EditorVSCode, ed)

	ci, err := ParseCiSystem("github")
	require.NoError(t, err)
	assert.Equal(t, CiGitHub, ci)

	_, err = ParseCiSystem("jenkins")
	assert.Error(t, err)
}

func TestEnumSlicesAreCopies(t *testing.T) {
	a := BuildSystems()
	a[0] = "mutated"
	assert.Equal(t, BuildCMake, BuildSystems()[0])
}

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	assert.Equal(t, TemplateConsole, opts.TemplateType)
	assert.Equal(t, BuildCMake, opts.BuildSystem)
	assert.Equal(t, PackageVcpkg, opts.PackageManager)
	assert.True(t, opts.InitGit)
	assert.Empty(t, opts.ProjectName)
}

func TestOptionsClone(t *testing.T) {
	opts := Default()
	opts.Editors = []Editor{EditorVSCode}
	opts.CiSystems = []CiSystem{CiGitHub}

	clone := opts.Clone()
	clone.Editors[0] = EditorVim
	clone.CiSystems[0] = CiGitLab

	assert.Equal(t, EditorVSCode, opts.Editors[0])
	assert.Equal(t, CiGitHub, opts.CiSystems[0])
}
