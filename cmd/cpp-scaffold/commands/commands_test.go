package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/create-cpp-project-sub000/internal/config"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
)

// resetState points the shared engine at fresh temp directories and clears
// per-test flag state. Commands share package-level cobra vars, so tests are
// serialized by the testing package's default sequential run.
func resetState(t *testing.T) {
	t.Helper()

	engineOnce = sync.Once{}
	engineInst = nil
	engineErr = nil
	configDir = t.TempDir()
	projectDir = t.TempDir()
	scopeFlag = "user"
	exportFormat = "json"
	pruneBackups = false
	profileDescription = ""
	validateFormat = "text"
	doctorFormat = "text"
	validatePlatform = true
	verbosity = 0
	quiet = false
	logFormat = ""
	logFile = ""

	t.Cleanup(func() {
		engineOnce = sync.Once{}
		engineInst = nil
		engineErr = nil
		configDir = ""
		projectDir = "."
	})
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestConfigSetAndGet(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "config", "set", "defaults.buildSystem", "meson", "--scope", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults.buildSystem = meson")

	// The write persisted: a fresh engine must see it.
	engineOnce = sync.Once{}
	engineInst = nil

	out, err = runCommand(t, "config", "get", "defaults.buildSystem")
	require.NoError(t, err)
	assert.Contains(t, out, "meson")
	assert.Contains(t, out, "(user)")
}

func TestConfigGetDefault(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "config", "get", "defaults.packageManager")
	require.NoError(t, err)
	assert.Contains(t, out, "vcpkg")
	assert.Contains(t, out, "(default)")
}

func TestConfigSetRejections(t *testing.T) {
	resetState(t)

	_, err := runCommand(t, "config", "set", "no.such.key", "x")
	assert.Error(t, err)

	_, err = runCommand(t, "config", "set", "defaults.buildSystem", "scons")
	assert.Error(t, err, "outside allowed values")

	_, err = runCommand(t, "config", "set", "app.installId", "abc")
	assert.Error(t, err, "read-only key")

	_, err = runCommand(t, "config", "set", "defaults.buildSystem", "cmake", "--scope", "nowhere")
	assert.Error(t, err)
}

func TestConfigUnset(t *testing.T) {
	resetState(t)

	_, err := runCommand(t, "config", "set", "ui.language", "german", "--scope", "user")
	require.NoError(t, err)

	out, err := runCommand(t, "config", "unset", "ui.language", "--scope", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	out, err = runCommand(t, "config", "unset", "ui.language", "--scope", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "was not set")
}

func TestConfigList(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults.buildSystem")
	assert.Contains(t, out, "cmake")
	assert.Contains(t, out, "ui.language")
}

func TestConfigExportFormats(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "config", "export", "--format", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "cmake", decoded["buildSystem"])

	resetState(t)
	out, err = runCommand(t, "config", "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "buildSystem: cmake")

	resetState(t)
	out, err = runCommand(t, "config", "export", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "buildSystem = 'cmake'")

	resetState(t)
	_, err = runCommand(t, "config", "export", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, configDir)
	assert.Contains(t, out, paths.ProjectFileName)
}

func TestProfileLifecycle(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no profiles saved")

	_, err = runCommand(t, "profile", "save", "work", "--description", "daily defaults")
	require.NoError(t, err)

	out, err = runCommand(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "work")

	out, err = runCommand(t, "profile", "show", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "daily defaults")
	assert.Contains(t, out, "cmake")

	out, err = runCommand(t, "profile", "delete", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	out, err = runCommand(t, "profile", "delete", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist")
}

func TestProfileSaveInvalidName(t *testing.T) {
	resetState(t)

	_, err := runCommand(t, "profile", "save", "default")
	assert.Error(t, err)
}

func TestProfileUseByName(t *testing.T) {
	resetState(t)

	_, err := runCommand(t, "config", "set", "defaults.buildSystem", "xmake", "--scope", "user")
	require.NoError(t, err)
	_, err = runCommand(t, "profile", "save", "xmake-setup")
	require.NoError(t, err)

	_, err = runCommand(t, "config", "set", "defaults.buildSystem", "cmake", "--scope", "user")
	require.NoError(t, err)

	out, err := runCommand(t, "profile", "use", "xmake-setup")
	require.NoError(t, err)
	assert.Contains(t, out, "now using")

	out, err = runCommand(t, "config", "get", "defaults.buildSystem")
	require.NoError(t, err)
	assert.Contains(t, out, "xmake")
}

func TestValidateCommand(t *testing.T) {
	resetState(t)

	// Defaults carry no project name; outside a project that is fine for
	// the remaining checks, which all pass.
	_, err := runCommand(t, "config", "set", "project.name", "demo-app", "--scope", "session")
	require.NoError(t, err)

	out, err := runCommand(t, "validate", "--platform-checks=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")
}

func TestValidateCommandFails(t *testing.T) {
	resetState(t)

	_, err := runCommand(t, "config", "set", "project.name", "demo-app", "--scope", "session")
	require.NoError(t, err)
	_, err = runCommand(t, "config", "set", "defaults.templateType", "embedded", "--scope", "session")
	require.NoError(t, err)
	_, err = runCommand(t, "config", "set", "defaults.buildSystem", "meson", "--scope", "session")
	require.NoError(t, err)

	out, err := runCommand(t, "validate", "--platform-checks=false")
	assert.Error(t, err)
	assert.Contains(t, out, "Validation failed")
}

func TestTemplateLifecycle(t *testing.T) {
	resetState(t)

	src := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"files": ["main.cpp"]}`), 0o644))

	_, err := runCommand(t, "template", "save", "qt-widget", src)
	require.NoError(t, err)

	out, err := runCommand(t, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "qt-widget")

	out, err = runCommand(t, "template", "show", "qt-widget")
	require.NoError(t, err)
	assert.Contains(t, out, "main.cpp")

	out, err = runCommand(t, "template", "delete", "qt-widget")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")
}

func TestDoctorCommand(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "config-root")
	assert.Contains(t, out, "0 errors")

	// A document from a newer build is an error.
	require.NoError(t, os.WriteFile(filepath.Join(configDir, paths.PreferencesFileName),
		[]byte(`{"schemaVersion": 99}`), 0o644))

	out, err = runCommand(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "schema v99")
}

func TestDoctorCommandJSON(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "doctor", "--format", "json")
	require.NoError(t, err)

	var report struct {
		Summary struct {
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.Summary.Errors)
}

func TestConfigBackups(t *testing.T) {
	resetState(t)

	out, err := runCommand(t, "config", "backups")
	require.NoError(t, err)
	assert.Contains(t, out, "no backups")

	// A legacy document on disk forces a migration, which snapshots the
	// original into the backup area.
	legacy := []byte(`{"options": {"defaults": {"buildSystem": "cmake"}}}`)
	require.NoError(t, os.WriteFile(filepath.Join(configDir, paths.ConfigFileName), legacy, 0o644))

	engineOnce = sync.Once{}
	engineInst = nil

	out, err = runCommand(t, "config", "backups")
	require.NoError(t, err)
	assert.Contains(t, out, "config")

	out, err = runCommand(t, "config", "backups", "--prune")
	require.NoError(t, err)
	assert.Contains(t, out, "pruned 0 backup(s)")
}

func TestParseScope(t *testing.T) {
	for name, want := range map[string]config.Scope{
		"session": config.ScopeSession,
		"Project": config.ScopeProject,
		" user ":  config.ScopeUser,
		"GLOBAL":  config.ScopeGlobal,
	} {
		got, err := parseScope(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseScope("cosmic")
	assert.Error(t, err)
}

func TestQuietAndVerboseConflict(t *testing.T) {
	resetState(t)
	defer func() { quiet = false; verbosity = 0 }()

	_, err := runCommand(t, "config", "list", "--quiet", "-v")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "quiet"))
}
