package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG config home.
const AppName = "cpp-scaffold"

// ConfigDirEnv overrides the config root. Used for test isolation and
// sandboxed environments; never set by the tool itself.
const ConfigDirEnv = "CPP_SCAFFOLD_CONFIG_DIR"

// File and directory names under the config root.
const (
	ConfigFileName      = "config.json"
	PreferencesFileName = "preferences.json"
	ProfilesDirName     = "profiles"
	TemplatesDirName    = "templates"
	BackupsDirName      = "backups"
)

// ProjectFileName is the project-scope document, stored in the project
// directory rather than the config root.
const ProjectFileName = ".cpp-scaffold.json"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// ConfigRoot returns the directory holding all persisted engine state.
// The CPP_SCAFFOLD_CONFIG_DIR environment variable takes precedence;
// otherwise the XDG config home is used (~/.config/cpp-scaffold on Linux).
func ConfigRoot() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ConfigFile returns the path of the Global scope document.
func ConfigFile() string {
	return filepath.Join(ConfigRoot(), ConfigFileName)
}

// PreferencesFile returns the path of the User scope document.
func PreferencesFile() string {
	return filepath.Join(ConfigRoot(), PreferencesFileName)
}

// ProfilesDir returns the directory holding saved profiles.
func ProfilesDir() string {
	return filepath.Join(ConfigRoot(), ProfilesDirName)
}

// TemplatesDir returns the directory holding custom template metadata.
func TemplatesDir() string {
	return filepath.Join(ConfigRoot(), TemplatesDirName)
}

// BackupsDir returns the directory holding pre-migration document backups.
func BackupsDir() string {
	return filepath.Join(ConfigRoot(), BackupsDirName)
}

// ProjectFile returns the path of the Project scope document for projectDir.
func ProjectFile(projectDir string) string {
	return filepath.Join(projectDir, ProjectFileName)
}

// EnsureDir creates the directory and any necessary parents with the given
// permissions. If perm is 0, DefaultDirPerm (0700) is used.
// Idempotent; returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}
