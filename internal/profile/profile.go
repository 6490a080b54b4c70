// Package profile implements named, persisted snapshots of a complete
// settings object. Profiles are independent of the scope hierarchy: loading
// one materializes its settings directly instead of joining precedence
// resolution.
package profile

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
	"github.com/AstroAir/create-cpp-project-sub000/pkg/fileutil"
)

// MaxNameLength is the maximum length of a profile name.
const MaxNameLength = 64

// nameRe is the profile name grammar. Names that pass it are safe to use
// verbatim as file names.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// reservedNames may not be used as profile names.
var reservedNames = map[string]struct{}{
	"default": {},
	"system":  {},
	"global":  {},
	"temp":    {},
	"tmp":     {},
}

// Profile is a named snapshot of a full settings object.
type Profile struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Settings      settings.Options `json:"settings"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastModified  time.Time        `json:"lastModified"`
	SchemaVersion int              `json:"schemaVersion"`
}

// ValidateName checks a profile name: 1-64 characters of [A-Za-z0-9_-],
// and not one of the reserved names. Violations fail with ErrInvalidName.
func ValidateName(name string) error {
	if name == "" {
		return errors.Wrap(errors.ErrInvalidName, "empty profile name")
	}
	if len(name) > MaxNameLength {
		return errors.Wrapf(errors.ErrInvalidName, "profile name exceeds %d characters", MaxNameLength)
	}
	if !nameRe.MatchString(name) {
		return errors.Wrapf(errors.ErrInvalidName,
			"profile name %q may only contain letters, digits, '-' and '_'", name)
	}
	if _, reserved := reservedNames[strings.ToLower(name)]; reserved {
		return errors.Wrapf(errors.ErrInvalidName, "profile name %q is reserved", name)
	}
	return nil
}

// Manager performs profile CRUD against one profile directory, one JSON file
// per profile. Mutations are serialized behind a single mutex.
type Manager struct {
	mu            sync.Mutex
	dir           string
	schemaVersion int
	logger        *slog.Logger
}

// NewManager creates a manager rooted at dir. schemaVersion is stamped on
// saved profiles and compared on load.
func NewManager(dir string, schemaVersion int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{dir: dir, schemaVersion: schemaVersion, logger: logger}
}

// Save persists opts under name, creating or overwriting the profile file.
// The name is validated before any I/O. Overwriting preserves the original
// creation time.
func (m *Manager) Save(name, description string, opts settings.Options) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := paths.EnsureDir(m.dir, 0); err != nil {
		return errors.Wrap(err, "creating profile directory")
	}

	now := time.Now().UTC()
	p := Profile{
		Name:          name,
		Description:   description,
		Settings:      opts.Clone(),
		CreatedAt:     now,
		LastModified:  now,
		SchemaVersion: m.schemaVersion,
	}

	// Keep the original creation time when overwriting.
	if existing, err := m.read(name); err == nil {
		p.CreatedAt = existing.CreatedAt
	}

	if err := fileutil.AtomicWriteJSON(m.path(name), &p); err != nil {
		return errors.Wrapf(err, "saving profile %q", name)
	}
	return nil
}

// Load returns the named profile. A profile written by a newer build fails
// with ErrSchemaTooNew; one written by an older build is returned un-migrated
// with a warning logged (migration of profiles is explicit, via re-save).
// A missing profile fails with ErrNotFound.
func (m *Manager) Load(name string) (*Profile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.read(name)
	if err != nil {
		return nil, err
	}

	if p.SchemaVersion < m.schemaVersion {
		m.logger.Warn("profile uses an older schema; re-save to upgrade",
			"profile", name, "have", p.SchemaVersion, "want", m.schemaVersion)
	}
	return p, nil
}

// List returns the names of all saved profiles, sorted for determinism.
// A missing profile directory yields an empty list, not an error.
func (m *Manager) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading profile directory")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named profile, reporting whether it existed.
// Deleting a missing profile returns false, not an error.
func (m *Manager) Delete(name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := os.Remove(m.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "deleting profile %q", name)
	}
	return true, nil
}

// Path returns where the named profile is stored. The file may not exist.
func (m *Manager) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return m.path(name), nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+".json")
}

// read loads and decodes a profile file. Callers hold the mutex.
func (m *Manager) read(name string) (*Profile, error) {
	data, err := fileutil.ReadFileWithLimit(m.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "profile %q", name)
		}
		return nil, errors.Wrapf(err, "reading profile %q", name)
	}

	if v := gjson.GetBytes(data, "schemaVersion"); v.Exists() && int(v.Int()) > m.schemaVersion {
		return nil, errors.Wrapf(errors.ErrSchemaTooNew,
			"profile %q is v%d, this build understands up to v%d", name, v.Int(), m.schemaVersion)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "decoding profile %q", name)
	}
	if p.SchemaVersion == 0 {
		p.SchemaVersion = 1
	}
	return &p, nil
}
