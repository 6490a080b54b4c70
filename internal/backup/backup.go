// Package backup manages the pre-migration backup area. Every schema
// migration snapshots the original document here before the first transform
// runs; this package owns the naming scheme, listing and retention.
package backup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
	"github.com/AstroAir/create-cpp-project-sub000/pkg/fileutil"
)

// timeFormat is the timestamp embedded in backup file names:
// <document>_backup_<timestamp>.json.
const timeFormat = "20060102T150405"

// marker separates the document base name from the timestamp.
const marker = "_backup_"

// DefaultRetentionCount is how many backups are kept per document when
// pruning.
const DefaultRetentionCount = 5

// Info describes one backup file.
type Info struct {
	// Name is the backup file name.
	Name string
	// Document is the base name of the document the backup was taken from.
	Document string
	// CreatedAt is parsed from the file name, not the filesystem.
	CreatedAt time.Time
	// Path is the absolute location of the backup file.
	Path string
	// Size is the backup size in bytes.
	Size int64
}

// Manager owns one backup directory.
type Manager struct {
	dir       string
	retention int
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithRetentionCount sets how many backups Prune keeps per document.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retention = n
		}
	}
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string, opts ...Option) *Manager {
	m := &Manager{
		dir:       dir,
		retention: DefaultRetentionCount,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the backup directory.
func (m *Manager) Dir() string { return m.dir }

// Write snapshots data as a timestamped backup of the named document and
// returns the backup path. The document name is the base file name without
// extension, e.g. "config" for config.json.
func (m *Manager) Write(document string, data []byte) (string, error) {
	if document == "" || document == "." {
		document = "document"
	}
	if err := paths.EnsureDir(m.dir, 0); err != nil {
		return "", errors.Wrap(err, "creating backup directory")
	}

	name := document + marker + m.now().UTC().Format(timeFormat) + ".json"
	path := filepath.Join(m.dir, name)
	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing backup")
	}
	return path, nil
}

// List returns all backups, newest first. Files that do not follow the
// naming scheme are ignored. A missing directory lists empty.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info.Path = filepath.Join(m.dir, entry.Name())
		if fi, err := entry.Info(); err == nil {
			info.Size = fi.Size()
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Prune removes backups beyond the retention count, per document, oldest
// first. It returns how many files were removed.
func (m *Manager) Prune() (int, error) {
	infos, err := m.List()
	if err != nil {
		return 0, err
	}

	perDocument := make(map[string]int)
	removed := 0
	for _, info := range infos {
		perDocument[info.Document]++
		if perDocument[info.Document] <= m.retention {
			continue
		}
		if err := os.Remove(info.Path); err != nil {
			return removed, errors.Wrapf(err, "removing backup %s", info.Name)
		}
		removed++
	}
	return removed, nil
}

// Read returns the contents of the named backup.
func (m *Manager) Read(name string) ([]byte, error) {
	if _, ok := parseName(name); !ok {
		return nil, errors.Newf("%q is not a backup file name", name)
	}
	data, err := fileutil.ReadFileWithLimit(filepath.Join(m.dir, name))
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", name)
	}
	return data, nil
}

// parseName splits <document>_backup_<timestamp>.json.
func parseName(name string) (Info, bool) {
	base, found := strings.CutSuffix(name, ".json")
	if !found {
		return Info{}, false
	}
	idx := strings.LastIndex(base, marker)
	if idx <= 0 {
		return Info{}, false
	}
	document := base[:idx]
	ts, err := time.Parse(timeFormat, base[idx+len(marker):])
	if err != nil {
		return Info{}, false
	}
	return Info{Name: name, Document: document, CreatedAt: ts}, true
}
