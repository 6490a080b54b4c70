package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/AstroAir/create-cpp-project-sub000/internal/backup"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/pkg/fileutil"
)

// MigrationFunc upgrades raw document bytes by exactly one schema version.
// Transforms are pure: they return new bytes and never touch disk.
type MigrationFunc func(data []byte) ([]byte, error)

// Migrator upgrades persisted documents to CurrentSchemaVersion.
// A timestamped backup of the original document is written before the first
// transform runs; on any failure the primary document is left untouched.
type Migrator struct {
	backups *backup.Manager
	steps   map[int]MigrationFunc
	now     func() time.Time
	logger  *slog.Logger
}

// NewMigrator creates a migrator snapshotting originals through backups.
func NewMigrator(backups *backup.Manager, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		backups: backups,
		steps: map[int]MigrationFunc{
			1: migrateV1ToV2,
			2: migrateV2ToV3,
		},
		now:    time.Now,
		logger: logger,
	}
}

// Migrate upgrades the document bytes to CurrentSchemaVersion.
//
// A document already at the current version is returned unchanged with no
// backup created. A document from a newer build fails with ErrSchemaTooNew.
// Otherwise the original bytes are backed up, each registered step is applied
// in order, and the result is persisted atomically to path. Any step failure
// aborts with a MigrationError and the file at path is untouched.
func (m *Migrator) Migrate(path string, data []byte) ([]byte, error) {
	version := DetectSchemaVersion(data)

	if version > CurrentSchemaVersion {
		return nil, errors.Wrapf(errors.ErrSchemaTooNew,
			"document is v%d, this build understands up to v%d", version, CurrentSchemaVersion)
	}
	if version == CurrentSchemaVersion {
		return data, nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if _, err := m.backups.Write(base, data); err != nil {
		return nil, &errors.MigrationError{
			FromVersion: version,
			ToVersion:   CurrentSchemaVersion,
			Cause:       errors.Wrap(err, "writing backup"),
		}
	}

	for version < CurrentSchemaVersion {
		step, ok := m.steps[version]
		if !ok {
			return nil, &errors.MigrationError{
				FromVersion: version,
				ToVersion:   version + 1,
				Cause:       errors.Newf("no registered transform for v%d", version),
			}
		}

		out, err := step(data)
		if err != nil {
			return nil, &errors.MigrationError{
				FromVersion: version,
				ToVersion:   version + 1,
				Cause:       err,
			}
		}

		out, err = sjson.SetBytes(out, "schemaVersion", version+1)
		if err != nil {
			return nil, &errors.MigrationError{
				FromVersion: version,
				ToVersion:   version + 1,
				Cause:       errors.Wrap(err, "stamping schema version"),
			}
		}

		m.logger.Debug("applied schema migration", "from", version, "to", version+1)
		data = out
		version++
	}

	stamped, err := sjson.SetBytes(data, "lastModified", m.now().UTC().Format(time.RFC3339))
	if err == nil {
		data = stamped
	}

	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return nil, &errors.MigrationError{
			FromVersion: DetectSchemaVersion(data),
			ToVersion:   CurrentSchemaVersion,
			Cause:       errors.Wrap(err, "persisting migrated document"),
		}
	}

	return data, nil
}

// migrateV1ToV2 moves the legacy top-level "options" block under "settings".
func migrateV1ToV2(data []byte) ([]byte, error) {
	options := gjson.GetBytes(data, "options")
	if !options.Exists() {
		if gjson.GetBytes(data, "settings").Exists() {
			return data, nil
		}
		return sjson.SetRawBytes(data, "settings", []byte("{}"))
	}
	if !options.IsObject() {
		return nil, errors.Newf("legacy options block is not an object")
	}

	out, err := sjson.SetRawBytes(data, "settings", []byte(options.Raw))
	if err != nil {
		return nil, errors.Wrap(err, "moving options block")
	}
	return sjson.DeleteBytes(out, "options")
}

// migrateV2ToV3 widens the scalar editor/ci fields to string lists.
func migrateV2ToV3(data []byte) ([]byte, error) {
	renames := []struct{ from, to string }{
		{"settings.defaults.editor", "settings.defaults.editors"},
		{"settings.defaults.ci", "settings.defaults.ciSystems"},
	}

	var err error
	for _, r := range renames {
		old := gjson.GetBytes(data, r.from)
		if !old.Exists() {
			continue
		}
		if old.Type != gjson.String {
			return nil, errors.Newf("%s is not a string", r.from)
		}

		data, err = sjson.SetBytes(data, r.to, []string{old.String()})
		if err != nil {
			return nil, errors.Wrapf(err, "widening %s", r.from)
		}
		data, err = sjson.DeleteBytes(data, r.from)
		if err != nil {
			return nil, errors.Wrapf(err, "removing %s", r.from)
		}
	}
	return data, nil
}
