package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/AstroAir/create-cpp-project-sub000/internal/backup"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/logging"
)

func testMigrator(t *testing.T) (*Migrator, string) {
	t.Helper()
	dir := t.TempDir()
	backups := backup.NewManager(filepath.Join(dir, "backups"))
	m := NewMigrator(backups, logging.ForTest(t))
	m.now = func() time.Time { return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC) }
	return m, dir
}

func TestMigrateV1ToCurrent(t *testing.T) {
	m, dir := testMigrator(t)
	path := filepath.Join(dir, "config.json")

	// v1 document: no schemaVersion, flat "options" block with scalar
	// editor/ci fields.
	original := []byte(`{
		"options": {
			"defaults": {"buildSystem": "cmake", "editor": "vscode", "ci": "github"}
		}
	}`)
	require.NoError(t, os.WriteFile(path, original, 0o644))

	out, err := m.Migrate(path, original)
	require.NoError(t, err)

	assert.Equal(t, CurrentSchemaVersion, DetectSchemaVersion(out))
	assert.False(t, gjson.GetBytes(out, "options").Exists(), "legacy block removed")
	assert.Equal(t, "cmake", gjson.GetBytes(out, "settings.defaults.buildSystem").String())

	editors := gjson.GetBytes(out, "settings.defaults.editors")
	require.True(t, editors.IsArray())
	assert.Equal(t, "vscode", editors.Array()[0].String())
	assert.False(t, gjson.GetBytes(out, "settings.defaults.editor").Exists())

	ci := gjson.GetBytes(out, "settings.defaults.ciSystems")
	require.True(t, ci.IsArray())
	assert.Equal(t, "github", ci.Array()[0].String())

	// The migrated bytes were persisted and a backup of the original kept.
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, DetectSchemaVersion(onDisk))

	infos, err := m.backups.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "config", infos[0].Document)

	backedUp, err := m.backups.Read(infos[0].Name)
	require.NoError(t, err)
	assert.Equal(t, original, backedUp, "backup holds the pre-migration bytes")

	// The result parses cleanly.
	_, err = ParseDocument(out)
	assert.NoError(t, err)
}

func TestMigrateCurrentVersionIsNoOp(t *testing.T) {
	m, dir := testMigrator(t)
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"schemaVersion": 3, "settings": {}}`)
	out, err := m.Migrate(path, data)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	// No backup, no write.
	_, err = os.Stat(filepath.Join(dir, "backups"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestMigrateIdempotent(t *testing.T) {
	m, dir := testMigrator(t)
	path := filepath.Join(dir, "config.json")

	first, err := m.Migrate(path, []byte(`{"schemaVersion": 2, "settings": {"defaults": {"editor": "vim"}}}`))
	require.NoError(t, err)

	second, err := m.Migrate(path, first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMigrateTooNew(t *testing.T) {
	m, dir := testMigrator(t)

	_, err := m.Migrate(filepath.Join(dir, "config.json"), []byte(`{"schemaVersion": 4}`))
	assert.ErrorIs(t, err, errors.ErrSchemaTooNew)
}

func TestMigrateFailureLeavesOriginalUntouched(t *testing.T) {
	m, dir := testMigrator(t)
	path := filepath.Join(dir, "config.json")

	// v1 with a malformed options block: the v1->v2 transform rejects it.
	original := []byte(`{"options": "not an object"}`)
	require.NoError(t, os.WriteFile(path, original, 0o644))

	_, err := m.Migrate(path, original)
	require.Error(t, err)

	var merr *errors.MigrationError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 1, merr.FromVersion)
	assert.Equal(t, 2, merr.ToVersion)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, onDisk)
}

func TestMigrateMissingStep(t *testing.T) {
	m, dir := testMigrator(t)
	m.steps = map[int]MigrationFunc{2: migrateV2ToV3}

	_, err := m.Migrate(filepath.Join(dir, "config.json"), []byte(`{"schemaVersion": 1}`))
	var merr *errors.MigrationError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, 1, merr.FromVersion)
}
