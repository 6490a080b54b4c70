package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/create-cpp-project-sub000/internal/backup"
	"github.com/AstroAir/create-cpp-project-sub000/internal/profile"
	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

func TestConfigRootCheck(t *testing.T) {
	dir := t.TempDir()

	result := (&ConfigRootCheck{Root: dir}).Run()
	assert.Equal(t, SeverityPass, result.Status)

	result = (&ConfigRootCheck{Root: filepath.Join(dir, "missing")}).Run()
	assert.Equal(t, SeverityInfo, result.Status)

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	result = (&ConfigRootCheck{Root: file}).Run()
	assert.Equal(t, SeverityError, result.Status)
}

func TestDocumentCheck(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name string
		path string
		want Severity
	}{
		{"missing", filepath.Join(dir, "nope.json"), SeverityInfo},
		{"current", write("ok.json", `{"schemaVersion": 3, "settings": {}}`), SeverityPass},
		{"legacy", write("old.json", `{"options": {}}`), SeverityWarning},
		{"too new", write("new.json", `{"schemaVersion": 4}`), SeverityError},
		{"bad settings", write("bad.json", `{"schemaVersion": 3, "settings": {"x": 3.5}}`), SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (&DocumentCheck{Label: "global", Path: tt.path}).Run()
			assert.Equal(t, tt.want, result.Status, result.Message)
		})
	}
}

func TestProfilesCheck(t *testing.T) {
	dir := t.TempDir()
	m := profile.NewManager(dir, 3, nil)

	result := (&ProfilesCheck{Manager: m}).Run()
	assert.Equal(t, SeverityInfo, result.Status)

	require.NoError(t, m.Save("work", "", settings.Default()))
	result = (&ProfilesCheck{Manager: m}).Run()
	assert.Equal(t, SeverityPass, result.Status)

	// A corrupt profile file fails the check.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	result = (&ProfilesCheck{Manager: m}).Run()
	assert.Equal(t, SeverityError, result.Status)
	assert.Contains(t, result.Message, "broken")
}

func TestBackupsCheck(t *testing.T) {
	m := backup.NewManager(t.TempDir())

	result := (&BackupsCheck{Manager: m}).Run()
	assert.Equal(t, SeverityPass, result.Status)

	for i := 0; i <= backup.DefaultRetentionCount; i++ {
		// Distinct document names keep the timestamps from colliding.
		_, err := m.Write("doc"+string(rune('a'+i)), []byte("{}"))
		require.NoError(t, err)
	}
	result = (&BackupsCheck{Manager: m}).Run()
	assert.Equal(t, SeverityWarning, result.Status)
	assert.Contains(t, result.FixHint, "prune")
}
