package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/logging"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	entry := Entry{
		Key:      "ui.color",
		Type:     KindBool,
		Default:  Bool(true),
		Category: "ui",
	}
	require.NoError(t, r.Register(entry))

	assert.Error(t, r.Register(entry), "duplicate key")
	assert.Error(t, r.Register(Entry{Key: "ui.theme", Type: KindString}), "missing default")
	assert.ErrorIs(t, r.Register(Entry{
		Key:     "behavior.jobs",
		Type:    KindInt,
		Default: String("four"),
	}), errors.ErrTypeMismatch, "default kind mismatch")
	assert.ErrorIs(t, r.Register(Entry{
		Key:     "bad key",
		Type:    KindBool,
		Default: Bool(false),
	}), errors.ErrInvalidKey)

	got, ok := r.Lookup("ui.color")
	assert.True(t, ok)
	assert.Equal(t, "ui", got.Category)
}

func TestRegistryCatalogQueries(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Entry{Key: "ui.color", Type: KindBool, Default: Bool(true), Category: "ui"}))
	require.NoError(t, r.Register(Entry{Key: "ui.language", Type: KindString, Default: String("english"), Category: "ui"}))
	require.NoError(t, r.Register(Entry{Key: "behavior.jobs", Type: KindInt, Default: Int(0), Category: "behavior"}))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "behavior.jobs", all[0].Key, "All is sorted by key")

	ui := r.ByCategory("ui")
	require.Len(t, ui, 2)
	assert.Equal(t, "ui.color", ui[0].Key)

	assert.Equal(t, []string{"behavior", "ui"}, r.Categories())
}

func TestEntryParseValue(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		raw     string
		want    Value
		wantErr bool
	}{
		{"string", Entry{Key: "k", Type: KindString}, "hello", String("hello"), false},
		{
			"string allowed",
			Entry{Key: "k", Type: KindString, AllowedValues: []string{"cmake", "meson"}},
			"meson", String("meson"), false,
		},
		{
			"string disallowed",
			Entry{Key: "k", Type: KindString, AllowedValues: []string{"cmake", "meson"}},
			"scons", Value{}, true,
		},
		{"bool yes", Entry{Key: "k", Type: KindBool}, "YES", Bool(true), false},
		{"bool one", Entry{Key: "k", Type: KindBool}, "1", Bool(true), false},
		{"bool anything else", Entry{Key: "k", Type: KindBool}, "enabled", Bool(false), false},
		{"int", Entry{Key: "k", Type: KindInt}, " 42 ", Int(42), false},
		{"int malformed", Entry{Key: "k", Type: KindInt}, "many", Value{}, true},
		{"list", Entry{Key: "k", Type: KindStringList}, "vscode, clion,,", Strings("vscode", "clion"), false},
		{
			"list disallowed item",
			Entry{Key: "k", Type: KindStringList, AllowedValues: []string{"vscode"}},
			"vscode,clion", Value{}, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.entry.ParseValue(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestIngestEnvironment(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Entry{
		Key: "defaults.includeTests", Type: KindBool, Default: Bool(false),
		EnvVar: "CPP_SCAFFOLD_INCLUDE_TESTS", Category: "defaults",
	}))
	require.NoError(t, r.Register(Entry{
		Key: "behavior.parallelJobs", Type: KindInt, Default: Int(0),
		EnvVar: "CPP_SCAFFOLD_JOBS", Category: "behavior",
	}))
	require.NoError(t, r.Register(Entry{
		Key: "defaults.editors", Type: KindStringList, Default: Strings(),
		EnvVar: "CPP_SCAFFOLD_EDITORS", Category: "defaults",
	}))
	require.NoError(t, r.Register(Entry{
		Key: "ui.language", Type: KindString, Default: String("english"),
		EnvVar: "CPP_SCAFFOLD_LANGUAGE", Category: "ui",
	}))

	env := map[string]string{
		"CPP_SCAFFOLD_INCLUDE_TESTS": "yes",
		"CPP_SCAFFOLD_JOBS":          "lots", // malformed, must be skipped
		"CPP_SCAFFOLD_EDITORS":       "vscode, clion",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	overlay := NewStore()
	r.IngestEnvironment(lookup, overlay, logging.ForTest(t))

	v, err := overlay.Get("defaults.includeTests")
	require.NoError(t, err)
	assert.True(t, v.Equal(Bool(true)), "lenient bool accepts yes")

	assert.False(t, overlay.Has("behavior.parallelJobs"), "malformed int is skipped, not stored")
	assert.False(t, overlay.Has("ui.language"), "unset variables are not ingested")

	v, err = overlay.Get("defaults.editors")
	require.NoError(t, err)
	assert.True(t, v.Equal(Strings("vscode", "clion")))
}

// Environment values outrank persisted scopes even when the persisted value
// disagrees.
func TestIngestedEnvironmentOutranksUserScope(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Entry{
		Key: "defaults.includeTests", Type: KindBool, Default: Bool(false),
		EnvVar: "CPP_SCAFFOLD_INCLUDE_TESTS", Category: "defaults",
	}))

	user := NewStore()
	require.NoError(t, user.Set("defaults.includeTests", Bool(false)))

	overlay := NewStore()
	r.IngestEnvironment(func(name string) (string, bool) {
		if name == "CPP_SCAFFOLD_INCLUDE_TESTS" {
			return "yes", true
		}
		return "", false
	}, overlay, logging.ForTest(t))

	resolver := NewResolver(r, nil, overlay, nil, nil, user, nil)
	v, src, err := resolver.Resolve("defaults.includeTests")
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, src)
	assert.True(t, v.Equal(Bool(true)))
}

func TestDefaultRegistryIsWellFormed(t *testing.T) {
	r := DefaultRegistry()

	for _, e := range r.All() {
		assert.NoError(t, ValidateKey(e.Key))
		assert.Equal(t, e.Type, e.Default.Kind(), "entry %s", e.Key)
		assert.NotEmpty(t, e.Category, "entry %s", e.Key)
	}

	entry, ok := r.Lookup(KeyBuildSystem)
	require.True(t, ok)
	assert.True(t, entry.Default.Equal(String("cmake")))

	entry, ok = r.Lookup(KeyAPIToken)
	require.True(t, ok)
	assert.True(t, entry.Secret)

	entry, ok = r.Lookup(KeyInstallID)
	require.True(t, ok)
	assert.True(t, entry.ReadOnly)
}
