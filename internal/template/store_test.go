package template

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/logging"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "templates"), logging.ForTest(t))
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)

	payload := json.RawMessage(`{"files": ["main.cpp", "CMakeLists.txt"], "variables": {"std": 20}}`)
	require.NoError(t, s.Save("qt-widget", payload))

	got, err := s.Load("qt-widget")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got))
}

func TestStoreRejectsBadInput(t *testing.T) {
	s := testStore(t)

	assert.ErrorIs(t, s.Save("a/b", json.RawMessage(`{}`)), errors.ErrInvalidName)
	assert.ErrorIs(t, s.Save("default", json.RawMessage(`{}`)), errors.ErrInvalidName)
	assert.Error(t, s.Save("ok-name", json.RawMessage(`not json`)))

	_, err := s.Load("missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestStoreListAndDelete(t *testing.T) {
	s := testStore(t)

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.Save("beta", json.RawMessage(`{}`)))
	require.NoError(t, s.Save("alpha", json.RawMessage(`{}`)))

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	existed, err := s.Delete("alpha")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Delete("alpha")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestStoreOverwrite(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Save("x", json.RawMessage(`{"v": 1}`)))
	require.NoError(t, s.Save("x", json.RawMessage(`{"v": 2}`)))

	got, err := s.Load("x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v": 2}`, string(got))
}
