// Package template stores custom template metadata, one JSON document per
// template name. Payloads are opaque to the configuration engine; the
// scaffolding generators own their shape, this store only guarantees naming,
// durability and round-trip fidelity.
package template

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
	"github.com/AstroAir/create-cpp-project-sub000/internal/profile"
	"github.com/AstroAir/create-cpp-project-sub000/pkg/fileutil"
)

// Store performs CRUD on template metadata files under one directory.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Save persists payload under name. The name follows the same grammar as
// profile names, so it is safe as a file name; the payload must be a valid
// JSON document but is otherwise opaque.
func (s *Store) Save(name string, payload json.RawMessage) error {
	if err := profile.ValidateName(name); err != nil {
		return err
	}
	if !json.Valid(payload) {
		return errors.Newf("template %q payload is not valid JSON", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := paths.EnsureDir(s.dir, 0); err != nil {
		return errors.Wrap(err, "creating template directory")
	}

	var pretty json.RawMessage
	if indented, err := indent(payload); err == nil {
		pretty = indented
	} else {
		pretty = payload
	}

	if err := fileutil.AtomicWriteFile(s.path(name), pretty, 0o644); err != nil {
		return errors.Wrapf(err, "saving template %q", name)
	}
	return nil
}

// Load returns the named payload. Missing templates fail with ErrNotFound.
func (s *Store) Load(name string) (json.RawMessage, error) {
	if err := profile.ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := fileutil.ReadFileWithLimit(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "template %q", name)
		}
		return nil, errors.Wrapf(err, "reading template %q", name)
	}
	return data, nil
}

// List returns the saved template names, sorted. A missing directory lists
// empty.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading template directory")
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

// Delete removes the named template, reporting whether it existed.
func (s *Store) Delete(name string) (bool, error) {
	if err := profile.ValidateName(name); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "deleting template %q", name)
	}
	return true, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func indent(payload json.RawMessage) (json.RawMessage, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
