package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/AstroAir/create-cpp-project-sub000/internal/backup"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
	"github.com/AstroAir/create-cpp-project-sub000/internal/profile"
	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

// Engine owns all configuration state for one process: the four scope
// stores, the two overlays, the preference registry, the schema migrator and
// the profile manager. It is constructed once by the composition root and
// passed by handle to collaborators.
//
// Reads may run concurrently; mutations are serialized behind one mutex.
type Engine struct {
	mu sync.RWMutex

	registry *Registry
	migrator *Migrator
	backups  *backup.Manager
	profiles *profile.Manager
	resolver *Resolver

	session *Store
	project *Store
	user    *Store
	global  *Store

	envOverlay *Store
	cliOverlay *Store

	root       string
	projectDir string
	lookupEnv  func(string) (string, bool)
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithConfigRoot overrides the config root directory. Tests use this instead
// of mutating the process environment.
func WithConfigRoot(dir string) Option {
	return func(e *Engine) { e.root = dir }
}

// WithProjectDir sets the directory searched for a project-scope document.
func WithProjectDir(dir string) Option {
	return func(e *Engine) { e.projectDir = dir }
}

// WithRegistry replaces the builtin preference registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithEnvironment replaces the environment lookup used for ingestion.
func WithEnvironment(lookup func(string) (string, bool)) Option {
	return func(e *Engine) { e.lookupEnv = lookup }
}

// New constructs an engine: it loads (and if necessary migrates) the
// persisted scope documents, ingests recognized environment variables into
// the environment overlay, and wires the precedence resolver.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		root:       paths.ConfigRoot(),
		projectDir: ".",
		lookupEnv:  os.LookupEnv,
		logger:     slog.Default(),

		session:    NewStore(),
		envOverlay: NewStore(),
		cliOverlay: NewStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}

	e.backups = backup.NewManager(filepath.Join(e.root, paths.BackupsDirName))
	e.migrator = NewMigrator(e.backups, e.logger)
	e.profiles = profile.NewManager(filepath.Join(e.root, paths.ProfilesDirName), CurrentSchemaVersion, e.logger)

	if err := e.loadScopes(); err != nil {
		return nil, err
	}

	e.registry.IngestEnvironment(e.lookupEnv, e.envOverlay, e.logger)

	e.resolver = NewResolver(e.registry,
		e.cliOverlay, e.envOverlay, e.session, e.project, e.user, e.global)

	return e, nil
}

func (e *Engine) loadScopes() error {
	// Global scope: a missing config file is recovered by initializing an
	// empty document and persisting it.
	globalPath := filepath.Join(e.root, paths.ConfigFileName)
	st, err := e.loadScopeFile(globalPath)
	switch {
	case err == nil:
		e.global = st
	case errors.Is(err, os.ErrNotExist):
		e.global = NewStore()
		if err := paths.EnsureDir(e.root, 0); err != nil {
			return errors.Wrap(err, "creating config directory")
		}
		if err := SaveDocument(globalPath, NewDocument()); err != nil {
			return errors.Wrap(err, "initializing global config")
		}
		e.logger.Debug("initialized global config", "path", globalPath)
	default:
		return err
	}

	// User scope: absent until the user saves defaults.
	userPath := filepath.Join(e.root, paths.PreferencesFileName)
	st, err = e.loadScopeFile(userPath)
	switch {
	case err == nil:
		e.user = st
	case errors.Is(err, os.ErrNotExist):
		e.user = NewStore()
	default:
		return err
	}

	// Project scope: optional, lives in the project directory.
	projectPath := paths.ProjectFile(e.projectDir)
	st, err = e.loadScopeFile(projectPath)
	switch {
	case err == nil:
		e.project = st
	case errors.Is(err, os.ErrNotExist):
		e.project = NewStore()
	default:
		return err
	}

	return nil
}

// loadScopeFile reads, migrates and decodes one scope document.
func (e *Engine) loadScopeFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	migrated, err := e.migrator.Migrate(path, data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filepath.Base(path))
	}

	doc, err := ParseDocument(migrated)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filepath.Base(path))
	}
	return doc.Store()
}

// Registry returns the preference registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Backups returns the migration backup manager.
func (e *Engine) Backups() *backup.Manager { return e.backups }

// Root returns the config root directory.
func (e *Engine) Root() string { return e.root }

// Resolve computes the effective value of key across all sources.
func (e *Engine) Resolve(key string) (Value, Source, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolver.Resolve(key)
}

// Get reads a value directly from one scope, bypassing precedence.
func (e *Engine) Get(scope Scope, key string) (Value, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	st, err := e.scopeStore(scope)
	if err != nil {
		return Value{}, err
	}
	return st.Get(key)
}

// Set writes a value into one scope's store. Unregistered keys are accepted
// here; only the registry-mediated path validates against the catalog.
func (e *Engine) Set(scope Scope, key string, value Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.scopeStore(scope)
	if err != nil {
		return err
	}
	return st.Set(key, value)
}

// Remove deletes key from one scope, reporting whether it was present.
func (e *Engine) Remove(scope Scope, key string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, err := e.scopeStore(scope)
	if err != nil {
		return false, err
	}
	return st.Remove(key), nil
}

// SetOverride writes into one of the two per-invocation sources: the
// CommandLine overlay (flag parsing) or the Session store (wizard answers).
func (e *Engine) SetOverride(source Source, key string, value Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch source {
	case SourceCommandLine:
		return e.cliOverlay.Set(key, value)
	case SourceSession:
		return e.session.Set(key, value)
	default:
		return errors.Newf("source %s does not accept overrides", source)
	}
}

// SetString converts raw according to the key's registry entry and writes it
// as an override. Unregistered keys fail with ErrUnregisteredKey; read-only
// keys fail with ErrReadOnly.
func (e *Engine) SetString(source Source, key, raw string) error {
	entry, ok := e.registry.Lookup(key)
	if !ok {
		return errors.Wrapf(errors.ErrUnregisteredKey, "key %q", key)
	}
	if entry.ReadOnly {
		return errors.Wrapf(errors.ErrReadOnly, "key %q", key)
	}
	v, err := entry.ParseValue(raw)
	if err != nil {
		return err
	}
	return e.SetOverride(source, key, v)
}

// SaveScope persists one scope's store to its document file. Session has no
// persistence location and is rejected.
func (e *Engine) SaveScope(scope Scope) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var path string
	var st *Store
	switch scope {
	case ScopeGlobal:
		path, st = filepath.Join(e.root, paths.ConfigFileName), e.global
	case ScopeUser:
		path, st = filepath.Join(e.root, paths.PreferencesFileName), e.user
	case ScopeProject:
		path, st = paths.ProjectFile(e.projectDir), e.project
	default:
		return errors.Newf("scope %s is not persisted", scope)
	}

	if scope != ScopeProject {
		if err := paths.EnsureDir(e.root, 0); err != nil {
			return errors.Wrap(err, "creating config directory")
		}
	}
	return SaveDocument(path, DocumentFromStore(st))
}

// scopeStore maps a scope to its store. Callers hold the mutex.
func (e *Engine) scopeStore(scope Scope) (*Store, error) {
	switch scope {
	case ScopeSession:
		return e.session, nil
	case ScopeProject:
		return e.project, nil
	case ScopeUser:
		return e.user, nil
	case ScopeGlobal:
		return e.global, nil
	default:
		return nil, errors.Newf("unknown scope %d", int(scope))
	}
}

// SaveProfile snapshots opts under name in the profile directory.
func (e *Engine) SaveProfile(name, description string, opts settings.Options) error {
	return e.profiles.Save(name, description, opts)
}

// LoadProfile returns the named profile's settings object.
func (e *Engine) LoadProfile(name string) (*profile.Profile, error) {
	return e.profiles.Load(name)
}

// ListProfiles returns all saved profile names, sorted.
func (e *Engine) ListProfiles() ([]string, error) {
	return e.profiles.List()
}

// DeleteProfile removes the named profile, reporting whether it existed.
func (e *Engine) DeleteProfile(name string) (bool, error) {
	return e.profiles.Delete(name)
}

// Profiles returns the profile manager.
func (e *Engine) Profiles() *profile.Manager { return e.profiles }
