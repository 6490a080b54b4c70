package config

import (
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
)

// ResolvedSettings materializes the fully precedence-resolved settings
// object: every registered option key is resolved across all sources and
// assembled into the record the generators consume.
//
// Enum-valued strings are carried as-is; membership is the validator's job,
// so a hand-edited document with an unknown build system still resolves and
// is reported as a validation error rather than failing here.
func (e *Engine) ResolvedSettings() (settings.Options, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var opts settings.Options
	var err error

	read := func(key string) Value {
		if err != nil {
			return Value{}
		}
		v, _, rerr := e.resolver.Resolve(key)
		if rerr != nil {
			err = rerr
		}
		return v
	}

	str := func(key string) string {
		v := read(key)
		if err != nil || v.IsZero() {
			return ""
		}
		s, terr := v.AsString()
		if terr != nil {
			err = errors.Wrapf(terr, "resolving %s", key)
		}
		return s
	}
	boolean := func(key string) bool {
		v := read(key)
		if err != nil || v.IsZero() {
			return false
		}
		b, terr := v.AsBool()
		if terr != nil {
			err = errors.Wrapf(terr, "resolving %s", key)
		}
		return b
	}
	list := func(key string) []string {
		v := read(key)
		if err != nil || v.IsZero() {
			return nil
		}
		items, terr := v.AsStringList()
		if terr != nil {
			err = errors.Wrapf(terr, "resolving %s", key)
		}
		return items
	}

	opts.ProjectName = str(KeyProjectName)
	opts.TemplateType = settings.TemplateType(str(KeyTemplateType))
	opts.BuildSystem = settings.BuildSystem(str(KeyBuildSystem))
	opts.PackageManager = settings.PackageManager(str(KeyPackageManager))
	opts.TestFramework = settings.TestFramework(str(KeyTestFramework))
	opts.IncludeTests = boolean(KeyIncludeTests)
	opts.IncludeDocumentation = boolean(KeyIncludeDocumentation)
	opts.IncludeCodeStyleTools = boolean(KeyIncludeCodeStyleTools)
	opts.InitGit = boolean(KeyInitGit)
	opts.Language = settings.Language(str(KeyLanguage))

	for _, ed := range list(KeyEditors) {
		opts.Editors = append(opts.Editors, settings.Editor(ed))
	}
	for _, ci := range list(KeyCiSystems) {
		opts.CiSystems = append(opts.CiSystems, settings.CiSystem(ci))
	}

	if err != nil {
		return settings.Options{}, err
	}
	return opts, nil
}

// applySettingsToStore writes a settings object into a store as individual
// option keys. includeName controls whether the project name is written.
func applySettingsToStore(st *Store, opts settings.Options, includeName bool) error {
	type kv struct {
		key   string
		value Value
	}

	pairs := []kv{
		{KeyTemplateType, String(string(opts.TemplateType))},
		{KeyBuildSystem, String(string(opts.BuildSystem))},
		{KeyPackageManager, String(string(opts.PackageManager))},
		{KeyTestFramework, String(string(opts.TestFramework))},
		{KeyIncludeTests, Bool(opts.IncludeTests)},
		{KeyIncludeDocumentation, Bool(opts.IncludeDocumentation)},
		{KeyIncludeCodeStyleTools, Bool(opts.IncludeCodeStyleTools)},
		{KeyInitGit, Bool(opts.InitGit)},
		{KeyLanguage, String(string(opts.Language))},
	}

	if includeName {
		pairs = append(pairs, kv{KeyProjectName, String(opts.ProjectName)})
	}

	editors := make([]string, len(opts.Editors))
	for i, ed := range opts.Editors {
		editors[i] = string(ed)
	}
	ciSystems := make([]string, len(opts.CiSystems))
	for i, ci := range opts.CiSystems {
		ciSystems[i] = string(ci)
	}
	pairs = append(pairs,
		kv{KeyEditors, Strings(editors...)},
		kv{KeyCiSystems, Strings(ciSystems...)},
	)

	for _, p := range pairs {
		if err := st.Set(p.key, p.value); err != nil {
			return errors.Wrapf(err, "applying %s", p.key)
		}
	}
	return nil
}

// ApplySettings writes a settings object into one scope's store as
// individual option keys. The project name is deliberately excluded for the
// User and Global scopes: defaults describe future projects, not one project.
func (e *Engine) ApplySettings(scope Scope, opts settings.Options) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.scopeStore(scope)
	if err != nil {
		return err
	}
	return applySettingsToStore(st, opts, scope == ScopeSession || scope == ScopeProject)
}

// WriteProjectDocument persists opts as a project-scope document in dir,
// independent of any engine's project directory. The wizard uses this to
// stamp a freshly created project.
func WriteProjectDocument(dir string, opts settings.Options) error {
	st := NewStore()
	if err := applySettingsToStore(st, opts, true); err != nil {
		return err
	}
	return SaveDocument(paths.ProjectFile(dir), DocumentFromStore(st))
}

// SaveAsDefault stores opts as the user's defaults and persists the User
// scope document.
func (e *Engine) SaveAsDefault(opts settings.Options) error {
	if err := e.ApplySettings(ScopeUser, opts); err != nil {
		return err
	}
	return e.SaveScope(ScopeUser)
}
