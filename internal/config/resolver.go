package config

// sourceStore pairs a store with the source tag it reports.
type sourceStore struct {
	source Source
	store  *Store
}

// Resolver computes the effective value of a key by scanning sources in the
// fixed precedence order:
//
//	CommandLine > Environment > Session > Project > User > Global > Default
//
// The first source containing the key wins outright; object values shadow
// lower sources completely and are never deep-merged. Resolution is a pure
// function of current store state.
type Resolver struct {
	sources  []sourceStore
	registry *Registry
}

// NewResolver builds a resolver over the given stores. Any store may be nil,
// in which case that source never matches.
func NewResolver(registry *Registry, commandLine, environment, session, project, user, global *Store) *Resolver {
	return &Resolver{
		registry: registry,
		sources: []sourceStore{
			{SourceCommandLine, commandLine},
			{SourceEnvironment, environment},
			{SourceSession, session},
			{SourceProject, project},
			{SourceUser, user},
			{SourceGlobal, global},
		},
	}
}

// Resolve returns the winning value for key and the source it came from.
// When no source holds the key, the registry default is consulted; when that
// is absent too, a zero Value with SourceNone is returned.
// Malformed keys fail with ErrInvalidKey.
func (r *Resolver) Resolve(key string) (Value, Source, error) {
	if err := ValidateKey(key); err != nil {
		return Value{}, SourceNone, err
	}

	for _, src := range r.sources {
		if src.store == nil {
			continue
		}
		if v, err := src.store.Get(key); err == nil {
			return v, src.source, nil
		}
	}

	if r.registry != nil {
		if entry, ok := r.registry.Lookup(key); ok {
			return entry.Default, SourceDefault, nil
		}
	}

	return Value{}, SourceNone, nil
}
