package config

import (
	"sort"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

// Store is an in-memory tree of typed values addressed by dotted keys.
// Intermediate path segments are object values; Set creates them on demand
// but never overwrites a non-object node with a subtree.
//
// Store is not safe for concurrent use; the engine serializes access.
type Store struct {
	root map[string]Value
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{root: make(map[string]Value)}
}

// Get returns the value at key. A key addressing an intermediate node
// returns that whole subtree as an object value.
// Returns ErrInvalidKey for malformed keys and ErrNotFound for absent ones.
func (s *Store) Get(key string) (Value, error) {
	if err := ValidateKey(key); err != nil {
		return Value{}, err
	}

	segments := SplitKey(key)
	current := s.root
	for i, seg := range segments {
		v, ok := current[seg]
		if !ok {
			return Value{}, errors.Wrapf(errors.ErrNotFound, "key %q", key)
		}
		if i == len(segments)-1 {
			return v, nil
		}
		if v.kind != KindObject {
			return Value{}, errors.Wrapf(errors.ErrNotFound, "key %q (parent %q is a %s)", key, seg, v.kind)
		}
		current = v.obj
	}
	return Value{}, errors.Wrapf(errors.ErrNotFound, "key %q", key)
}

// Has reports whether key is present. Malformed keys are never present.
func (s *Store) Has(key string) bool {
	_, err := s.Get(key)
	return err == nil
}

// Set stores value at key, creating intermediate objects along the path.
// Returns ErrInvalidKey for malformed keys, ErrTypeMismatch when an
// intermediate path segment holds a non-object value, and rejects absent
// values outright.
func (s *Store) Set(key string, value Value) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if value.IsZero() {
		return errors.Wrapf(errors.ErrTypeMismatch, "cannot store an absent value at %q", key)
	}

	segments := SplitKey(key)
	current := s.root
	for _, seg := range segments[:len(segments)-1] {
		v, ok := current[seg]
		if !ok {
			v = Value{kind: KindObject, obj: make(map[string]Value)}
			current[seg] = v
		} else if v.kind != KindObject {
			return errors.Wrapf(errors.ErrTypeMismatch,
				"cannot write %q: segment %q holds a %s, not an object", key, seg, v.kind)
		}
		current = v.obj
	}

	current[segments[len(segments)-1]] = value
	return nil
}

// Remove deletes the value at key, reporting whether it was present.
// Malformed keys remove nothing.
func (s *Store) Remove(key string) bool {
	if err := ValidateKey(key); err != nil {
		return false
	}

	segments := SplitKey(key)
	current := s.root
	for _, seg := range segments[:len(segments)-1] {
		v, ok := current[seg]
		if !ok || v.kind != KindObject {
			return false
		}
		current = v.obj
	}

	last := segments[len(segments)-1]
	if _, ok := current[last]; !ok {
		return false
	}
	delete(current, last)
	return true
}

// Len returns the number of top-level entries.
func (s *Store) Len() int { return len(s.root) }

// Clear removes all entries.
func (s *Store) Clear() {
	s.root = make(map[string]Value)
}

// Keys returns the sorted dotted paths of all leaf values. Object values
// that contain members are descended into; empty objects appear as leaves.
func (s *Store) Keys() []string {
	var keys []string
	var walk func(prefix string, m map[string]Value)
	walk = func(prefix string, m map[string]Value) {
		for k, v := range m {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			if v.kind == KindObject && len(v.obj) > 0 {
				walk(path, v.obj)
				continue
			}
			keys = append(keys, path)
		}
	}
	walk("", s.root)
	sort.Strings(keys)
	return keys
}

// Tree returns the store contents in native Go form for persistence.
func (s *Store) Tree() map[string]any {
	out := make(map[string]any, len(s.root))
	for k, v := range s.root {
		out[k] = v.Interface()
	}
	return out
}

// StoreFromTree builds a store from a decoded JSON tree. Returns
// ErrTypeMismatch when the tree holds values outside the supported kinds.
func StoreFromTree(tree map[string]any) (*Store, error) {
	st := NewStore()
	for k, raw := range tree {
		v, err := FromInterface(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "tree entry %q", k)
		}
		st.root[k] = v
	}
	return st, nil
}
