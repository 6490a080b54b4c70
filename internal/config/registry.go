package config

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

// Entry describes one recognized configuration key: its type, default,
// allowed values, category and optional environment-variable override.
// Entries are registered once at startup and immutable thereafter.
type Entry struct {
	Key           string
	Type          Kind
	Default       Value
	AllowedValues []string
	Category      string
	Description   string
	// EnvVar, when non-empty, names an environment variable whose value is
	// ingested into the Environment overlay at startup.
	EnvVar   string
	Secret   bool
	ReadOnly bool
}

// Registry is the static catalog of recognized configuration keys.
// It drives validation of writes and environment ingestion.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry to the catalog. Registering the same key twice is a
// programming error and is rejected.
func (r *Registry) Register(e Entry) error {
	if err := ValidateKey(e.Key); err != nil {
		return err
	}
	if _, exists := r.entries[e.Key]; exists {
		return errors.Newf("entry %q already registered", e.Key)
	}
	if e.Default.IsZero() {
		return errors.Newf("entry %q has no default", e.Key)
	}
	if e.Default.Kind() != e.Type {
		return errors.Wrapf(errors.ErrTypeMismatch,
			"entry %q declares %s but its default is %s", e.Key, e.Type, e.Default.Kind())
	}
	r.entries[e.Key] = e
	return nil
}

// Lookup returns the entry for key, if registered.
func (r *Registry) Lookup(key string) (Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// All returns every entry, sorted by key.
func (r *Registry) All() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ByCategory returns the entries in the given category, sorted by key.
func (r *Registry) ByCategory(category string) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Categories returns the distinct categories, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]struct{})
	for _, e := range r.entries {
		seen[e.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ParseValue converts a raw string into a value of the entry's declared type
// and checks it against the entry's allowed values. Used by the CLI's
// registry-mediated write path.
func (e Entry) ParseValue(raw string) (Value, error) {
	switch e.Type {
	case KindString:
		if err := e.checkAllowed(raw); err != nil {
			return Value{}, err
		}
		return String(raw), nil
	case KindBool:
		return Bool(parseLenientBool(raw)), nil
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, errors.Wrapf(errors.ErrTypeMismatch, "%q is not an integer", raw)
		}
		return Int(i), nil
	case KindStringList:
		var items []string
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if err := e.checkAllowed(part); err != nil {
				return Value{}, err
			}
			items = append(items, part)
		}
		return Strings(items...), nil
	default:
		return Value{}, errors.Wrapf(errors.ErrTypeMismatch, "cannot parse a %s from a string", e.Type)
	}
}

func (e Entry) checkAllowed(candidate string) error {
	if len(e.AllowedValues) == 0 {
		return nil
	}
	for _, allowed := range e.AllowedValues {
		if candidate == allowed {
			return nil
		}
	}
	return errors.Newf("%q is not an allowed value for %s (valid: %s)",
		candidate, e.Key, strings.Join(e.AllowedValues, ", "))
}

// parseLenientBool accepts "true", "1" and "yes" case-insensitively as true;
// anything else is false.
func parseLenientBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// IngestEnvironment writes the value of every entry's environment variable
// into the overlay store. Booleans parse leniently; malformed integers are
// skipped silently (logged at debug level), preserving the tool's historical
// tolerance. Re-running is idempotent: the last ingested value wins.
func (r *Registry) IngestEnvironment(lookupEnv func(string) (string, bool), overlay *Store, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, e := range r.All() {
		if e.EnvVar == "" {
			continue
		}
		raw, ok := lookupEnv(e.EnvVar)
		if !ok {
			continue
		}

		var v Value
		switch e.Type {
		case KindBool:
			v = Bool(parseLenientBool(raw))
		case KindInt:
			i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				logger.Debug("skipping malformed integer environment variable",
					"var", e.EnvVar, "key", e.Key)
				continue
			}
			v = Int(i)
		case KindStringList:
			var items []string
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					items = append(items, part)
				}
			}
			v = Strings(items...)
		case KindString:
			v = String(raw)
		default:
			// Object-typed entries have no environment representation.
			continue
		}

		if err := overlay.Set(e.Key, v); err != nil {
			logger.Debug("skipping environment variable", "var", e.EnvVar, "error", err)
		}
	}
}
