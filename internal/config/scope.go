package config

// Scope is a persistence tier. Each persisted scope owns exactly one value
// store rooted in its own file; Session is in-memory only.
type Scope int

const (
	// ScopeSession holds interactive wizard answers for one invocation.
	ScopeSession Scope = iota
	// ScopeProject holds per-project settings (.cpp-scaffold.json).
	ScopeProject
	// ScopeUser holds user-set defaults (preferences.json).
	ScopeUser
	// ScopeGlobal holds machine-wide settings (config.json).
	ScopeGlobal
)

// Scopes lists all scopes from most to least specific.
func Scopes() []Scope {
	return []Scope{ScopeSession, ScopeProject, ScopeUser, ScopeGlobal}
}

func (s Scope) String() string {
	switch s {
	case ScopeSession:
		return "session"
	case ScopeProject:
		return "project"
	case ScopeUser:
		return "user"
	case ScopeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Source identifies where a resolved value came from. It covers the four
// scopes plus the two non-persisted overlays and the registry default.
type Source int

const (
	// SourceNone means no source held the key and no default is registered.
	SourceNone Source = iota
	// SourceDefault is the registry's registered default.
	SourceDefault
	// SourceGlobal is the Global scope store.
	SourceGlobal
	// SourceUser is the User scope store.
	SourceUser
	// SourceProject is the Project scope store.
	SourceProject
	// SourceSession is the Session scope store.
	SourceSession
	// SourceEnvironment is the environment overlay, ingested once at startup.
	SourceEnvironment
	// SourceCommandLine is the flag overlay, populated once per invocation.
	SourceCommandLine
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceGlobal:
		return "global"
	case SourceUser:
		return "user"
	case SourceProject:
		return "project"
	case SourceSession:
		return "session"
	case SourceEnvironment:
		return "environment"
	case SourceCommandLine:
		return "command-line"
	default:
		return "none"
	}
}
