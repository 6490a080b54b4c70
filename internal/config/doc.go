// Package config implements the layered configuration engine behind
// cpp-scaffold.
//
// Values live in typed stores, one per scope (Session, Project, User,
// Global), plus two non-persisted overlays fed by recognized environment
// variables and parsed command-line flags. The effective value of a key is
// computed by the resolver over the fixed precedence order
//
//	CommandLine > Environment > Session > Project > User > Global > Default
//
// where Default comes from the preference registry, the static catalog of
// every recognized key.
//
// Persisted scope documents carry a schema version; the migrator upgrades
// older documents step by step, backing up the original first and writing
// the result atomically. Named profiles — full settings snapshots outside
// the precedence hierarchy — are managed by the profile package and exposed
// through the Engine facade.
package config
