// Package paths resolves the on-disk layout of cpp-scaffold's configuration
// engine.
//
// All persisted state lives under a single config root:
//
//	<root>/config.json            Global scope document
//	<root>/preferences.json       User scope document
//	<root>/profiles/<name>.json   saved profiles
//	<root>/templates/<name>.json  custom template metadata
//	<root>/backups/               pre-migration backups
//
// The root defaults to the XDG config home joined with "cpp-scaffold" and
// can be relocated with the CPP_SCAFFOLD_CONFIG_DIR environment variable,
// which tests use for isolation.
package paths
