package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AstroAir/create-cpp-project-sub000/internal/config"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
)

// scopeFlag holds the value of the --scope flag on config subcommands.
var scopeFlag string

// exportFormat holds the value of the --format flag on config export.
var exportFormat string

// pruneBackups holds the value of the --prune flag on config backups.
var pruneBackups bool

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configBackupsCmd)

	configSetCmd.Flags().StringVar(&scopeFlag, "scope", "user",
		"scope to write: session, project, user, global")
	configUnsetCmd.Flags().StringVar(&scopeFlag, "scope", "user",
		"scope to remove from: session, project, user, global")
	configExportCmd.Flags().StringVar(&exportFormat, "format", "json",
		"output format: json, yaml, toml")
	configBackupsCmd.Flags().BoolVar(&pruneBackups, "prune", false,
		"remove backups beyond the retention count")

	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify configuration",
}

// parseScope maps a --scope flag value to a Scope.
func parseScope(s string) (config.Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "session":
		return config.ScopeSession, nil
	case "project":
		return config.ScopeProject, nil
	case "user":
		return config.ScopeUser, nil
	case "global":
		return config.ScopeGlobal, nil
	default:
		return 0, errors.NewUserError(errors.Newf("unknown scope %q", s),
			"valid scopes: session, project, user, global")
	}
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show the effective value of a key and where it came from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		key := args[0]
		v, src, err := eng.Resolve(key)
		if err != nil {
			return err
		}
		if src == config.SourceNone {
			return errors.NewUserError(errors.Newf("key %q has no value and no default", key),
				"run 'cpp-scaffold config list' to see known keys")
		}

		display := renderValue(eng, key, v)
		fmt.Fprintf(cmd.OutOrStdout(), "%v %s\n", display, color.HiBlackString("(%s)", src))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key in one scope",
	Long: `Set writes a registered key into the chosen scope and persists it.
The raw value is converted to the key's declared type; lists are
comma-separated. Session writes are in-memory only.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		scope, err := parseScope(scopeFlag)
		if err != nil {
			return err
		}

		key, raw := args[0], args[1]
		entry, ok := eng.Registry().Lookup(key)
		if !ok {
			return errors.NewUserError(errors.Wrapf(errors.ErrUnregisteredKey, "key %q", key),
				"run 'cpp-scaffold config list' to see known keys")
		}
		if entry.ReadOnly {
			return errors.NewUserError(errors.Wrapf(errors.ErrReadOnly, "key %q", key), "")
		}

		v, err := entry.ParseValue(raw)
		if err != nil {
			return errors.NewUserError(err, "")
		}

		if err := eng.Set(scope, key, v); err != nil {
			return err
		}
		if scope != config.ScopeSession {
			if err := eng.SaveScope(scope); err != nil {
				return errors.NewSystemError(err, "check the configuration directory permissions")
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s (%s scope)\n",
			color.GreenString("✓"), key, raw, scope)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a key from one scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		scope, err := parseScope(scopeFlag)
		if err != nil {
			return err
		}

		removed, err := eng.Remove(scope, args[0])
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s was not set in the %s scope\n", args[0], scope)
			return nil
		}
		if scope != config.ScopeSession {
			if err := eng.SaveScope(scope); err != nil {
				return errors.NewSystemError(err, "check the configuration directory permissions")
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s from the %s scope\n",
			color.GreenString("✓"), args[0], scope)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered key with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		registry := eng.Registry()
		for _, category := range registry.Categories() {
			fmt.Fprintln(out, color.CyanString("%s:", category))
			for _, entry := range registry.ByCategory(category) {
				v, src, err := eng.Resolve(entry.Key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %-28s %-24v %s\n",
					entry.Key, renderValue(eng, entry.Key, v), color.HiBlackString("(%s)", src))
			}
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where configuration is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		root := eng.Root()
		fmt.Fprintf(out, "config root: %s\n", root)
		fmt.Fprintf(out, "global:      %s/%s\n", root, paths.ConfigFileName)
		fmt.Fprintf(out, "user:        %s/%s\n", root, paths.PreferencesFileName)
		fmt.Fprintf(out, "profiles:    %s/%s\n", root, paths.ProfilesDirName)
		fmt.Fprintf(out, "templates:   %s/%s\n", root, paths.TemplatesDirName)
		fmt.Fprintf(out, "backups:     %s/%s\n", root, paths.BackupsDirName)
		fmt.Fprintf(out, "project:     %s\n", paths.ProjectFile(projectDir))
		return nil
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Emit the fully resolved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		opts, err := eng.ResolvedSettings()
		if err != nil {
			return err
		}

		var data []byte
		switch strings.ToLower(exportFormat) {
		case "json":
			data, err = json.MarshalIndent(opts, "", "  ")
			data = append(data, '\n')
		case "yaml":
			data, err = yaml.Marshal(opts)
		case "toml":
			data, err = toml.Marshal(opts)
		default:
			return errors.NewUserError(errors.Newf("unknown format %q", exportFormat),
				"valid formats: json, yaml, toml")
		}
		if err != nil {
			return errors.Wrap(err, "encoding settings")
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List pre-migration backups",
	Long: `Backups lists the snapshots taken before schema migrations. With
--prune, backups beyond the retention count are removed, oldest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		backups := eng.Backups()

		if pruneBackups {
			removed, err := backups.Prune()
			if err != nil {
				return errors.NewSystemError(err, "check the backup directory permissions")
			}
			fmt.Fprintf(out, "%s pruned %d backup(s)\n", color.GreenString("✓"), removed)
		}

		infos, err := backups.List()
		if err != nil {
			return errors.NewSystemError(err, "check the backup directory permissions")
		}
		if len(infos) == 0 {
			fmt.Fprintln(out, "no backups")
			return nil
		}
		for _, info := range infos {
			fmt.Fprintf(out, "  %-44s %-14s %s\n",
				info.Name, info.Document,
				color.HiBlackString(info.CreatedAt.Format("2006-01-02 15:04:05")))
		}
		return nil
	},
}

// renderValue formats a value for display, redacting secrets.
func renderValue(eng *config.Engine, key string, v config.Value) any {
	if entry, ok := eng.Registry().Lookup(key); ok && entry.Secret {
		if s, err := v.AsString(); err == nil && s != "" {
			return "***"
		}
	}
	return v.Interface()
}
