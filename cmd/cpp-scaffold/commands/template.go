package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
	"github.com/AstroAir/create-cpp-project-sub000/internal/template"
)

func init() {
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateDeleteCmd)

	rootCmd.AddCommand(templateCmd)
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage custom template metadata",
	Long: `Custom templates carry an opaque JSON metadata document consumed by the
project generators. This command group stores, lists and removes those
documents; their contents are not interpreted here.`,
}

// templateStore builds the store rooted under the active config directory.
func templateStore() (*template.Store, error) {
	eng, err := engine()
	if err != nil {
		return nil, err
	}
	return template.NewStore(filepath.Join(eng.Root(), paths.TemplatesDirName), slog.Default()), nil
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored custom templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}

		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no custom templates stored")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a template's metadata document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}

		payload, err := store.Load(args[0])
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.NewUserError(err, "run 'cpp-scaffold template list' to see stored templates")
			}
			return err
		}

		_, err = cmd.OutOrStdout().Write(payload)
		return err
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Store a template metadata document from a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[1])
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "reading metadata file"), "")
		}

		if err := store.Save(args[0], json.RawMessage(data)); err != nil {
			if errors.Is(err, errors.ErrInvalidName) {
				return errors.NewUserError(err,
					"template names are 1-64 characters of letters, digits, '-' and '_'")
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s stored template %q\n", color.GreenString("✓"), args[0])
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := templateStore()
		if err != nil {
			return err
		}

		existed, err := store.Delete(args[0])
		if err != nil {
			return err
		}
		if !existed {
			fmt.Fprintf(cmd.OutOrStdout(), "template %q does not exist\n", args[0])
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s deleted template %q\n", color.GreenString("✓"), args[0])
		return nil
	},
}
