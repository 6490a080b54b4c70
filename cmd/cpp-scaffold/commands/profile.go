package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/AstroAir/create-cpp-project-sub000/internal/editor"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

// profileDescription holds the value of the --description flag.
var profileDescription string

func init() {
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileEditCmd)

	profileSaveCmd.Flags().StringVarP(&profileDescription, "description", "d", "",
		"short description stored with the profile")

	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named settings profiles",
	Long: `Profiles are complete settings snapshots saved under a name, outside
the scope hierarchy. Saving captures the currently resolved settings;
using a profile installs its settings as your defaults.`,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Snapshot the current resolved settings under a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		opts, err := eng.ResolvedSettings()
		if err != nil {
			return err
		}

		if err := eng.SaveProfile(args[0], profileDescription, opts); err != nil {
			if errors.Is(err, errors.ErrInvalidName) {
				return errors.NewUserError(err,
					"profile names are 1-64 characters of letters, digits, '-' and '_'")
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s saved profile %q\n", color.GreenString("✓"), args[0])
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		names, err := eng.ListProfiles()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no profiles saved")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		p, err := eng.LoadProfile(args[0])
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.NewUserError(err, "run 'cpp-scaffold profile list' to see saved profiles")
			}
			return err
		}

		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding profile")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		existed, err := eng.DeleteProfile(args[0])
		if err != nil {
			return err
		}
		if !existed {
			fmt.Fprintf(cmd.OutOrStdout(), "profile %q does not exist\n", args[0])
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s deleted profile %q\n", color.GreenString("✓"), args[0])
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Install a profile's settings as your defaults",
	Long: `Use loads the named profile and persists its settings as your user
defaults. With no argument, a fuzzy-finder picker lists the saved
profiles.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			name, err = pickProfile(eng.ListProfiles)
			if err != nil {
				return err
			}
		}

		p, err := eng.LoadProfile(name)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.NewUserError(err, "run 'cpp-scaffold profile list' to see saved profiles")
			}
			return err
		}

		if err := eng.SaveAsDefault(p.Settings); err != nil {
			return errors.NewSystemError(err, "check the configuration directory permissions")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s now using profile %q\n", color.GreenString("✓"), name)
		return nil
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a profile in your editor",
	Long: `Edit opens the profile file in $EDITOR (falling back to $VISUAL, nano,
vi). After the editor exits the file is re-read so syntax errors surface
immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		name := args[0]
		// Loading first confirms the profile exists before handing the path
		// to the editor.
		if _, err := eng.LoadProfile(name); err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				return errors.NewUserError(err, "run 'cpp-scaffold profile list' to see saved profiles")
			}
			return err
		}

		path, err := eng.Profiles().Path(name)
		if err != nil {
			return err
		}
		if err := editor.Open(path); err != nil {
			return errors.NewSystemError(err, "set $EDITOR to your preferred editor")
		}

		if _, err := eng.LoadProfile(name); err != nil {
			return errors.NewUserError(errors.Wrapf(err, "profile %q no longer parses", name),
				"re-run 'cpp-scaffold profile edit' to fix it")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s updated profile %q\n", color.GreenString("✓"), name)
		return nil
	},
}

// pickProfile opens an interactive picker over the saved profile names.
func pickProfile(list func() ([]string, error)) (string, error) {
	names, err := list()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.NewUserError(errors.New("no profiles saved"),
			"save one first with 'cpp-scaffold profile save <name>'")
	}

	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string { return names[i] },
	)
	if err != nil {
		return "", errors.Wrap(err, "selecting profile")
	}
	return names[idx], nil
}
