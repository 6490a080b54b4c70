package commands

import (
	"github.com/spf13/cobra"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/validate"
)

// validateFormat holds the value of the --format flag on validate.
var validateFormat string

// validatePlatform holds the value of the --platform-checks flag.
var validatePlatform bool

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text",
		"report format: text, json")
	validateCmd.Flags().BoolVar(&validatePlatform, "platform-checks", true,
		"include advisory host-platform findings")

	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the resolved settings",
	Long: `Validate resolves the effective settings across all scopes and runs
every check: project name grammar, pairwise compatibility between the
chosen template, build system, package manager and test framework, and
advisory platform findings. All problems are reported in one pass.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		opts, err := eng.ResolvedSettings()
		if err != nil {
			return err
		}

		var vopts []validate.Option
		if validatePlatform {
			vopts = append(vopts, validate.WithPlatformChecks())
		}
		result := validate.New(vopts...).Validate(opts)

		reporter := validate.NewReporter(cmd.OutOrStdout(), validate.Format(validateFormat))
		if err := reporter.Report(result); err != nil {
			return err
		}

		if !result.Valid() {
			return &errors.ExitError{Code: errors.ExitUser}
		}
		return nil
	},
}
