package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AstroAir/create-cpp-project-sub000/internal/doctor"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/paths"
)

// doctorFormat holds the value of the --format flag on doctor.
var doctorFormat string

func init() {
	doctorCmd.Flags().StringVar(&doctorFormat, "format", "text", "output format: text, json")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the configuration area",
	Long: `Doctor verifies the config root is writable, the persisted documents
parse at the current schema, saved profiles load, and the backup area is
within its retention count.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		root := eng.Root()
		runner := doctor.NewRunner()
		runner.AddCheck(&doctor.ConfigRootCheck{Root: root})
		runner.AddCheck(&doctor.DocumentCheck{Label: "global", Path: filepath.Join(root, paths.ConfigFileName)})
		runner.AddCheck(&doctor.DocumentCheck{Label: "user", Path: filepath.Join(root, paths.PreferencesFileName)})
		runner.AddCheck(&doctor.DocumentCheck{Label: "project", Path: paths.ProjectFile(projectDir)})
		runner.AddCheck(&doctor.ProfilesCheck{Manager: eng.Profiles()})
		runner.AddCheck(&doctor.BackupsCheck{Manager: eng.Backups()})
		runner.AddCheck(&doctor.GitCheck{})

		report := runner.Run()

		out := cmd.OutOrStdout()
		if doctorFormat == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return errors.Wrap(err, "encoding report")
			}
		} else {
			for _, r := range report.Results {
				fmt.Fprintf(out, "%s %-18s %s\n", statusBadge(r.Status), r.Name, r.Message)
				if r.FixHint != "" {
					fmt.Fprintf(out, "  %s\n", color.HiBlackString("hint: %s", r.FixHint))
				}
			}
			fmt.Fprintf(out, "\n%d passed, %d warnings, %d errors\n",
				report.Summary.Passed, report.Summary.Warnings, report.Summary.Errors)
		}

		if report.HasErrors() {
			return &errors.ExitError{Code: errors.ExitUser}
		}
		return nil
	},
}

func statusBadge(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityWarning:
		return color.YellowString("!")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return color.HiBlackString("·")
	}
}
