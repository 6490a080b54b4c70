package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AstroAir/create-cpp-project-sub000/internal/config"
	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
	"github.com/AstroAir/create-cpp-project-sub000/internal/git"
	"github.com/AstroAir/create-cpp-project-sub000/internal/settings"
	"github.com/AstroAir/create-cpp-project-sub000/internal/validate"
)

func init() {
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project interactively",
	Long: `New walks through the project choices, starting from your resolved
defaults. Answers live in the session until they validate; on success a
project configuration document is written into the new directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine()
		if err != nil {
			return err
		}

		// Seed the form with the resolved defaults so users only change
		// what they care about.
		opts, err := eng.ResolvedSettings()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			opts.ProjectName = args[0]
		}

		if err := runWizard(&opts); err != nil {
			return err
		}

		// Wizard answers become session overrides: highest-precedence of
		// the persisted scopes, gone when the process exits.
		if err := eng.ApplySettings(config.ScopeSession, opts); err != nil {
			return err
		}

		resolved, err := eng.ResolvedSettings()
		if err != nil {
			return err
		}

		result := validate.New(validate.WithPlatformChecks()).Validate(resolved)
		reporter := validate.NewReporter(cmd.OutOrStdout(), validate.FormatText)
		if err := reporter.Report(result); err != nil {
			return err
		}
		if !result.Valid() {
			return &errors.ExitError{Code: errors.ExitUser,
				Suggestion: "adjust the flagged choices and run 'cpp-scaffold new' again"}
		}

		target := filepath.Join(projectDir, resolved.ProjectName)
		if _, err := os.Stat(target); err == nil {
			return errors.NewUserError(errors.Newf("directory %q already exists", target), "")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "creating project directory"), "")
		}

		if err := config.WriteProjectDocument(target, resolved); err != nil {
			return errors.NewSystemError(err, "check the target directory permissions")
		}

		if resolved.InitGit {
			if err := initRepository(target, resolved.ProjectName); err != nil {
				slog.Warn("skipping git initialization", "error", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s created %s\n", color.GreenString("✓"), target)
		return nil
	},
}

// initRepository creates a git repository in the generated project. The
// initial commit is best-effort; it fails when no committer identity is
// configured.
func initRepository(dir, name string) error {
	if err := git.Init(dir); err != nil {
		return err
	}
	if err := git.InitialCommit(dir, "scaffold "+name); err != nil {
		slog.Debug("initial commit failed", "error", err)
	}
	return nil
}

// runWizard collects the project choices into opts, mutating it in place.
func runWizard(opts *settings.Options) error {
	templateType := string(opts.TemplateType)
	buildSystem := string(opts.BuildSystem)
	packageManager := string(opts.PackageManager)
	testFramework := string(opts.TestFramework)

	editors := make([]string, len(opts.Editors))
	for i, ed := range opts.Editors {
		editors[i] = string(ed)
	}
	ciSystems := make([]string, len(opts.CiSystems))
	for i, ci := range opts.CiSystems {
		ciSystems[i] = string(ci)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&opts.ProjectName).
				Validate(validate.ProjectName),
			huh.NewSelect[string]().
				Title("Template").
				Options(enumOptions(settings.TemplateTypes())...).
				Value(&templateType),
			huh.NewSelect[string]().
				Title("Build system").
				Options(enumOptions(settings.BuildSystems())...).
				Value(&buildSystem),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Package manager").
				Options(enumOptions(settings.PackageManagers())...).
				Value(&packageManager),
			huh.NewSelect[string]().
				Title("Test framework").
				Options(enumOptions(settings.TestFrameworks())...).
				Value(&testFramework),
			huh.NewConfirm().
				Title("Include a test scaffold?").
				Value(&opts.IncludeTests),
			huh.NewConfirm().
				Title("Initialize a git repository?").
				Value(&opts.InitGit),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Editor integrations").
				Options(enumOptions(settings.Editors())...).
				Value(&editors),
			huh.NewMultiSelect[string]().
				Title("CI pipelines").
				Options(enumOptions(settings.CiSystems())...).
				Value(&ciSystems),
		),
	)

	if err := form.Run(); err != nil {
		return errors.Wrap(err, "running wizard")
	}

	opts.TemplateType = settings.TemplateType(templateType)
	opts.BuildSystem = settings.BuildSystem(buildSystem)
	opts.PackageManager = settings.PackageManager(packageManager)
	opts.TestFramework = settings.TestFramework(testFramework)

	opts.Editors = opts.Editors[:0]
	for _, ed := range editors {
		opts.Editors = append(opts.Editors, settings.Editor(ed))
	}
	opts.CiSystems = opts.CiSystems[:0]
	for _, ci := range ciSystems {
		opts.CiSystems = append(opts.CiSystems, settings.CiSystem(ci))
	}
	return nil
}

// enumOptions converts an enum member list into form options.
func enumOptions[T ~string](members []T) []huh.Option[string] {
	out := make([]huh.Option[string], len(members))
	for i, m := range members {
		out[i] = huh.NewOption(string(m), string(m))
	}
	return out
}
