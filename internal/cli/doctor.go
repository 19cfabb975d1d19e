package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/doctor"
	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/rileyhilliard/rdash/internal/logger"
	"github.com/rileyhilliard/rdash/internal/render"
	"github.com/rileyhilliard/rdash/internal/ui"
)

// doctorCmd diagnoses config and API issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config and API issues",
	Long: `Run diagnostic checks to identify common issues.

Checks:
  - Config file discovery and validity
  - Render API key acceptance
  - Every configured service id still exists on Render

Examples:
  rdash doctor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCommand runs all checks and prints a report. Exits non-zero when
// any check fails.
func doctorCommand() error {
	cfg, _, err := config.LoadResolved(configFlag)
	if err != nil {
		// Even a broken config gets a report: the config checks re-run the
		// load and describe what went wrong.
		cfg = config.DefaultConfig()
	}

	client := render.NewClient(cfg.Render.APIKey, render.WithLogger(logger.Default()))
	defer client.Close()

	checks := doctor.BuildChecks(configFlag, cfg, client)
	results := doctor.RunAllParallel(checks)

	printDoctorReport(results)

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrConfig,
			"Some checks failed",
			"Address the failures above and run 'rdash doctor' again.")
	}
	return nil
}

func printDoctorReport(results []doctor.CheckResult) {
	passStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	failStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	category := ""
	for _, result := range results {
		if result.Category != category {
			category = result.Category
			fmt.Printf("\n%s\n", muted.Render(category))
		}

		var marker string
		switch result.Status {
		case doctor.StatusPass:
			marker = passStyle.Render("✓")
		case doctor.StatusWarn:
			marker = warnStyle.Render("!")
		default:
			marker = failStyle.Render("✗")
		}

		fmt.Printf("  %s %s: %s\n", marker, result.Name, result.Message)
		if result.Suggestion != "" && result.Status != doctor.StatusPass {
			fmt.Printf("    %s\n", muted.Render(result.Suggestion))
		}
	}

	counts := doctor.CountByStatus(results)
	fmt.Printf("\n%d passed, %d warnings, %d failed\n",
		counts[doctor.StatusPass], counts[doctor.StatusWarn], counts[doctor.StatusFail])
}
