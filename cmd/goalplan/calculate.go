package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func formatHelp() string {
	return fmt.Sprintf("Output format (%s; aliases: %s)",
		strings.Join(output.AvailableFormatterNames(), ", "),
		strings.Join(output.AvailableFormatAliases(), ", "))
}

func calculateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [profile-file]",
		Short: "Calculate the goal plan for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			profile, _, err := a.loadProfile(inputFile)
			if err != nil {
				return err
			}

			engine := a.engine()
			result, err := engine.Calculate(profile)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}

			var scenarios []domain.Scenario
			if withScenarios, _ := cmd.Flags().GetBool("scenarios"); withScenarios {
				scenarios, err = scenario.NewGenerator(engine).Generate(cmd.Context(), profile)
				if err != nil {
					return fmt.Errorf("scenario generation failed: %w", err)
				}
			}

			report := newReport(a, profile, result, scenarios)
			a.logger.Info("calculated plan",
				zap.String("op", "calculate"),
				zap.String("report", report.ID),
				zap.Int("balance_score", result.BalanceScore),
				zap.Int("health_score", result.FinancialHealthScore),
			)

			if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
				if err := output.SaveReport(report, savePath); err != nil {
					return fmt.Errorf("failed to save report: %w", err)
				}
				a.logger.Info("saved report", zap.String("op", "calculate"), zap.String("file", savePath))
			}

			return output.GenerateReport(cmd.OutOrStdout(), report, a.outputFormat(cmd))
		},
	}

	cmd.Flags().StringP("format", "f", "console", formatHelp())
	cmd.Flags().Bool("scenarios", true, "Include alternative plans")
	cmd.Flags().String("save", "", "Also write the JSON report to this file")
	return cmd
}

func newReport(a *app, profile *domain.FinancialProfile, result *domain.CalculationResult, scenarios []domain.Scenario) *domain.Report {
	report := domain.NewReport(profile, result, scenarios)
	report.Currency = a.settings().Currency
	return report
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile-file]",
		Short: "Validate a profile file and list every value that was defaulted or clamped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			profile, warnings, err := a.loadProfile(inputFile)
			if err != nil {
				return err
			}
			if err := calculation.ValidateProfile(profile); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			fmt.Fprintf(out, "Profile %s is valid\n", inputFile)
			return nil
		},
	}
}

func showCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [report-file]",
		Short: "Render a saved JSON report without recalculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := output.LoadReport(args[0])
			if err != nil {
				return err
			}
			return output.GenerateReport(cmd.OutOrStdout(), report, a.outputFormat(cmd))
		},
	}
	cmd.Flags().StringP("format", "f", "console", formatHelp())
	return cmd
}

func initCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [profile-file]",
		Short: "Write an example profile to start from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "profile.yaml"
			if len(args) > 0 {
				path = args[0]
			}

			force, _ := cmd.Flags().GetBool("force")
			if fileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			data, err := config.MarshalProfile(config.ExampleProfile(a.settings()))
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Example profile written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
