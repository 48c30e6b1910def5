package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/compare"
	"github.com/rgehrsitz/goalplan/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [profile-file]",
		Short: "Compare the current plan against built-in templates or transforms",
		Long: `Compare a base plan against alternative strategies.

Examples:
  goalplan compare profile.yaml --with aggressive,extend_3yr
  goalplan compare profile.yaml --with conservative --transform add_savings:amount=500000 --format csv
  goalplan compare --list-templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				registry := transform.CreateBuiltInTemplates(a.settings().Scenario)
				fmt.Fprint(out, transform.GetTemplateHelp(registry))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("profile file required for comparison (use --list-templates to see available templates)")
			}
			inputFile := args[0]

			baseScenarioName, _ := cmd.Flags().GetString("base")
			templatesStr, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			outputFormat, _ := cmd.Flags().GetString("format")

			templateNames := transform.ParseTemplateList(templatesStr)
			if len(templateNames) == 0 && len(specs) == 0 {
				return fmt.Errorf("--with or --transform is required to specify alternatives (or use --list-templates)")
			}

			profile, _, err := a.loadProfile(inputFile)
			if err != nil {
				return err
			}

			compareEngine := compare.NewCompareEngine(a.engine())
			comparisonSet, err := compareEngine.Compare(cmd.Context(), profile, compare.CompareOptions{
				BaseScenarioName: baseScenarioName,
				Templates:        templateNames,
				Transforms:       specs,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			comparisonSet.ProfilePath = inputFile

			a.logger.Info("compared plans",
				zap.String("op", "compare"),
				zap.Int("alternatives", len(comparisonSet.AlternativeResults)),
			)

			switch strings.ToLower(outputFormat) {
			case "csv":
				formatter := &compare.CSVFormatter{}
				result, err := formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, result)

			case "json":
				formatter := &compare.JSONFormatter{Pretty: true}
				result, err := formatter.Format(comparisonSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, result)

			case "compact":
				formatter := &compare.TableFormatter{Symbol: a.settings().Currency.Symbol}
				fmt.Fprintln(out, formatter.FormatCompact(comparisonSet))

			case "table", "console", "":
				formatter := &compare.TableFormatter{Symbol: a.settings().Currency.Symbol}
				fmt.Fprint(out, formatter.Format(comparisonSet))

			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().String("base", "base", "Display name of the base plan")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayP("transform", "t", nil, "Transform spec name:key=value,... compared on its own (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available plan templates")
	return cmd
}
