package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/scenario"
	"github.com/rgehrsitz/goalplan/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func scenariosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios [profile-file]",
		Short: "Suggest alternative plans that improve on the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, _, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}

			scenarios, err := scenario.NewGenerator(a.engine()).Generate(cmd.Context(), profile)
			if err != nil {
				return fmt.Errorf("scenario generation failed: %w", err)
			}
			a.logger.Info("generated scenarios", zap.String("op", "scenarios"), zap.Int("count", len(scenarios)))

			out := cmd.OutOrStdout()
			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "json":
				data, err := json.MarshalIndent(scenarios, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "table", "":
				money := output.NewMoney(a.settings().Currency)
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "PLAN\tCAPACITY\tREQUIRED\tTIME\tHORIZON\tRETURN")
				for _, s := range scenarios {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
						s.Title, money.Format(s.MonthlyCapacity), money.Format(s.RequiredMonthlyContribution),
						output.FormatYears(s.TimeRequiredYears), s.HorizonYears, output.FormatPercentage(s.ExpectedReturnPct))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(out)
				for _, s := range scenarios {
					fmt.Fprintf(out, "• %s: %s\n", s.Title, s.Description)
				}
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func whatIfCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatif [profile-file]",
		Short: "Apply transforms to a profile and report the resulting plan",
		Long: `Apply one or more transforms in order and report the plan that results.

Examples:
  goalplan whatif profile.yaml -t scale_capacity:factor=1.2
  goalplan whatif profile.yaml -t add_savings:amount=500000 -t extend_horizon:years=2
  goalplan whatif --list-transforms
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := transform.NewTransformRegistry()

			if list, _ := cmd.Flags().GetBool("list-transforms"); list {
				for _, name := range registry.List() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("profile file required (use --list-transforms to see available transforms)")
			}

			specs, _ := cmd.Flags().GetStringArray("transform")
			if len(specs) == 0 {
				return fmt.Errorf("at least one --transform is required")
			}
			transforms, err := registry.ParseTransformSpecs(specs)
			if err != nil {
				return err
			}

			profile, _, err := a.loadProfile(args[0])
			if err != nil {
				return err
			}

			engine := a.engine()
			prepared, err := engine.Prepare(profile)
			if err != nil {
				return err
			}
			modified, err := transform.ApplyTransforms(prepared, transforms)
			if err != nil {
				return err
			}
			for _, desc := range transform.Describe(transforms) {
				a.logger.Info("applied transform", zap.String("op", "whatif"), zap.String("transform", desc))
			}

			result, err := engine.Calculate(modified)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}

			report := newReport(a, modified, result, nil)
			return output.GenerateReport(cmd.OutOrStdout(), report, a.outputFormat(cmd))
		},
	}
	cmd.Flags().StringArrayP("transform", "t", nil, "Transform spec name:key=value,... (repeatable, applied in order)")
	cmd.Flags().Bool("list-transforms", false, "List all available transforms")
	cmd.Flags().StringP("format", "f", "console", formatHelp())
	return cmd
}
