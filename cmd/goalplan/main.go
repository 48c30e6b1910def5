package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state shared by every command once the root pre-run has loaded
// settings and built the logger.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.AppConfig
	logger *zap.Logger
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := initializeLogger(cfg.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) settings() domain.Settings {
	return a.cfg.Settings()
}

func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(a.settings())
	engine.SetLogger(a.logger.Sugar())
	return engine
}

// loadProfile parses and sanitizes a profile document, logging every warning.
func (a *app) loadProfile(path string) (*domain.FinancialProfile, []string, error) {
	parser := config.NewInputParser(a.settings())
	profile, warnings, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		a.logger.Warn("profile warning: "+w,
			zap.String("op", "load_profile"),
			zap.String("file", path),
		)
	}
	return profile, warnings, nil
}

// outputFormat returns the --format flag when set, otherwise the configured default.
func (a *app) outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	if cmd.Flags().Changed("format") || a.cfg == nil || a.cfg.Output.Format == "" {
		return format
	}
	return a.cfg.Output.Format
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "goalplan",
		Short: "Financial goal planning calculator",
		Long: `Project whether financial goals are reachable within a horizon, how much to
invest each month to get there, and how alternative plans compare.`,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to an application settings file (GOALPLAN_* environment variables also apply)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		calculateCmd(a),
		validateCmd(a),
		scenariosCmd(a),
		compareCmd(a),
		whatIfCmd(a),
		showCmd(a),
		initCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goalplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
