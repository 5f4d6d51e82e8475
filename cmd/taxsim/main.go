package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/logging"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/fiscalite/taxsim/internal/transform"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taxsim",
		Short: "French tax simulator CLI",
		Long: `Simulates French personal taxation: income tax, capital gains on property
and securities, flat tax against the progressive scale, property purchase
financing, donation before sale and freelance status comparison.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("rates-dir", "", "Directory of extra rate table YAML files")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		tablesCmd(),
		compareStatusCmd(),
		breakEvenCmd(),
		reportCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxsim %s (commit %s, built %s)\n", version, commit, date)
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

// newLogger builds the CLI logger: pretty output on stderr, debug on --debug.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := "warn"
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	return logging.New(logging.Config{Level: level, Pretty: true, Out: cmd.ErrOrStderr()})
}

// newEngine loads the rate tables named by --rates-dir.
func newEngine(cmd *cobra.Command, logger zerolog.Logger) (*calculation.CalculationEngine, error) {
	dir, _ := cmd.Flags().GetString("rates-dir")
	return loadEngine(dir, logger)
}

func loadEngine(dir string, logger zerolog.Logger) (*calculation.CalculationEngine, error) {
	book, err := config.LoadRateBook(dir)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngineWithRates(book)
	engine.SetLogger(logging.NewEngineLogger(logger, "engine"))
	return engine, nil
}

// loadRequest reads a request file, then applies --year and any --what-if
// transforms.
func loadRequest(cmd *cobra.Command, path string) (*domain.SimulationRequest, error) {
	req, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		req.TaxYear = year
	}
	specs, _ := cmd.Flags().GetStringArray("what-if")
	if len(specs) == 0 {
		return req, nil
	}
	transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
	if err != nil {
		return nil, err
	}
	return transform.ApplyTransforms(req, transforms)
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Run the simulation described by a request file",
		Long: `Run the simulation described by a YAML or JSON request file.

Examples:
  taxsim calculate income.yaml
  taxsim calculate income.yaml --what-if set_dependents:count=3
  taxsim calculate gain.yaml --format pdf --out gain.pdf
  taxsim calculate regime.yaml --year 2024 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			engine, err := newEngine(cmd, logger)
			if err != nil {
				return err
			}
			req, err := loadRequest(cmd, args[0])
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			f, err := output.ResolveFormatter(format)
			if err != nil {
				return err
			}

			out, err := engine.Run(cmd.Context(), *req)
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" && f.Name() != "pdf" {
				data, err := f.Format(out)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			written, err := output.WriteFormatted(f, out, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, json, html, pdf)")
	cmd.Flags().StringP("out", "o", "", "Write the report to this file (pdf defaults to simulation_<kind>_<time>.pdf)")
	cmd.Flags().Int("year", 0, "Tax year, overriding the request file (0 keeps the file's year or the latest)")
	cmd.Flags().StringArray("what-if", nil, "Edit the request before running, e.g. set_dependents:count=3 (repeatable)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request file %s is valid (%s)\n", args[0], req.Simulator)
			return nil
		},
	}
}

func tablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the rate tables or print one year's table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd, newLogger(cmd))
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			if !cmd.Flags().Changed("year") {
				return listTables(cmd.OutOrStdout(), engine)
			}
			rt, err := engine.Tables(year)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(rt)
		},
	}
	cmd.Flags().Int("year", 0, "Print the table of this year (0 for the latest)")
	return cmd
}

func listTables(w io.Writer, engine *calculation.CalculationEngine) error {
	latest := engine.Rates.Latest()
	for _, y := range engine.Rates.Years() {
		marker := ""
		if latest != nil && y == latest.Metadata.TaxYear {
			marker = " (latest)"
		}
		if _, err := fmt.Fprintf(w, "%d%s\n", y, marker); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
