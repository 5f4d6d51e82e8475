package main

import (
	"fmt"

	"github.com/fiscalite/taxsim/internal/breakeven"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the turnover where freelance statuses swap, or the best company salary share",
		Long: `Search a freelance request through the simulator.

By default, finds for each other status the turnover at which it starts
leaving at least as much net income as the base status. With
--optimize-salary, finds the salary share that maximizes the company net.

Examples:
  taxsim break-even freelance.yaml
  taxsim break-even freelance.yaml --base company --min 30000 --max 150000
  taxsim break-even freelance.yaml --optimize-salary --format json`,
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
			if req.Freelance == nil {
				return fmt.Errorf("%s is a %s request, break-even needs a freelance request", args[0], req.Simulator)
			}

			opts := breakeven.DefaultSolverOptions()
			if step, _ := cmd.Flags().GetFloat64("step"); step > 0 {
				opts.GridStep = decimal.NewFromFloat(step)
			}
			solver := breakeven.NewSolver(engine, opts)
			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q (available: table, json)", format)
			}

			var result any
			var text string
			if optimize, _ := cmd.Flags().GetBool("optimize-salary"); optimize {
				res, err := solver.OptimizeSalaryPercent(cmd.Context(), req)
				if err != nil {
					return err
				}
				result, text = res, (&breakeven.TableFormatter{}).FormatSalary(res)
			} else {
				base, _ := cmd.Flags().GetString("base")
				minT, _ := cmd.Flags().GetFloat64("min")
				maxT, _ := cmd.Flags().GetFloat64("max")
				res, err := solver.AllTurnoverBreakEvens(cmd.Context(), req, domain.FreelanceStatus(base),
					decimal.NewFromFloat(minT), decimal.NewFromFloat(maxT))
				if err != nil {
					return err
				}
				result, text = res, (&breakeven.TableFormatter{}).FormatTurnover(res)
			}

			if format == "json" {
				text, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().String("base", string(domain.StatusMicro), "Status the others are compared with")
	cmd.Flags().Float64("min", 0, "Lowest turnover searched (default: the expenses, at least 1000)")
	cmd.Flags().Float64("max", 0, "Highest turnover searched (default 300000)")
	cmd.Flags().Bool("optimize-salary", false, "Search the company salary share instead of the turnover")
	cmd.Flags().Float64("step", 0, "Salary share step in percent (default 5)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Int("year", 0, "Tax year, overriding the request file")
	return cmd
}
