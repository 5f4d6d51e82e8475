package main

import (
	"fmt"

	"github.com/fiscalite/taxsim/internal/compare"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/spf13/cobra"
)

func compareStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare-status [input-file]",
		Short: "Compare freelance statuses against a base status",
		Long: `Simulate a freelance activity under every status and compare each with a base.

Examples:
  taxsim compare-status freelance.yaml
  taxsim compare-status freelance.yaml --base company --format csv`,
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
			if req.Simulator != domain.KindFreelance || req.Freelance == nil {
				return fmt.Errorf("%s is a %s request, compare-status needs a freelance request", args[0], req.Simulator)
			}

			base, _ := cmd.Flags().GetString("base")
			format, _ := cmd.Flags().GetString("format")
			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), *req.Freelance, compare.CompareOptions{
				BaseStatus: domain.FreelanceStatus(base),
				TaxYear:    req.TaxYear,
				Source:     args[0],
			})
			if err != nil {
				return err
			}

			var text string
			switch format {
			case "table":
				text = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				text = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				text, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				text, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unsupported format %q (available: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().String("base", string(domain.StatusMicro), "Base status to compare against (micro, individual, company)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Int("year", 0, "Tax year, overriding the request file")
	return cmd
}
