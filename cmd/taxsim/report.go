package main

import (
	"fmt"
	"os"

	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/report"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [input-file]",
		Short: "Render a PDF report and optionally email it",
		Long: `Run a simulation, write its PDF report and, with --to, email it.

Delivery uses RESEND_API_KEY from the environment or .env; without a key the
message is only logged. A delivery failure is reported and does not fail the
command.

Examples:
  taxsim report income.yaml --out income.pdf
  taxsim report gain.yaml --to client@example.com --save`,
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
			cfg := config.LoadServerConfig()

			var repo store.SimulationRepository
			if save, _ := cmd.Flags().GetBool("save"); save {
				db, err := store.Open(cmd.Context(), cfg.Database)
				if err != nil {
					return err
				}
				defer db.Close()
				repo = store.NewSimulationRepository(db.DB())
			}

			to, _ := cmd.Flags().GetString("to")
			svc := report.NewService(engine, repo, report.NewSender(cfg.Email, logger), logger)
			res, err := svc.Generate(cmd.Context(), report.Request{Simulation: *req, Email: to})
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				path = res.Filename
			}
			if err := os.WriteFile(path, res.PDF, 0644); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Report written to %s\n", path)
			if res.ID != nil {
				fmt.Fprintf(out, "Simulation saved as %s\n", res.ID)
			}
			switch res.EmailStatus {
			case report.EmailSent:
				fmt.Fprintf(out, "Email sent to %s (id %s)\n", to, res.EmailID)
			case report.EmailFailed:
				fmt.Fprintf(out, "Email to %s failed: %s\n", to, res.EmailError)
				if res.EmailRetryable {
					fmt.Fprintln(out, "The failure is temporary; run the command again to retry")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "PDF path (default simulation_<kind>_<date>.pdf)")
	cmd.Flags().String("to", "", "Email the report to this address")
	cmd.Flags().Bool("save", false, "Record the simulation in DATABASE_URL")
	cmd.Flags().Int("year", 0, "Tax year, overriding the request file")
	return cmd
}
