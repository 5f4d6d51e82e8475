package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/logging"
	"github.com/fiscalite/taxsim/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "taxsim-tui",
		Short:        "Interactive French tax simulator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("rates-dir")
			year, _ := cmd.Flags().GetInt("year")

			book, err := config.LoadRateBook(dir)
			if err != nil {
				return err
			}
			if year != 0 {
				if _, err := book.Resolve(year); err != nil {
					return err
				}
			}
			engine := calculation.NewCalculationEngineWithRates(book)

			// The alternate screen owns the terminal; debug logs go to a file.
			if logPath, _ := cmd.Flags().GetString("log-file"); logPath != "" {
				f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					return err
				}
				defer f.Close()
				engine.SetLogger(logging.NewEngineLogger(logging.New(logging.Config{Level: "debug", Out: f}), "engine"))
			}

			p := tea.NewProgram(
				tui.NewModel(engine, year),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().Int("year", 0, "Tax year of the simulations (0 for the latest table)")
	cmd.Flags().String("rates-dir", "", "Directory of extra rate table YAML files")
	cmd.Flags().String("log-file", "", "Append engine debug logs to this file")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
