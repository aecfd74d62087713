package main

import (
	service "github.com/okian/allocscore/internal/app"
	"github.com/okian/allocscore/internal/scenario"
	"github.com/spf13/cobra"
)

func newTabulateCommand(rt *session) *cobra.Command {
	var (
		seats    int
		maxScore float64
	)

	cmd := &cobra.Command{
		Use:   "tabulate <election.yaml|ballots.csv>",
		Short: "Tabulate an election file",
		Long: `Tabulate an election from a YAML election document or a CSV ballot file.

YAML documents list candidates (or factions) and ballot groups. CSV files have
a header row of candidate names and one row of scores per ballot; use --seats
and --max-score (or configuration) to supply what CSV cannot carry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyEngineFlags(cmd, rt.cfg); err != nil {
				return err
			}
			e, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}
			svc, err := rt.newService()
			if err != nil {
				return err
			}
			rep, err := svc.Tabulate(cmd.Context(), service.Request{Election: e, Seats: seats, MaxScore: maxScore})
			if err != nil {
				return err
			}
			if err := writeReport(cmd, rt.cfg, rep); err != nil {
				return err
			}
			return rt.finish(cmd)
		},
	}

	cmd.Flags().IntVarP(&seats, "seats", "w", 0, "Number of winners (overrides the election)")
	cmd.Flags().Float64VarP(&maxScore, "max-score", "k", 0, "Top of the score scale (overrides the election)")
	addEngineFlags(cmd)

	return cmd
}
