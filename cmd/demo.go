package main

import (
	"fmt"
	"strings"

	service "github.com/okian/allocscore/internal/app"
	"github.com/okian/allocscore/internal/report"
	"github.com/okian/allocscore/internal/scenario"
	"github.com/spf13/cobra"
)

func newDemoCommand(rt *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Tabulate the built-in sample elections",
		Long: `Tabulate the sample elections from the Allocated Score write-up: two
faction studies electing five seats and the star-core election for one to
five seats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEngineFlags(cmd, rt.cfg); err != nil {
				return err
			}
			svc, err := rt.newService()
			if err != nil {
				return err
			}
			for i, e := range scenario.Demos() {
				rep, err := svc.Tabulate(cmd.Context(), service.Request{Election: e})
				if err != nil {
					return fmt.Errorf("demo %s: %w", e.Name, err)
				}
				if i > 0 && !strings.EqualFold(rt.cfg.ReportFormat, report.FormatJSON) {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := writeReport(cmd, rt.cfg, rep); err != nil {
					return err
				}
			}
			return rt.finish(cmd)
		},
	}

	addEngineFlags(cmd)
	return cmd
}
