package main

import (
	"fmt"

	service "github.com/okian/allocscore/internal/app"
	"github.com/okian/allocscore/internal/config"
	"github.com/okian/allocscore/internal/domain/allocation"
	"github.com/okian/allocscore/internal/report"
	"github.com/okian/allocscore/pkg/logger"
	"github.com/okian/allocscore/pkg/metrics"
	"github.com/spf13/cobra"
)

var version = "dev"

// session carries what every subcommand needs once the root has loaded
// configuration.
type session struct {
	cfg     *config.Config
	metrics *metrics.Manager
}

func newRootCommand() *cobra.Command {
	rt := &session{metrics: metrics.Default()}

	cmd := &cobra.Command{
		Use:   "allocscore",
		Short: "Tabulate multi-winner elections with Allocated Score",
		Long: `allocscore elects several winners from score ballots using Allocated Score.

Each round elects the candidate with the highest weighted score, then spends
one quota of ballot weight from that candidate's strongest supporters so
later rounds favour voters who are not yet represented.

Configuration is read from defaults, the YAML file named by ALLOCSCORE_CONFIG,
and ALLOCSCORE_* environment variables; flags override all of them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logLevel := cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := cmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		if *logLevel != "" {
			cfg.LogLevel = *logLevel
		}
		if *logFormat != "" {
			cfg.LogFormat = *logFormat
		}

		log, err := logger.New(cmd.ErrOrStderr(), cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		if err := logger.SetLevelString(cfg.LogLevel); err != nil {
			log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
			_ = logger.SetLevelString("info")
		}

		logger.Init(log)
		rt.cfg = cfg
		return nil
	}

	cmd.AddCommand(newTabulateCommand(rt))
	cmd.AddCommand(newDemoCommand(rt))

	return cmd
}

// addEngineFlags registers the flags shared by commands that tabulate.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Report format: text or json")
	cmd.Flags().Bool("rounds", false, "Include the per-round trace in the report")
	cmd.Flags().String("split-basis", "", "Split point ordering: score or weighted")
	cmd.Flags().Float64("tolerance", 0, "Quota comparison tolerance")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
}

// applyEngineFlags copies explicitly set flags over the loaded config.
func applyEngineFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("format") {
		cfg.ReportFormat, err = flags.GetString("format")
		if err != nil {
			return err
		}
	}
	if flags.Changed("rounds") {
		cfg.ShowRounds, err = flags.GetBool("rounds")
		if err != nil {
			return err
		}
	}
	if flags.Changed("split-basis") {
		cfg.SplitBasis, err = flags.GetString("split-basis")
		if err != nil {
			return err
		}
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance, err = flags.GetFloat64("tolerance")
		if err != nil {
			return err
		}
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, err = flags.GetString("metrics-file")
		if err != nil {
			return err
		}
	}
	return cfg.Validate()
}

// newService builds the tabulation service from the effective config.
func (rt *session) newService() (*service.Service, error) {
	basis, err := allocation.ParseSplitBasis(rt.cfg.SplitBasis)
	if err != nil {
		return nil, err
	}
	engine := allocation.New(
		allocation.WithSplitBasis(basis),
		allocation.WithTolerance(rt.cfg.Tolerance),
	)
	return service.New(
		service.WithLogger(logger.Named("service")),
		service.WithMetrics(rt.metrics),
		service.WithEngine(engine),
		service.WithDefaultMaxScore(rt.cfg.MaxScore),
		service.WithDefaultSeats(rt.cfg.Seats),
	), nil
}

// finish writes the metrics textfile when one is configured.
func (rt *session) finish(cmd *cobra.Command) error {
	if rt.cfg.MetricsFile == "" {
		return nil
	}
	if err := rt.metrics.WriteTextfile(rt.cfg.MetricsFile); err != nil {
		return err
	}
	logger.Get().Debug(cmd.Context(), "metrics written", logger.String("path", rt.cfg.MetricsFile))
	return nil
}

func writeReport(cmd *cobra.Command, cfg *config.Config, rep report.Report) error {
	rep.ShowRounds = cfg.ShowRounds
	return report.Write(cmd.OutOrStdout(), cfg.ReportFormat, rep)
}
