package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/jobhealth/internal/config"
	"github.com/psantana5/jobhealth/internal/logging"
	"github.com/psantana5/jobhealth/internal/pipeline"
	"github.com/psantana5/jobhealth/internal/report"
)

// app carries state resolved once per invocation
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     *logging.Logger
}

// Execute builds the command tree and runs it
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "jobhealth <logfile>",
		Short: "Report slow and unfinished jobs from a START/END event log",
		Long: `jobhealth reads a job event log (HH:MM:SS,<description>,<START|END>,<job id>)
and prints one line per job whose run time exceeded the warning or error
threshold, or that never logged both a START and an END.

Example:
  jobhealth /var/log/batch/events.log
  jobhealth events.log --warning-threshold 2m --error-threshold 15m`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
		PersistentPostRun: a.close,
		RunE:              a.runReport,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./jobhealth.yaml or $HOME/.jobhealth/jobhealth.yaml)")
	flags.Duration("warning-threshold", defaults.Thresholds.Warning, "runs longer than this are WARNING")
	flags.Duration("error-threshold", defaults.Thresholds.Error, "runs longer than this are ERROR")
	flags.String("log-level", defaults.Log.Level, "diagnostic log level: debug, info, warn, error")
	flags.String("log-file", "", "also write diagnostic logs to this rotated file")
	flags.String("metrics-file", "", "write Prometheus textfile metrics here after a successful run")

	rootCmd.AddCommand(newSummaryCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// initConfig resolves configuration and builds the logger
func (a *app) initConfig(cmd *cobra.Command, args []string) error {
	a.v = config.New(a.cfgFile)

	flags := cmd.Flags()
	bindings := map[string]string{
		"thresholds.warning": "warning-threshold",
		"thresholds.error":   "error-threshold",
		"log.level":          "log-level",
		"log.file":           "log-file",
		"metrics.file":       "metrics-file",
	}
	for key, name := range bindings {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Log, cmd.ErrOrStderr())
	a.log.WithField("config", a.v.ConfigFileUsed()).Debug("configuration loaded")
	return nil
}

func (a *app) close(cmd *cobra.Command, args []string) {
	if a.log != nil {
		a.log.Close()
	}
}

// run closes the log file on every path; cobra skips post-run hooks on error.
func (a *app) run(path string) (*pipeline.Outcome, error) {
	defer a.log.Close()

	out, err := pipeline.Run(pipeline.Options{
		Path:        path,
		Thresholds:  a.cfg.ReportThresholds(),
		MetricsFile: a.cfg.Metrics.File,
		Log:         a.log,
	})
	if err != nil {
		a.log.WithError(err).Error("report aborted")
		return nil, err
	}
	return out, nil
}

func (a *app) runReport(cmd *cobra.Command, args []string) error {
	out, err := a.run(args[0])
	if err != nil {
		return err
	}
	return report.WriteReport(cmd.OutOrStdout(), out.Results)
}
