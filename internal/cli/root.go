// Package cli implements the radreport command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/queryshv/rad-report/internal/config"
	"github.com/queryshv/rad-report/internal/logging"
	"github.com/queryshv/rad-report/internal/schedule"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfgFile string
	verbose bool

	cfg config.Config
	log *zap.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "radreport",
		Short: "Daily radiation-detection report service",
		Long: `radreport keeps the operator duty schedule and composes the daily
radiation-detection status report in Khmer.

Quick start:
  radreport serve                    Start the HTTP server
  radreport import rota.xlsx         Merge a rota spreadsheet into the schedule
  radreport export -o schedule.xlsx  Export the schedule
  radreport compose draft.json       Print the report for a draft`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./radreport.yaml or $HOME/.radreport/radreport.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newComposeCmd(a))
	root.AddCommand(newScheduleCmd(a))
	return root
}

func (a *app) init() error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Verbose: a.verbose})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	if used := v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// openStore opens the configured backend. The returned close function
// releases it.
func (a *app) openStore() (*schedule.Store, func() error, error) {
	switch a.cfg.Store.Driver {
	case config.DriverSQLite:
		b, err := schedule.OpenSQLite(a.cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open schedule database: %w", err)
		}
		return schedule.NewStore(b, a.log), b.Close, nil
	default:
		b := schedule.NewFileBackend(a.cfg.Store.Path)
		return schedule.NewStore(b, a.log), func() error { return nil }, nil
	}
}
