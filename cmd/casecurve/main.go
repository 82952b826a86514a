// Command casecurve downloads the global confirmed-case table and explores
// it: daily counts, moving averages, exponential fits and map frames.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/sartorproj/casecurve/config"
	"github.com/sartorproj/casecurve/table"
)

// app carries the state shared by all commands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "casecurve",
		Short: "Explore cumulative case counts by region",
		Long: `casecurve works on the global confirmed-case time series table.

It turns cumulative counts into daily counts and 7-day averages, fits an
exponential curve to a hand-picked window, and writes charts and map frames.

Run "casecurve fetch" first to download the table.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "casecurve.yaml", "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.fetchCmd(),
		a.regionsCmd(),
		a.seriesCmd(),
		a.fitCmd(),
		a.plotCmd(),
		a.framesCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	level, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Logging.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

// loadTable reads and renames the cases table.
func (a *app) loadTable() (*table.Table, error) {
	t, err := table.Load(a.cfg.Data.CasesFile, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.cfg.Data.CasesFile, err)
	}
	if err := t.RenameColumns(); err != nil {
		return nil, err
	}
	a.logger.Debug("loaded table",
		zap.String("file", a.cfg.Data.CasesFile),
		zap.Int("rows", t.Nrow()),
		zap.Int("dates", len(t.DateLabels())),
	)
	return t, nil
}

// chartSize returns the configured output size.
func (a *app) chartSize() (vg.Length, vg.Length) {
	return vg.Length(a.cfg.Output.Width) * vg.Inch, vg.Length(a.cfg.Output.Height) * vg.Inch
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
