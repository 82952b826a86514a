package main

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/casecurve/fetch"
	"github.com/sartorproj/casecurve/table"
	"github.com/sartorproj/casecurve/timeseries"
)

func (a *app) fetchCmd() *cobra.Command {
	var shapes bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the cases table (and optionally the country shapes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.GetTimeout())
			defer cancel()

			f := fetch.New(&http.Client{}, a.logger)
			n, err := f.Download(ctx, a.cfg.Data.CasesURL, a.cfg.Data.CasesFile)
			if err != nil {
				a.logger.Error("cases download failed", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes\n", a.cfg.Data.CasesFile, n)

			if !shapes {
				return nil
			}
			paths, err := f.DownloadArchive(ctx, a.cfg.Data.ShapesURL, a.cfg.Data.ShapesDir)
			if err != nil {
				a.logger.Error("shapes download failed", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files\n", a.cfg.Data.ShapesDir, len(paths))
			return nil
		},
	}
	cmd.Flags().BoolVar(&shapes, "shapes", false, "also download and extract the country shapes archive")
	return cmd
}

func (a *app) regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions [prefix]",
		Short: "List regions, or the entities whose region starts with prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, region := range table.DistinctRegions(t) {
					fmt.Fprintln(out, region)
				}
				return nil
			}

			matches := table.FillSubRegions(table.FindByPrefix(t, args[0]))
			for _, e := range matches {
				fmt.Fprintf(out, "%d\t%s\n", e.Row, e.Label())
			}
			if len(matches) == 0 {
				a.logger.Info("no region matches prefix", zap.String("prefix", args[0]))
			}
			return nil
		},
	}
}

// regionSeries returns the cumulative, daily and moving-average series of
// the first row of region.
func (a *app) regionSeries(region string) (cumulative, daily, avg *timeseries.Series, err error) {
	t, err := a.loadTable()
	if err != nil {
		return nil, nil, nil, err
	}
	row, err := table.FindRow(t, region)
	if err != nil {
		return nil, nil, nil, err
	}
	cumulative, err = t.Series(row)
	if err != nil {
		return nil, nil, nil, err
	}

	daily = cumulative.Diff()
	avg = daily.MovingAverage(a.cfg.Analysis.Window)
	a.logger.Debug("series",
		zap.String("region", region),
		zap.Int("row", row),
		zap.Int("days", daily.Len()),
		zap.Int("averages", avg.Len()),
	)
	return cumulative, daily, avg, nil
}

func (a *app) seriesCmd() *cobra.Command {
	var csvFile string

	cmd := &cobra.Command{
		Use:   "series <region>",
		Short: "Print cumulative, daily and moving-average counts of a region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cumulative, daily, avg, err := a.regionSeries(args[0])
			if err != nil {
				return err
			}

			if csvFile != "" {
				if err := timeseries.SaveCSV(csvFile, cumulative, daily, avg); err != nil {
					return err
				}
				a.logger.Info("wrote series", zap.String("file", csvFile), zap.Int("rows", cumulative.Len()))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "date\tcumulative\tdaily\taverage\t")
			for i, ts := range cumulative.Timestamps {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
					ts.Format(timeseries.DateFormat),
					formatCount(cumulative.Values[i]),
					formatCount(valueAt(daily, i-1)),
					formatCount(valueAt(avg, i-a.cfg.Analysis.Window)),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "daily: min %s, max %s, mean %.2f\n",
				formatCount(daily.Min()), formatCount(daily.Max()), daily.Mean())
			return nil
		},
	}
	cmd.Flags().StringVar(&csvFile, "csv", "", "write the series to this CSV file instead")
	return cmd
}

// valueAt returns s.Values[i], or NaN outside the series.
func valueAt(s *timeseries.Series, i int) float64 {
	if i < 0 || i >= s.Len() {
		return math.NaN()
	}
	return s.Values[i]
}

func formatCount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "-"
	case v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
