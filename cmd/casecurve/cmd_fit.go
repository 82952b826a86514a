package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/casecurve/expfit"
	"github.com/sartorproj/casecurve/plotspec"
	"github.com/sartorproj/casecurve/timeseries"
)

// fitFlags override the analysis section of the config for one run.
type fitFlags struct {
	start, end  int
	scale, rate float64
}

func (f *fitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.start, "start", -1, "first daily index of the fit window (default from config)")
	cmd.Flags().IntVar(&f.end, "end", -1, "end of the fit window, exclusive; 0 means the last day (default from config)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "initial guess for the scale (default from config)")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "initial guess for the rate (default from config)")
}

// resolve merges flags set on cmd with the config.
func (a *app) resolve(cmd *cobra.Command, f *fitFlags, days int) (expfit.Window, expfit.Params) {
	an := a.cfg.Analysis
	w := expfit.Window{Start: an.FitStart, End: an.FitEnd}
	guess := expfit.Params{Scale: an.InitialScale, Rate: an.InitialRate}

	if cmd.Flags().Changed("start") {
		w.Start = f.start
	}
	if cmd.Flags().Changed("end") {
		w.End = f.end
	}
	if cmd.Flags().Changed("scale") {
		guess.Scale = f.scale
	}
	if cmd.Flags().Changed("rate") {
		guess.Rate = f.rate
	}
	if w.End <= 0 {
		w.End = days
	}
	return w, guess
}

// fitDaily fits the window of daily chosen by flags and config.
func (a *app) fitDaily(cmd *cobra.Command, f *fitFlags, daily *timeseries.Series) (*expfit.Result, expfit.Window, error) {
	w, guess := a.resolve(cmd, f, daily.Len())

	opts := expfit.DefaultOptions()
	opts.MaxIterations = a.cfg.Analysis.MaxIterations
	opts.Logger = a.logger

	a.logger.Info("fitting",
		zap.String("series", daily.Name),
		zap.Stringer("window", w),
		zap.Float64("scale0", guess.Scale),
		zap.Float64("rate0", guess.Rate),
	)
	res, err := expfit.FitWindow(daily, w, guess, opts)
	return res, w, err
}

func (a *app) fitCmd() *cobra.Command {
	var flags fitFlags

	cmd := &cobra.Command{
		Use:   "fit <region>",
		Short: "Fit scale·exp(rate·day) to a window of daily counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, daily, _, err := a.regionSeries(args[0])
			if err != nil {
				return err
			}

			res, w, err := a.fitDaily(cmd, &flags, daily)
			if err != nil {
				var nc *expfit.NonConvergenceError
				if errors.As(err, &nc) {
					a.logger.Warn("fit did not converge",
						zap.Int("iterations", nc.Iterations),
						zap.String("reason", nc.Reason),
					)
				}
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, args[0], daily, w, res.Summary())
			if p, n, ok := expfit.LogLinear(daily, w); ok {
				fmt.Fprintf(out, "log-linear:     scale=%.6g rate=%.6g (%d positive days)\n", p.Scale, p.Rate, n)
			} else {
				fmt.Fprintln(out, "log-linear:     not enough positive days")
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printSummary(out io.Writer, region string, daily *timeseries.Series, w expfit.Window, s *expfit.Summary) {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Exponential fit: %s, window %s", region, w)
	if daily.HasTimestamps() {
		fmt.Fprintf(out, " (%s to %s)",
			daily.Timestamps[w.Start].Format(timeseries.DateFormat),
			daily.Timestamps[w.End-1].Format(timeseries.DateFormat))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "scale:          %.6g\n", s.Params.Scale)
	fmt.Fprintf(out, "rate:           %.6g\n", s.Params.Rate)
	fmt.Fprintf(out, "doubling time:  %.2f days\n", s.DoublingTime)
	fmt.Fprintf(out, "iterations:     %d\n", s.Iterations)
	fmt.Fprintf(out, "observations:   %d\n", s.NObs)
	fmt.Fprintf(out, "RMSE:           %.4g\n", s.RMSE)
	fmt.Fprintf(out, "MAE:            %.4g\n", s.MAE)
	fmt.Fprintf(out, "MAPE:           %.2f%%\n", s.MAPE)
	fmt.Fprintf(out, "R²:             %.4f\n", s.RSquared)
	if lb := s.LjungBox; lb != nil {
		fmt.Fprintf(out, "Ljung-Box Q(%d): %.3f (p=%.4f)\n", lb.Lags, lb.Statistic, lb.PValue)
		if lb.Autocorrelated(0.05) {
			fmt.Fprintln(out, "  residuals are autocorrelated at 5%")
		}
	}
}

func (a *app) plotCmd() *cobra.Command {
	var (
		flags fitFlags
		path  string
	)

	cmd := &cobra.Command{
		Use:   "plot <region>",
		Short: "Chart daily counts, the moving average and the fitted curve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region := args[0]
			_, daily, avg, err := a.regionSeries(region)
			if err != nil {
				return err
			}

			x, y := plotspec.XY(daily.ZeroToUndefined())
			ax, ay := plotspec.XY(avg)
			spec := plotspec.New(region).
				WithLabels("date", "new cases").
				WithLogY().
				WithTimeAxis("Jan 2").
				With(
					plotspec.Points("daily", x, y),
					plotspec.Line(fmt.Sprintf("%d-day average", a.cfg.Analysis.Window), ax, ay),
				)

			res, w, err := a.fitDaily(cmd, &flags, daily)
			switch {
			case errors.Is(err, expfit.ErrNonConvergence):
				a.logger.Warn("fit did not converge, curve omitted", zap.Error(err))
			case err != nil:
				return err
			default:
				fitted := daily.Slice(w.Start, w.End)
				fx, _ := plotspec.XY(fitted)
				fy := res.Predict(indexRange(w))
				spec = spec.With(plotspec.Line(fmt.Sprintf("fit, rate %.3f", res.Rate), fx, fy).WithDashes())
			}

			if path == "" {
				path = filepath.Join(a.cfg.Output.Dir, fileName(region)+".png")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}

			width, height := a.chartSize()
			st, err := plotspec.Render(spec, path, width, height)
			if err != nil {
				return err
			}
			a.logger.Info("wrote chart",
				zap.String("file", path),
				zap.Int("plotted", st.Plotted),
				zap.Int("undefined", st.Undefined),
				zap.Int("non_positive", st.NonPositive),
			)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&path, "output", "o", "", "image file (default <output.dir>/<region>.png)")
	return cmd
}

func indexRange(w expfit.Window) []float64 {
	x := make([]float64, 0, w.Len())
	for i := w.Start; i < w.End; i++ {
		x = append(x, float64(i))
	}
	return x
}

// fileName turns a region label into a file name.
func fileName(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ',', '*':
			return '_'
		}
		return r
	}, strings.ToLower(label))
}
