package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/casecurve/geo"
	"github.com/sartorproj/casecurve/plotspec"
	"github.com/sartorproj/casecurve/timeseries"
)

func (a *app) framesCmd() *cobra.Command {
	var (
		day     int
		csvFile string
	)

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Join coordinates with daily counts for the map animation",
		Long: `frames builds one marker per entity and day: its coordinates, the daily
count and a marker size of max(1, count). Entities without coordinates are
left out.

With --csv every marker of every day is written to a CSV file. With --day
the markers of that day are drawn as a bubble chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTable()
			if err != nil {
				return err
			}
			m, err := geo.BuildMatrix(t)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if csvFile != "" {
				n, err := writeMarkers(csvFile, m)
				if err != nil {
					return err
				}
				a.logger.Info("wrote markers", zap.String("file", csvFile), zap.Int("markers", n))
				fmt.Fprintf(out, "%s: %d markers\n", csvFile, n)
			}

			if !cmd.Flags().Changed("day") {
				if csvFile == "" {
					fmt.Fprintf(out, "%d entities, %d days\n", len(m.Rows), m.Days())
				}
				return nil
			}
			if day < 0 || day >= m.Days() {
				return fmt.Errorf("day %d out of range [0, %d)", day, m.Days())
			}

			var lon, lat, sizes []float64
			for mk := range m.Day(day) {
				lon = append(lon, mk.Coordinate.Lon)
				lat = append(lat, mk.Coordinate.Lat)
				sizes = append(sizes, mk.Magnitude)
			}

			date := m.Dates[day].Format(timeseries.DateFormat)
			spec := plotspec.New("New cases "+date).
				WithLabels("longitude", "latitude").
				With(plotspec.Bubbles("", lon, lat, sizes))

			path := filepath.Join(a.cfg.Output.Dir, fmt.Sprintf("frame-%03d.png", day))
			if err := os.MkdirAll(a.cfg.Output.Dir, 0755); err != nil {
				return err
			}
			width, height := a.chartSize()
			st, err := plotspec.Render(spec, path, width, height)
			if err != nil {
				return err
			}
			a.logger.Info("wrote frame", zap.String("file", path), zap.String("date", date), zap.Int("markers", st.Plotted))
			fmt.Fprintln(out, path)
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "render the bubble chart of this day index")
	cmd.Flags().StringVar(&csvFile, "csv", "", "write all markers to this CSV file")
	return cmd
}

func writeMarkers(path string, m *geo.Matrix) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := geo.WriteCSV(f, m.Markers())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
