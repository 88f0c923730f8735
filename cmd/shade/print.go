package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/nathan-osman/go-sunrise"
	"github.com/spf13/cobra"

	"github.com/charlie0129/shade/pkg/location"
	"github.com/charlie0129/shade/pkg/period"
	"github.com/charlie0129/shade/pkg/solar"
	"github.com/charlie0129/shade/pkg/types"
)

type tableRow struct {
	at        time.Time
	elevation types.Elevation
	period    types.Period
	colors    types.ColorSettings
}

// dayTable evaluates the settings every step from local midnight of day.
func dayTable(day time.Time, loc types.Location, scheme types.TransitionScheme, colors types.DayNight[types.ColorSettings], step time.Duration) ([]tableRow, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	provider := location.Manual(loc)

	var rows []tableRow
	for t := start; t.Before(end); t = t.Add(step) {
		p, _, err := period.Classify(scheme, provider, t)
		if err != nil {
			return nil, err
		}
		rows = append(rows, tableRow{
			at:        t,
			elevation: solar.ElevationAt(t, loc),
			period:    p,
			colors:    colors.Night.Interpolate(colors.Day, p.Alpha()),
		})
	}
	return rows, nil
}

func periodColor(p types.Period) *color.Color {
	switch p.Kind {
	case types.PeriodNight:
		return color.New(color.FgBlue)
	case types.PeriodTransition:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgYellow)
	}
}

func formatClock(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.Local().Format("15:04")
}

func NewPrintCommand() *cobra.Command {
	var flags *colorFlags
	var date string
	var step time.Duration

	cmd := &cobra.Command{
		Use:     "print",
		Short:   "Print the solar elevation and settings over a day",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if step <= 0 {
				return fmt.Errorf("step must be positive, got %s", step)
			}
			conf, err := flags.loadConfig()
			if err != nil {
				return err
			}
			loc, err := conf.Location().Get()
			if err != nil {
				return err
			}

			day := time.Now()
			if date != "" {
				day, err = time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return err
				}
			}

			rows, err := dayTable(day, loc, conf.Scheme(), conf.ColorSettings(), step)
			if err != nil {
				return err
			}

			rise, set := sunrise.SunriseSunset(float64(loc.Lat), float64(loc.Lon), day.Year(), day.Month(), day.Day())

			cmd.Printf("%s %s\n", bold("Location:"), loc)
			cmd.Printf("%s %s\n", bold("Scheme:"), conf.Scheme())
			cmd.Printf("%s %s  %s %s\n", bold("Sunrise:"), formatClock(rise), bold("Sunset:"), formatClock(set))
			cmd.Printf("%s %s\n\n", bold("Elevation now:"), solar.ElevationAt(time.Now(), loc))

			cmd.Println(bold("%-6s %10s  %-22s %s", "Time", "Elevation", "Period", "Temperature"))
			for _, r := range rows {
				cmd.Printf("%-6s %10s  %s %s\n",
					r.at.Format("15:04"),
					r.elevation,
					periodColor(r.period).Sprintf("%-22s", r.period),
					r.colors.Temperature,
				)
			}
			return nil
		},
	}

	flags = addColorFlags(cmd.Flags(), false)
	cmd.Flags().StringVar(&date, "date", "", "day to print as YYYY-MM-DD (default today)")
	cmd.Flags().DurationVar(&step, "step", time.Hour, "time between rows")

	return cmd
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
