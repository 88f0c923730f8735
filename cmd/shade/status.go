package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/shade/pkg/events"
	"github.com/charlie0129/shade/pkg/period"
)

func printTick(cmd *cobra.Command, st *events.TickEvent) {
	cmd.Printf("%s %s\n", bold("Period:"), periodColor(st.Period).Sprint(st.Period))
	if st.Info.Kind == period.InfoElevation {
		cmd.Printf("%s %s at %s\n", bold("Solar elevation:"), st.Info.Elevation, st.Info.Location)
	}
	cmd.Printf("%s %s\n", bold("Current:"), st.Current)
	cmd.Printf("%s %s\n", bold("Target:"), st.Target)
	cmd.Printf("%s %s\n", bold("Fade:"), st.Fade)
	if st.Interrupted {
		cmd.Println(color.New(color.FgRed).Sprint("Daemon is resetting the screen and will exit"))
	}
	cmd.Printf("%s %s\n", bold("Updated:"), time.Unix(st.Ts, 0).Format(time.Kitchen))
}

func NewStatusCommand() *cobra.Command {
	var follow, asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of the shade daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !follow {
				st, err := apiClient.GetStatus()
				if err != nil {
					return err
				}
				if asJSON {
					b, err := json.MarshalIndent(st, "", "  ")
					if err != nil {
						return err
					}
					cmd.Println(string(b))
					return nil
				}
				printTick(cmd, st)
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			ch, err := apiClient.SubscribeEvents(ctx)
			if err != nil {
				return err
			}
			for ev := range ch {
				if ev.Name != events.DaemonTick {
					continue
				}
				if asJSON {
					cmd.Println(string(ev.Data))
					continue
				}
				st, err := events.DecodeAs[events.TickEvent](ev)
				if err != nil {
					return err
				}
				printTick(cmd, &st)
				cmd.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep printing every tick")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	return cmd
}
