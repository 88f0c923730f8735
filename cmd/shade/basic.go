package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/shade/pkg/location"
	"github.com/charlie0129/shade/pkg/period"
	"github.com/charlie0129/shade/pkg/types"
	"github.com/charlie0129/shade/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			if daemonVersion, err := apiClient.GetVersion(); err == nil && daemonVersion != version.Version {
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"daemonVersion": daemonVersion,
				}).Warn("Version mismatch between client and daemon. Restart the daemon after upgrading.")
			}
		},
	}
}

func NewOneshotCommand() *cobra.Command {
	var flags *colorFlags

	cmd := &cobra.Command{
		Use:     "oneshot",
		Short:   "Adjust the screen once for the current time and exit",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := flags.loadConfig()
			if err != nil {
				return err
			}

			location.WarnIfDefault(conf.Scheme(), conf.Location())
			p, info, err := period.Classify(conf.Scheme(), conf.Location(), time.Now())
			if err != nil {
				return err
			}
			colors := conf.ColorSettings()
			target := colors.Night.Interpolate(colors.Day, p.Alpha())

			if err := applyOnce(conf, target, conf.ResetRamps()); err != nil {
				return err
			}

			cmd.Printf("%s %s\n", bold("Period:"), p)
			cmd.Printf("%s %s\n", bold("From:"), info)
			cmd.Printf("%s %s\n", bold("Applied:"), target)
			return nil
		},
	}

	flags = addColorFlags(cmd.Flags(), false)

	return cmd
}

func NewSetCommand() *cobra.Command {
	var flags *colorFlags

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Apply fixed settings regardless of the time of day",
		GroupID: gBasic,
		Long: `Apply fixed settings regardless of the time of day.

Uses the day values of --temperature, --brightness and --gamma, e.g.
"shade set -t 4000 -b 0.9".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := flags.loadConfig()
			if err != nil {
				return err
			}

			cs := conf.ColorSettings().Day
			if err := applyOnce(conf, cs, conf.ResetRamps()); err != nil {
				return err
			}

			cmd.Printf("%s %s\n", bold("Applied:"), cs)
			return nil
		},
	}

	flags = addColorFlags(cmd.Flags(), false)

	return cmd
}

func NewResetCommand() *cobra.Command {
	var flags *colorFlags

	cmd := &cobra.Command{
		Use:     "reset",
		Short:   "Reset the screen to neutral colors",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := flags.loadConfig()
			if err != nil {
				return err
			}

			if err := applyOnce(conf, types.DefaultColorSettings(), true); err != nil {
				return err
			}

			cmd.Println("screen reset to neutral colors")
			return nil
		},
	}

	flags = addColorFlags(cmd.Flags(), false)

	return cmd
}
