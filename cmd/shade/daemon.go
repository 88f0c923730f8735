package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/shade/pkg/daemon"
	"github.com/charlie0129/shade/pkg/version"
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	var flags *colorFlags

	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run shade daemon in the foreground",
		GroupID: gAdvanced,
		Long: `Run shade daemon in the foreground.

The daemon keeps adjusting the screen until interrupted. The first interrupt
(Ctrl-C or SIGTERM) fades the screen back to neutral and then exits; a
second one exits immediately.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("shade daemon starting")
			return daemon.Run(configPath, unixSocketPath, flags.raw())
		},
	}

	flags = addColorFlags(cmd.Flags(), true)

	return cmd
}
