package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/charlie0129/shade/pkg/config"
	daemonutils "github.com/charlie0129/shade/pkg/utils/daemon"
)

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	var flags *colorFlags

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install shade as a systemd user service",
		GroupID: gInstallation,
		Long: `Install shade daemon as a systemd user service.

This makes shade run in the background of your graphical session and start
automatically on login. Settings given as flags are saved to the config file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}
			if err := conf.Merge(flags.raw()); err != nil {
				return err
			}

			err = daemonutils.Install()
			if err != nil {
				return fmt.Errorf("failed to install daemon: %v", err)
			}

			// Keep an existing config file as is unless flags change it.
			exists, _ := afero.Exists(afero.NewOsFs(), configPath)
			if !exists || cmd.Flags().NFlag() > 0 {
				if err := conf.Save(); err != nil {
					return pkgerrors.Wrapf(err, "failed to save config")
				}
				logrus.Infof("config saved to %s", configPath)
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("systemd will use current binary (%s) at login so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run `shade install' again.\n", exePath)

			return nil
		},
	}

	flags = addColorFlags(cmd.Flags(), true)

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall the shade systemd user service",
		GroupID: gInstallation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := daemonutils.Uninstall()
			if err != nil {
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			fmt.Println("successfully uninstalled")

			cmd.Printf("Your config is kept in %s, in case you want to use `shade' again. If you want a complete uninstall, you can remove both config file and shade itself manually.\n", configPath)

			return nil
		},
	}

	return cmd
}
