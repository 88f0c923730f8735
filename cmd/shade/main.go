package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/shade/pkg/client"
	"github.com/charlie0129/shade/pkg/config"
	"github.com/charlie0129/shade/pkg/version"
)

var (
	logLevel       = "info"
	unixSocketPath = defaultSocketPath()
	configPath     = config.DefaultPath()
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
		gInstallation,
	}
)

var apiClient *client.Client

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "shade.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("shade-%d.sock", os.Getuid()))
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: shade daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'shade daemon', or install it with 'shade install'.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintf(os.Stderr, "  - The daemon socket %s belongs to another user\n", unixSocketPath)
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shade",
		Short: "shade adjusts the color temperature of your screen to the time of day",
		Long: `shade adjusts the color temperature of your screen to the time of day.

During the day the screen keeps its day settings; at night it is tinted
warmer. Dawn and dusk are faded smoothly, following either the position of
the sun at your location or fixed clock times.

Version: ` + version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}
			apiClient = client.NewClient(unixSocketPath)
			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path (.json, .yaml or .yml)")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "shade daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewOneshotCommand(),
		NewSetCommand(),
		NewResetCommand(),
		NewPrintCommand(),
		NewStatusCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
