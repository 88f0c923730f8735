package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	unitName = "shade.service"

	unitTemplate = `[Unit]
Description=Display color temperature adjustment
PartOf=graphical-session.target
After=graphical-session.target

[Service]
ExecStart=/path/to/shade daemon
Restart=on-failure
# first signal fades back to neutral, the second one exits at once
KillSignal=SIGINT
TimeoutStopSec=15

[Install]
WantedBy=graphical-session.target
`
)

// Seams for tests.
var (
	fs         = afero.NewOsFs()
	executable = os.Executable
	systemctl  = func(args ...string) error {
		return exec.Command("systemctl", append([]string{"--user"}, args...)...).Run()
	}
)

// UnitPath is where the systemd user unit is written.
func UnitPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "systemd", "user", unitName), nil
}

// Install writes a systemd user unit running the current executable and
// starts it.
func Install() error {
	// Get the path to the current executable
	exePath, err := executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	unitPath, err := UnitPath()
	if err != nil {
		return err
	}

	unit := strings.ReplaceAll(unitTemplate, "/path/to/shade", exePath)

	logrus.Infof("writing systemd user unit to %s", unitPath)

	err = fs.MkdirAll(filepath.Dir(unitPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(unitPath), err)
	}

	// warn if the file already exists
	if exists, _ := afero.Exists(fs, unitPath); exists {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	err = afero.WriteFile(fs, unitPath, []byte(unit), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	logrus.Infof("starting shade")

	if err := systemctl("daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd user units: %w", err)
	}
	if err := systemctl("enable", "--now", unitName); err != nil {
		return fmt.Errorf("failed to enable %s: %w", unitName, err)
	}

	return nil
}
