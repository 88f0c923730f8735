package config

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/shade/pkg/adjuster"
	"github.com/charlie0129/shade/pkg/location"
	"github.com/charlie0129/shade/pkg/types"
)

type Config interface {
	Temperature() types.DayNight[types.Temperature]
	Brightness() types.DayNight[types.Brightness]
	Gamma() types.DayNight[types.Gamma]
	// ColorSettings combines temperature, brightness and gamma.
	ColorSettings() types.DayNight[types.ColorSettings]
	Scheme() types.TransitionScheme
	Location() location.Provider
	Method() adjuster.Method
	ResetRamps() bool
	DisableFade() bool
	FadeSteps() int
	SleepDuration() time.Duration
	SleepDurationShort() time.Duration

	// Merge overlays the non-nil fields of c. Nothing changes if the result
	// is invalid.
	Merge(c *RawFileConfig) error

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
