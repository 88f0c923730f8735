package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/charlie0129/shade/pkg/adjuster"
	"github.com/charlie0129/shade/pkg/config"
	"github.com/charlie0129/shade/pkg/types"
)

// colorFlags are command line overrides of the config file.
type colorFlags struct {
	temperature string
	brightness  string
	gamma       string
	scheme      string
	location    string
	method      string
	resetRamps  bool
	disableFade bool
	fadeSteps   int
	sleepMs     int
	fadeSleepMs int

	flags *pflag.FlagSet
}

func addColorFlags(f *pflag.FlagSet, withFade bool) *colorFlags {
	c := &colorFlags{flags: f}
	f.StringVarP(&c.temperature, "temperature", "t", "", "color temperature in Kelvin, as day-night (e.g. 6500-4500) or a single value")
	f.StringVarP(&c.brightness, "brightness", "b", "", "screen brightness from 0.1 to 1.0, as day-night or a single value")
	f.StringVarP(&c.gamma, "gamma", "g", "", "gamma correction as v or r:g:b, day-night or a single value")
	f.StringVarP(&c.scheme, "scheme", "s", "", "transition scheme: elevation high:low (e.g. 3:-6) or times dawn-dusk (e.g. 06:00-07:45-18:35-20:15)")
	f.StringVar(&c.location, "location", "", "latitude:longitude, or geoclue2")
	f.StringVarP(&c.method, "method", "m", "", "adjustment method")
	f.BoolVarP(&c.resetRamps, "reset-ramps", "r", false, "reset existing gamma ramps before applying")
	if withFade {
		f.BoolVarP(&c.disableFade, "disable-fade", "d", false, "jump to new colors instead of fading")
		f.IntVar(&c.fadeSteps, "fade-steps", 0, "number of steps in a fade")
		f.IntVar(&c.sleepMs, "sleep-duration", 0, "milliseconds between updates when not fading")
		f.IntVar(&c.fadeSleepMs, "fade-sleep-duration", 0, "milliseconds between fade steps")
	}
	return c
}

// raw returns only the flags that were given explicitly.
func (c *colorFlags) raw() *config.RawFileConfig {
	r := &config.RawFileConfig{}
	str := func(name string, v string) *string {
		if !c.flags.Changed(name) {
			return nil
		}
		return &v
	}
	integer := func(name string, v int) *int {
		if c.flags.Lookup(name) == nil || !c.flags.Changed(name) {
			return nil
		}
		return &v
	}
	boolean := func(name string, v bool) *bool {
		if c.flags.Lookup(name) == nil || !c.flags.Changed(name) {
			return nil
		}
		return &v
	}
	r.Temperature = str("temperature", c.temperature)
	r.Brightness = str("brightness", c.brightness)
	r.Gamma = str("gamma", c.gamma)
	r.Scheme = str("scheme", c.scheme)
	r.Location = str("location", c.location)
	r.Method = str("method", c.method)
	r.ResetRamps = boolean("reset-ramps", c.resetRamps)
	r.DisableFade = boolean("disable-fade", c.disableFade)
	r.FadeSteps = integer("fade-steps", c.fadeSteps)
	r.SleepDuration = integer("sleep-duration", c.sleepMs)
	r.SleepDurationShort = integer("fade-sleep-duration", c.fadeSleepMs)
	return r
}

// loadConfig reads the config file and applies the command line on top.
func (c *colorFlags) loadConfig() (config.Config, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := conf.Merge(c.raw()); err != nil {
		return nil, err
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")
	return conf, nil
}

func applyOnce(conf config.Config, cs types.ColorSettings, resetRamps bool) error {
	adj, err := adjuster.New(conf.Method())
	if err != nil {
		return err
	}
	return adj.Set(resetRamps, cs)
}
