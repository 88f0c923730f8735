package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/shade/pkg/adjuster"
	"github.com/charlie0129/shade/pkg/location"
	"github.com/charlie0129/shade/pkg/types"
	"github.com/charlie0129/shade/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Temperature:        ptr.To("6500-4500"),
		Brightness:         ptr.To("1.0"),
		Gamma:              ptr.To("1.0"),
		Scheme:             ptr.To("3:-6"),
		Location:           ptr.To("0:0"),
		Method:             ptr.To("dummy"),
		ResetRamps:         ptr.To(false),
		DisableFade:        ptr.To(false),
		FadeSteps:          ptr.To(40),
		SleepDuration:      ptr.To(5000),
		SleepDurationShort: ptr.To(100),
	}
)

// DefaultPath is config.json under $XDG_CONFIG_HOME/shade, falling back to
// ~/.config/shade.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "/"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "shade", "config.json")
}

// RawFileConfig is the on-disk form. Color values use the text forms of the
// types package, e.g. "6500-4500" for day and night temperatures. Durations
// are in milliseconds.
type RawFileConfig struct {
	Temperature        *string `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Brightness         *string `json:"brightness,omitempty" yaml:"brightness,omitempty"`
	Gamma              *string `json:"gamma,omitempty" yaml:"gamma,omitempty"`
	Scheme             *string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Location           *string `json:"location,omitempty" yaml:"location,omitempty"`
	Method             *string `json:"method,omitempty" yaml:"method,omitempty"`
	ResetRamps         *bool   `json:"resetRamps,omitempty" yaml:"resetRamps,omitempty"`
	DisableFade        *bool   `json:"disableFade,omitempty" yaml:"disableFade,omitempty"`
	FadeSteps          *int    `json:"fadeSteps,omitempty" yaml:"fadeSteps,omitempty"`
	SleepDuration      *int    `json:"sleepDuration,omitempty" yaml:"sleepDuration,omitempty"`
	SleepDurationShort *int    `json:"sleepDurationShort,omitempty" yaml:"sleepDurationShort,omitempty"`
}

// merge returns a copy of c with the non-nil fields of o on top.
func (c RawFileConfig) merge(o *RawFileConfig) *RawFileConfig {
	if o == nil {
		return &c
	}
	if o.Temperature != nil {
		c.Temperature = o.Temperature
	}
	if o.Brightness != nil {
		c.Brightness = o.Brightness
	}
	if o.Gamma != nil {
		c.Gamma = o.Gamma
	}
	if o.Scheme != nil {
		c.Scheme = o.Scheme
	}
	if o.Location != nil {
		c.Location = o.Location
	}
	if o.Method != nil {
		c.Method = o.Method
	}
	if o.ResetRamps != nil {
		c.ResetRamps = o.ResetRamps
	}
	if o.DisableFade != nil {
		c.DisableFade = o.DisableFade
	}
	if o.FadeSteps != nil {
		c.FadeSteps = o.FadeSteps
	}
	if o.SleepDuration != nil {
		c.SleepDuration = o.SleepDuration
	}
	if o.SleepDurationShort != nil {
		c.SleepDurationShort = o.SleepDurationShort
	}
	return &c
}

// settings is a validated RawFileConfig with defaults filled in.
type settings struct {
	temperature        types.DayNight[types.Temperature]
	brightness         types.DayNight[types.Brightness]
	gamma              types.DayNight[types.Gamma]
	scheme             types.TransitionScheme
	location           location.Provider
	method             adjuster.Method
	resetRamps         bool
	disableFade        bool
	fadeSteps          int
	sleepDuration      time.Duration
	sleepDurationShort time.Duration
}

func positive(name string, v int) (int, error) {
	if v <= 0 {
		return 0, pkgerrors.Wrapf(types.ErrOutOfRange, "%s must be positive, got %d", name, v)
	}
	return v, nil
}

// validate checks every field and reports all failures together.
func validate(raw *RawFileConfig) (*settings, error) {
	c := defaultFileConfig.merge(raw)
	s := &settings{}
	var result *multierror.Error
	var err error

	if s.temperature, err = types.ParseDayNight(*c.Temperature, types.ParseTemperature); err != nil {
		result = multierror.Append(result, pkgerrors.Wrap(err, "temperature"))
	}
	if s.brightness, err = types.ParseDayNight(*c.Brightness, types.ParseBrightness); err != nil {
		result = multierror.Append(result, pkgerrors.Wrap(err, "brightness"))
	}
	if s.gamma, err = types.ParseDayNight(*c.Gamma, types.ParseGamma); err != nil {
		result = multierror.Append(result, pkgerrors.Wrap(err, "gamma"))
	}
	if s.scheme, err = types.ParseTransitionScheme(*c.Scheme); err != nil {
		result = multierror.Append(result, pkgerrors.Wrap(err, "scheme"))
	}
	if s.location, err = location.ParseProvider(*c.Location); err != nil {
		result = multierror.Append(result, pkgerrors.Wrap(err, "location"))
	}
	if s.method, err = adjuster.ParseMethod(*c.Method); err != nil {
		result = multierror.Append(result, pkgerrors.Wrap(err, "method"))
	}
	if s.fadeSteps, err = positive("fadeSteps", *c.FadeSteps); err != nil {
		result = multierror.Append(result, err)
	}
	ms, err := positive("sleepDuration", *c.SleepDuration)
	if err != nil {
		result = multierror.Append(result, err)
	}
	s.sleepDuration = time.Duration(ms) * time.Millisecond
	ms, err = positive("sleepDurationShort", *c.SleepDurationShort)
	if err != nil {
		result = multierror.Append(result, err)
	}
	s.sleepDurationShort = time.Duration(ms) * time.Millisecond
	s.resetRamps = *c.ResetRamps
	s.disableFade = *c.DisableFade

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	s        *settings
	mu       *sync.RWMutex
	fs       afero.Fs
	filepath string
}

// NewFile loads configPath from the OS filesystem.
func NewFile(configPath string) (*File, error) {
	return NewFileFs(afero.NewOsFs(), configPath)
}

func NewFileFs(fs afero.Fs, configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		fs:       fs,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// NewFileFromConfig validates c without reading anything. A nil c means
// defaults.
func NewFileFromConfig(c *RawFileConfig, fs afero.Fs, configPath string) (*File, error) {
	if c == nil {
		c = &RawFileConfig{}
	}
	s, err := validate(c)
	if err != nil {
		return nil, err
	}

	return &File{
		c:        c,
		s:        s,
		mu:       &sync.RWMutex{},
		fs:       fs,
		filepath: configPath,
	}, nil
}

// NewRawFileConfigFromConfig returns the effective values of c with
// defaults filled in.
func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	f, ok := c.(*File)
	if !ok {
		return nil, pkgerrors.Errorf("unsupported config type %T", c)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}
	return defaultFileConfig.merge(f.c), nil
}

func (f *File) get() *settings {
	if f.s == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.s
}

func (f *File) Temperature() types.DayNight[types.Temperature] { return f.get().temperature }
func (f *File) Brightness() types.DayNight[types.Brightness]   { return f.get().brightness }
func (f *File) Gamma() types.DayNight[types.Gamma]             { return f.get().gamma }
func (f *File) Scheme() types.TransitionScheme                 { return f.get().scheme }
func (f *File) Location() location.Provider                    { return f.get().location }
func (f *File) Method() adjuster.Method                        { return f.get().method }
func (f *File) ResetRamps() bool                               { return f.get().resetRamps }
func (f *File) DisableFade() bool                              { return f.get().disableFade }
func (f *File) FadeSteps() int                                 { return f.get().fadeSteps }
func (f *File) SleepDuration() time.Duration                   { return f.get().sleepDuration }
func (f *File) SleepDurationShort() time.Duration              { return f.get().sleepDurationShort }

func (f *File) ColorSettings() types.DayNight[types.ColorSettings] {
	s := f.get()
	return types.DayNight[types.ColorSettings]{
		Day: types.ColorSettings{
			Temperature: s.temperature.Day,
			Brightness:  s.brightness.Day,
			Gamma:       s.gamma.Day,
		},
		Night: types.ColorSettings{
			Temperature: s.temperature.Night,
			Brightness:  s.brightness.Night,
			Gamma:       s.gamma.Night,
		},
	}
}

func (f *File) Merge(o *RawFileConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}

	c := f.c.merge(o)
	s, err := validate(c)
	if err != nil {
		return err
	}
	f.c, f.s = c, s
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := afero.ReadFile(f.fs, f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, use the defaults.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			f.s, err = validate(f.c)
			return err
		}
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		f.s, err = validate(f.c)
		return err
	}

	conf := RawFileConfig{}
	if isYAML(f.filepath) {
		err = yaml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}

	s, err := validate(&conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}
	f.c, f.s = &conf, s

	return nil
}

// Save writes the explicitly set fields, creating parent directories.
func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	var b []byte
	var err error
	if isYAML(f.filepath) {
		b, err = yaml.Marshal(f.c)
	} else {
		b, err = json.MarshalIndent(f.c, "", "  ")
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	if err := f.fs.MkdirAll(filepath.Dir(f.filepath), 0755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create directory for %s", f.filepath)
	}
	if err := afero.WriteFile(f.fs, f.filepath, b, 0644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.s == nil {
		panic("config is nil")
	}

	cs := f.ColorSettings()
	return logrus.Fields{
		"day":                cs.Day.String(),
		"night":              cs.Night.String(),
		"scheme":             f.Scheme().String(),
		"location":           f.Location().String(),
		"method":             f.Method().String(),
		"resetRamps":         f.ResetRamps(),
		"disableFade":        f.DisableFade(),
		"fadeSteps":          f.FadeSteps(),
		"sleepDuration":      f.SleepDuration().String(),
		"sleepDurationShort": f.SleepDurationShort().String(),
	}
}
