package daemon

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/shade/pkg/events"
	"github.com/charlie0129/shade/pkg/fade"
	"github.com/charlie0129/shade/pkg/period"
	"github.com/charlie0129/shade/pkg/types"
)

const (
	DefaultSleepDuration      = 5000 * time.Millisecond
	DefaultSleepDurationShort = 100 * time.Millisecond
)

// ErrSignalChannelClosed is returned when the cancellation channel is closed
// instead of delivering an event.
var ErrSignalChannelClosed = errors.New("signal channel closed unexpectedly")

// Adjuster writes color settings to the display.
type Adjuster interface {
	Set(resetRamps bool, cs types.ColorSettings) error
	Restore() error
}

// Signal records whether a cancellation event has been received.
type Signal string

const (
	SignalNone      Signal = "None"
	SignalInterrupt Signal = "Interrupt"
)

type Options struct {
	Colors      types.DayNight[types.ColorSettings]
	Scheme      types.TransitionScheme
	ResetRamps  bool
	DisableFade bool
	// FadeSteps zero means fade.DefaultSteps.
	FadeSteps int
	// SleepDuration is the interval between ticks when nothing is fading.
	SleepDuration time.Duration
	// SleepDurationShort is the interval between fade steps.
	SleepDurationShort time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// Hub receives a TickEvent after every tick. May be nil.
	Hub *events.EventHub
}

// DefaultOptions uses the default day and night colors with the elevation
// scheme.
func DefaultOptions() Options {
	return Options{
		Colors:             types.DayNight[types.ColorSettings]{Day: types.DefaultDay(), Night: types.DefaultNight()},
		Scheme:             types.DefaultTransitionScheme(),
		FadeSteps:          fade.DefaultSteps,
		SleepDuration:      DefaultSleepDuration,
		SleepDurationShort: DefaultSleepDurationShort,
	}
}

// Loop drives the display from the current period. It is not safe for
// concurrent use; the only input from other goroutines is the signal
// channel.
type Loop struct {
	opts     Options
	engine   fade.Engine
	provider period.Provider
	adjuster Adjuster
	signals  <-chan struct{}

	signal     Signal
	fade       fade.Status
	period     types.Period
	info       period.Info
	target     types.ColorSettings
	interp     types.ColorSettings
	prevInterp *types.ColorSettings

	printed     bool
	lastPrinted tickStatus
}

func NewLoop(opts Options, provider period.Provider, adjuster Adjuster, signals <-chan struct{}) *Loop {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SleepDuration <= 0 {
		opts.SleepDuration = DefaultSleepDuration
	}
	if opts.SleepDurationShort <= 0 {
		opts.SleepDurationShort = DefaultSleepDurationShort
	}
	return &Loop{
		opts:     opts,
		engine:   fade.Engine{Steps: opts.FadeSteps, Disabled: opts.DisableFade},
		provider: provider,
		adjuster: adjuster,
		signals:  signals,
		signal:   SignalNone,
		fade:     fade.Completed,
		period:   types.Daytime,
		interp:   types.DefaultColorSettings(),
	}
}

// Run ticks until a cancellation event has been received and the fade back
// to neutral has finished, or until a second cancellation event arrives.
// The display is restored only on those two paths. Any other error stops
// the loop immediately and is returned as is.
func (l *Loop) Run() error {
	logrus.WithFields(logrus.Fields{
		"scheme":      l.opts.Scheme.String(),
		"day":         l.opts.Colors.Day.String(),
		"night":       l.opts.Colors.Night.String(),
		"fadeSteps":   l.opts.FadeSteps,
		"disableFade": l.opts.DisableFade,
	}).Debug("loop starts")

	for {
		if err := l.tick(); err != nil {
			return err
		}

		if l.signal == SignalInterrupt && !l.fade.IsOngoing() {
			logrus.Debug("reset finished, exiting loop")
			break
		}

		exit, err := l.wait(l.sleepDuration())
		if err != nil {
			return err
		}
		if exit {
			logrus.Info("received second interrupt, exiting immediately")
			break
		}
	}

	logrus.Debug("restoring display")
	if err := l.adjuster.Restore(); err != nil {
		return pkgerrors.Wrapf(err, "failed to restore display")
	}
	return nil
}

func (l *Loop) sleepDuration() time.Duration {
	if l.fade.IsOngoing() {
		return l.opts.SleepDurationShort
	}
	return l.opts.SleepDuration
}

func (l *Loop) tick() error {
	now := l.opts.Now()

	p, info, err := period.Classify(l.opts.Scheme, l.provider, now)
	if err != nil {
		return err
	}

	target := types.DefaultColorSettings()
	if l.signal == SignalNone {
		target = l.opts.Colors.Night.Interpolate(l.opts.Colors.Day, p.Alpha())
	}

	interp, status := l.engine.Next(l.fade, l.interp, target)

	if l.prevInterp == nil || !interp.Equal(*l.prevInterp) {
		if err := l.adjuster.Set(l.opts.ResetRamps, interp); err != nil {
			return pkgerrors.Wrapf(err, "failed to set color")
		}
	}

	l.period, l.info, l.target = p, info, target
	l.interp, l.fade = interp, status
	l.prevInterp = &interp

	l.opts.Hub.Publish(events.DaemonTick, l.snapshot(now))
	l.printStatus()

	return nil
}

// wait blocks for at most d. It reports whether the loop must exit now.
func (l *Loop) wait(d time.Duration) (bool, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return false, nil
	case _, ok := <-l.signals:
		if !ok {
			return false, ErrSignalChannelClosed
		}
		if l.signal == SignalNone {
			logrus.Info("received interrupt, resetting display before exiting (interrupt again to exit now)")
			l.signal = SignalInterrupt
			return false, nil
		}
		return true, nil
	}
}

func (l *Loop) snapshot(now time.Time) events.TickEvent {
	return events.TickEvent{
		Period:      l.period,
		Info:        l.info,
		Fade:        l.fade,
		Interrupted: l.signal == SignalInterrupt,
		Target:      l.target,
		Current:     l.interp,
		Ts:          now.Unix(),
	}
}

type tickStatus struct {
	period types.Period
	interp types.ColorSettings
	fading bool
}

func (l *Loop) printStatus() {
	current := tickStatus{period: l.period, interp: l.interp, fading: l.fade.IsOngoing()}

	fields := logrus.Fields{
		"period":      l.period.String(),
		"info":        l.info.String(),
		"fade":        l.fade.String(),
		"temperature": l.interp.Temperature.Kelvin(),
		"brightness":  l.interp.Brightness.Value(),
		"gamma":       l.interp.Gamma.String(),
	}

	unchanged := current.period == l.lastPrinted.period && current.interp.Equal(l.lastPrinted.interp)
	if l.printed && unchanged {
		logrus.WithFields(fields).Trace("loop status")
		return
	}
	l.printed = true
	l.lastPrinted = current

	// Intermediate fade steps are too noisy for Info.
	if current.fading {
		logrus.WithFields(fields).Debug("loop status")
		return
	}
	logrus.WithFields(fields).Info("loop status")
}
