package types

import (
	"fmt"
	"math"

	pkgerrors "github.com/pkg/errors"
)

// SchemeKind selects how the period of the day is determined.
type SchemeKind string

const (
	SchemeElevation SchemeKind = "elevation"
	SchemeTime      SchemeKind = "time"
)

// TransitionScheme is either time based or elevation based. Only the field
// matching Kind is meaningful.
type TransitionScheme struct {
	Kind      SchemeKind
	Time      TimeRanges
	Elevation ElevationRange
}

func TimeScheme(r TimeRanges) TransitionScheme {
	return TransitionScheme{Kind: SchemeTime, Time: r}
}

func ElevationScheme(r ElevationRange) TransitionScheme {
	return TransitionScheme{Kind: SchemeElevation, Elevation: r}
}

func DefaultTransitionScheme() TransitionScheme {
	return ElevationScheme(DefaultElevationRange())
}

func (s TransitionScheme) String() string {
	switch s.Kind {
	case SchemeTime:
		return "time (" + s.Time.String() + ")"
	case SchemeElevation:
		return "elevation (" + s.Elevation.String() + ")"
	default:
		return "unknown"
	}
}

// PeriodKind is where we are in the day/night cycle.
type PeriodKind string

const (
	PeriodDaytime    PeriodKind = "Daytime"
	PeriodNight      PeriodKind = "Night"
	PeriodTransition PeriodKind = "Transition"
)

// Period is Daytime, Night, or a Transition with a progress from 0 (night)
// to 100 (day). The zero value is Daytime.
type Period struct {
	Kind     PeriodKind `json:"kind"`
	Progress uint8      `json:"progress,omitempty"`
}

var (
	Daytime = Period{Kind: PeriodDaytime}
	Night   = Period{Kind: PeriodNight}
)

// Transition clamps progress to 100.
func Transition(progress uint8) Period {
	if progress > 100 {
		progress = 100
	}
	return Period{Kind: PeriodTransition, Progress: progress}
}

// Alpha converts p to an interpolation factor between night (0) and day (1).
func (p Period) Alpha() Alpha {
	switch p.Kind {
	case PeriodNight:
		return 0
	case PeriodTransition:
		return Alpha(float64(p.Progress) / 100)
	default:
		return 1
	}
}

func (p Period) String() string {
	switch p.Kind {
	case PeriodNight:
		return "Night"
	case PeriodTransition:
		return fmt.Sprintf("Transition (%d%% day)", p.Progress)
	default:
		return "Daytime"
	}
}

// Alpha is an interpolation factor in [0, 1].
type Alpha float64

func NewAlpha(v float64) (Alpha, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, pkgerrors.Wrapf(ErrOutOfRange, "alpha %g not in [0, 1]", v)
	}
	return Alpha(v), nil
}

func (a Alpha) Value() float64 {
	return float64(a)
}

// DayNight holds a pair of values for day and night.
type DayNight[T any] struct {
	Day   T
	Night T
}
