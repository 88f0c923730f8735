package period

import (
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/shade/pkg/solar"
	"github.com/charlie0129/shade/pkg/types"
)

// Provider returns the current location.
type Provider interface {
	Get() (types.Location, error)
}

// InfoKind tells which scheme produced a Period.
type InfoKind string

const (
	InfoTime      InfoKind = "time"
	InfoElevation InfoKind = "elevation"
)

// Info carries what the period was derived from. Elevation and Location are
// only set for InfoElevation.
type Info struct {
	Kind      InfoKind        `json:"kind"`
	Elevation types.Elevation `json:"elevation,omitempty"`
	Location  types.Location  `json:"location"`
}

func (i Info) String() string {
	if i.Kind == InfoElevation {
		return fmt.Sprintf("solar elevation %s at %s", i.Elevation, i.Location)
	}
	return "time of day"
}

// percent truncates a fraction in [0, 1] to a whole percentage.
func percent(frac float64) uint8 {
	p := frac * 100
	if p <= 0 {
		return 0
	}
	if p >= 100 {
		return 100
	}
	return uint8(p)
}

// FromTime classifies a local time of day. Progress goes from 0 at the
// night side of a window to 100 at its day side.
func FromTime(t types.TimeOffset, r types.TimeRanges) types.Period {
	dawn, dusk := r.Dawn, r.Dusk

	// A window only reaches its transition case when start <= t < end, so
	// zero-width windows never divide by zero.
	switch {
	case t < dawn.Start || t >= dusk.End:
		return types.Night
	case t < dawn.End:
		return types.Transition(percent(float64(dawn.Start-t) / float64(dawn.Start-dawn.End)))
	case t > dusk.Start:
		return types.Transition(percent(float64(dusk.End-t) / float64(dusk.End-dusk.Start)))
	default:
		return types.Daytime
	}
}

// FromElevation classifies a solar elevation.
func FromElevation(e types.Elevation, r types.ElevationRange) types.Period {
	switch {
	case e < r.Low:
		return types.Night
	case e < r.High:
		// Low <= e < High, so High > Low here.
		return types.Transition(percent(float64(r.Low-e) / float64(r.Low-r.High)))
	default:
		return types.Daytime
	}
}

// Classify determines the period at now. The provider is only consulted for
// elevation based schemes.
func Classify(scheme types.TransitionScheme, provider Provider, now time.Time) (types.Period, Info, error) {
	switch scheme.Kind {
	case types.SchemeTime:
		return FromTime(types.TimeOffsetOf(now), scheme.Time), Info{Kind: InfoTime}, nil
	case types.SchemeElevation:
		if provider == nil {
			return types.Period{}, Info{}, pkgerrors.New("no location provider for elevation scheme")
		}
		loc, err := provider.Get()
		if err != nil {
			return types.Period{}, Info{}, pkgerrors.Wrapf(err, "failed to get location")
		}
		elev := solar.ElevationAt(now, loc)
		return FromElevation(elev, scheme.Elevation), Info{Kind: InfoElevation, Elevation: elev, Location: loc}, nil
	default:
		return types.Period{}, Info{}, pkgerrors.Errorf("unknown transition scheme %q", scheme.Kind)
	}
}
