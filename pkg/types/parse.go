package types

import (
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// The text forms below are the ones accepted by the config file and the
// command line, e.g. "6500-4500" for a day/night temperature pair or
// "06:00-07:45-18:35-20:15" for dawn and dusk windows.

func parseFloat(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrInvalidFormat, "%s %q is not a number", what, s)
	}
	return v, nil
}

func parseInt(s, what string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrInvalidFormat, "%s %q is not an integer", what, s)
	}
	return v, nil
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func ParseTemperature(s string) (Temperature, error) {
	v, err := parseInt(s, "temperature")
	if err != nil {
		return Temperature{}, err
	}
	return NewTemperature(v)
}

func ParseBrightness(s string) (Brightness, error) {
	v, err := parseFloat(s, "brightness")
	if err != nil {
		return Brightness{}, err
	}
	return NewBrightness(v)
}

// ParseGamma accepts either one value for all channels or "r:g:b".
func ParseGamma(s string) (Gamma, error) {
	parts := splitTrim(s, ":")
	switch len(parts) {
	case 1:
		v, err := parseFloat(parts[0], "gamma")
		if err != nil {
			return Gamma{}, err
		}
		return NewGamma(v)
	case 3:
		var rgb [3]float64
		for i, p := range parts {
			v, err := parseFloat(p, "gamma")
			if err != nil {
				return Gamma{}, err
			}
			rgb[i] = v
		}
		return NewGammaRGB(rgb[0], rgb[1], rgb[2])
	default:
		return Gamma{}, pkgerrors.Wrapf(ErrInvalidFormat, "gamma %q must be a single value or r:g:b", s)
	}
}

// ParseLocation accepts "lat:lon".
func ParseLocation(s string) (Location, error) {
	parts := splitTrim(s, ":")
	if len(parts) != 2 {
		return Location{}, pkgerrors.Wrapf(ErrInvalidFormat, "location %q must be latitude:longitude", s)
	}
	lat, err := parseFloat(parts[0], "latitude")
	if err != nil {
		return Location{}, err
	}
	lon, err := parseFloat(parts[1], "longitude")
	if err != nil {
		return Location{}, err
	}
	return NewLocation(lat, lon)
}

// ParseTime accepts "hh:mm".
func ParseTime(s string) (Time, error) {
	parts := splitTrim(s, ":")
	if len(parts) != 2 {
		return Time{}, pkgerrors.Wrapf(ErrInvalidFormat, "time %q must be hh:mm", s)
	}
	h, err := parseInt(parts[0], "hour")
	if err != nil {
		return Time{}, err
	}
	m, err := parseInt(parts[1], "minute")
	if err != nil {
		return Time{}, err
	}
	return NewTime(h, m)
}

// ParseTimeRange accepts "hh:mm-hh:mm", or a single "hh:mm" for an instant
// switch.
func ParseTimeRange(s string) (TimeRange, error) {
	parts := splitTrim(s, "-")
	switch len(parts) {
	case 1:
		t, err := ParseTime(parts[0])
		if err != nil {
			return TimeRange{}, err
		}
		return TimeRange{Start: t.Offset(), End: t.Offset()}, nil
	case 2:
		start, err := ParseTime(parts[0])
		if err != nil {
			return TimeRange{}, err
		}
		end, err := ParseTime(parts[1])
		if err != nil {
			return TimeRange{}, err
		}
		return NewTimeRange(start.Offset(), end.Offset())
	default:
		return TimeRange{}, pkgerrors.Wrapf(ErrInvalidFormat, "time range %q must be hh:mm or hh:mm-hh:mm", s)
	}
}

// ParseTimeRanges accepts "dawn-dusk" with instant switches, or
// "dawnStart-dawnEnd-duskStart-duskEnd".
func ParseTimeRanges(s string) (TimeRanges, error) {
	parts := splitTrim(s, "-")
	var dawn, dusk TimeRange
	var err error
	switch len(parts) {
	case 2:
		if dawn, err = ParseTimeRange(parts[0]); err != nil {
			return TimeRanges{}, err
		}
		if dusk, err = ParseTimeRange(parts[1]); err != nil {
			return TimeRanges{}, err
		}
	case 4:
		if dawn, err = ParseTimeRange(parts[0] + "-" + parts[1]); err != nil {
			return TimeRanges{}, err
		}
		if dusk, err = ParseTimeRange(parts[2] + "-" + parts[3]); err != nil {
			return TimeRanges{}, err
		}
	default:
		return TimeRanges{}, pkgerrors.Wrapf(ErrInvalidFormat, "time ranges %q must have 2 or 4 times", s)
	}
	return NewTimeRanges(dawn, dusk)
}

// ParseElevationRange accepts "high:low" in degrees.
func ParseElevationRange(s string) (ElevationRange, error) {
	parts := splitTrim(s, ":")
	if len(parts) != 2 {
		return ElevationRange{}, pkgerrors.Wrapf(ErrInvalidFormat, "elevation range %q must be high:low", s)
	}
	hv, err := parseFloat(parts[0], "elevation")
	if err != nil {
		return ElevationRange{}, err
	}
	lv, err := parseFloat(parts[1], "elevation")
	if err != nil {
		return ElevationRange{}, err
	}
	high, err := NewElevation(hv)
	if err != nil {
		return ElevationRange{}, err
	}
	low, err := NewElevation(lv)
	if err != nil {
		return ElevationRange{}, err
	}
	return NewElevationRange(high, low)
}

// ParseTransitionScheme tries time ranges first, then an elevation range.
func ParseTransitionScheme(s string) (TransitionScheme, error) {
	tr, timeErr := ParseTimeRanges(s)
	if timeErr == nil {
		return TimeScheme(tr), nil
	}
	er, elevErr := ParseElevationRange(s)
	if elevErr == nil {
		return ElevationScheme(er), nil
	}
	// When the text looks like clock times, the time error is the useful one.
	if strings.Count(s, ":") > 1 {
		return TransitionScheme{}, pkgerrors.Wrapf(timeErr, "scheme %q", s)
	}
	return TransitionScheme{}, pkgerrors.Wrapf(elevErr, "scheme %q", s)
}

// ParseDayNight accepts "day-night", or a single value used for both.
func ParseDayNight[T any](s string, parse func(string) (T, error)) (DayNight[T], error) {
	parts := splitTrim(s, "-")
	switch len(parts) {
	case 1:
		v, err := parse(parts[0])
		if err != nil {
			return DayNight[T]{}, err
		}
		return DayNight[T]{Day: v, Night: v}, nil
	case 2:
		day, err := parse(parts[0])
		if err != nil {
			return DayNight[T]{}, pkgerrors.Wrap(err, "day")
		}
		night, err := parse(parts[1])
		if err != nil {
			return DayNight[T]{}, pkgerrors.Wrap(err, "night")
		}
		return DayNight[T]{Day: day, Night: night}, nil
	default:
		return DayNight[T]{}, pkgerrors.Wrapf(ErrInvalidFormat, "%q must be day-night or a single value", s)
	}
}
