package types

import (
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
)

const secondsPerDay = 24 * 60 * 60

// Time is a wall clock time with minute precision.
type Time struct {
	Hour   int
	Minute int
}

func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, pkgerrors.Wrapf(ErrOutOfRange, "hour %d not in [0, 23]", hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, pkgerrors.Wrapf(ErrOutOfRange, "minute %d not in [0, 59]", minute)
	}
	return Time{Hour: hour, Minute: minute}, nil
}

// Offset converts t to seconds since midnight.
func (t Time) Offset() TimeOffset {
	return TimeOffset(t.Hour*3600 + t.Minute*60)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeOffset is the number of seconds since local midnight.
type TimeOffset int

func NewTimeOffset(seconds int) (TimeOffset, error) {
	if seconds < 0 || seconds >= secondsPerDay {
		return 0, pkgerrors.Wrapf(ErrOutOfRange, "time offset %ds not in [0, %d)", seconds, secondsPerDay)
	}
	return TimeOffset(seconds), nil
}

// TimeOffsetOf returns the local time of day of t.
func TimeOffsetOf(t time.Time) TimeOffset {
	return TimeOffset(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// Time truncates o to minutes.
func (o TimeOffset) Time() Time {
	return Time{Hour: int(o) / 3600, Minute: (int(o) % 3600) / 60}
}

func (o TimeOffset) String() string {
	return o.Time().String()
}

type TimeRange struct {
	Start TimeOffset
	End   TimeOffset
}

func NewTimeRange(start, end TimeOffset) (TimeRange, error) {
	if start > end {
		return TimeRange{}, pkgerrors.Wrapf(ErrInvalidOrder, "time range starts at %s after it ends at %s", start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

func (r TimeRange) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + "-" + r.End.String()
}

// TimeRanges holds the dawn and dusk transition windows.
type TimeRanges struct {
	Dawn TimeRange
	Dusk TimeRange
}

func NewTimeRanges(dawn, dusk TimeRange) (TimeRanges, error) {
	if dawn.End >= dusk.Start {
		return TimeRanges{}, pkgerrors.Wrapf(ErrInvalidOrder, "dawn ends at %s, not before dusk starts at %s", dawn.End, dusk.Start)
	}
	return TimeRanges{Dawn: dawn, Dusk: dusk}, nil
}

func (r TimeRanges) String() string {
	return fmt.Sprintf("dawn %s, dusk %s", r.Dawn, r.Dusk)
}
