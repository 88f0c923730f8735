package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewTime(t *testing.T) {
	tests := []struct {
		h, m    int
		wantErr bool
	}{
		{0, 0, false},
		{23, 59, false},
		{24, 0, true},
		{12, 60, true},
		{-1, 0, true},
	}
	for _, tt := range tests {
		_, err := NewTime(tt.h, tt.m)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewTime(%d, %d) error = %v, wantErr %v", tt.h, tt.m, err, tt.wantErr)
		}
	}

	tm, _ := NewTime(7, 45)
	if tm.Offset() != 7*3600+45*60 {
		t.Fatalf("offset = %d", tm.Offset())
	}
	if tm.Offset().String() != "07:45" {
		t.Fatalf("offset string = %s", tm.Offset())
	}
}

func TestTimeOffset(t *testing.T) {
	if _, err := NewTimeOffset(86400); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("NewTimeOffset(86400) error = %v", err)
	}
	if o, err := NewTimeOffset(86399); err != nil || int(o) != 86399 {
		t.Fatalf("NewTimeOffset(86399) = %d, %v", o, err)
	}

	at := time.Date(2024, 5, 1, 18, 35, 12, 0, time.Local)
	if got := TimeOffsetOf(at); got != 18*3600+35*60+12 {
		t.Fatalf("TimeOffsetOf = %d", got)
	}
}

func TestRangesOrder(t *testing.T) {
	if _, err := NewTimeRange(10, 5); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("NewTimeRange(10, 5) error = %v", err)
	}
	dawn := TimeRange{Start: 100, End: 200}
	if _, err := NewTimeRanges(dawn, TimeRange{Start: 200, End: 300}); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("touching windows accepted: %v", err)
	}
	if _, err := NewTimeRanges(dawn, TimeRange{Start: 201, End: 300}); err != nil {
		t.Fatalf("valid windows rejected: %v", err)
	}

	if _, err := NewElevationRange(-6, 3); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("NewElevationRange(-6, 3) error = %v", err)
	}
	if r, err := NewElevationRange(3, 3); err != nil || r.High != r.Low {
		t.Fatalf("zero width elevation range rejected: %v", err)
	}
}

func TestLocationValidation(t *testing.T) {
	for _, c := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
		loc, err := NewLocation(c[0], c[1])
		if err != nil {
			t.Fatalf("NewLocation(%v) failed: %v", c, err)
		}
		if float64(loc.Lat) != c[0] || float64(loc.Lon) != c[1] {
			t.Fatalf("NewLocation(%v) = %s", c, loc)
		}
	}
	for _, c := range [][2]float64{{-90.1, 0}, {0, 180.5}} {
		if _, err := NewLocation(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("NewLocation(%v) error = %v", c, err)
		}
	}

	var loc Location
	if err := json.Unmarshal([]byte(`{"latitude":95,"longitude":0}`), &loc); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("invalid JSON location accepted: %v", err)
	}

	if _, err := NewElevation(-90.5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("NewElevation(-90.5) error = %v", err)
	}
}

func TestPeriodAlpha(t *testing.T) {
	tests := []struct {
		p    Period
		want Alpha
	}{
		{Daytime, 1},
		{Period{}, 1},
		{Night, 0},
		{Transition(0), 0},
		{Transition(25), 0.25},
		{Transition(200), 1},
	}
	for _, tt := range tests {
		if got := tt.p.Alpha(); got != tt.want {
			t.Errorf("%s.Alpha() = %g, want %g", tt.p, got, tt.want)
		}
	}

	if _, err := NewAlpha(1.5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("NewAlpha(1.5) error = %v", err)
	}
}
