package solar

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/shade/pkg/types"
)

func TestElevationJ2000(t *testing.T) {
	// 2000-01-01T12:00:00Z seen from (0, 0). Declination is -23.03° and the
	// equation of time -3.3 minutes, which puts the sun at 66.95°.
	epoch := float64(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC).Unix())
	assert.InDelta(t, 66.95, Elevation(epoch, 0, 0), 0.1)
}

func TestElevationDailyCycle(t *testing.T) {
	day := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	lo, hi := 90.0, -90.0
	for h := 0; h < 24; h++ {
		e := Elevation(float64(day.Add(time.Duration(h)*time.Hour).Unix()), 0, 0)
		require.False(t, math.IsNaN(e), "hour %d", h)
		lo = math.Min(lo, e)
		hi = math.Max(hi, e)
	}

	// At the equator on the June solstice the sun culminates at 90-23.44.
	assert.InDelta(t, 66.56, hi, 1.0)
	assert.InDelta(t, -66.56, lo, 1.0)
}

func TestElevationMatchesSuncalc(t *testing.T) {
	tests := []struct {
		lat, lon float64
		when     time.Time
	}{
		{0, 0, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)},
		{60.17, 24.94, time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC)},
		{40.71, -74.01, time.Date(2023, 7, 4, 16, 0, 0, 0, time.UTC)},
		{-33.87, 151.21, time.Date(2022, 12, 25, 2, 15, 0, 0, time.UTC)},
		{35.68, 139.69, time.Date(2025, 10, 1, 21, 45, 0, 0, time.UTC)},
		{51.48, 0, time.Date(2021, 11, 11, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2f,%.2f@%s", tt.lat, tt.lon, tt.when.Format(time.RFC3339)), func(t *testing.T) {
			want := suncalc.GetPosition(tt.when, tt.lat, tt.lon).Altitude * 180 / math.Pi
			got := Elevation(float64(tt.when.Unix()), tt.lat, tt.lon)
			assert.InDelta(t, want, got, 1.0)
		})
	}
}

func TestElevationAtSunriseAndSunset(t *testing.T) {
	// The sun is 0.833° below the horizon at sunrise and sunset once
	// refraction and the solar disc are accounted for.
	lat, lon := 48.85, 2.35
	rise, set := sunrise.SunriseSunset(lat, lon, 2024, time.September, 15)
	require.False(t, rise.IsZero())
	require.False(t, set.IsZero())

	assert.InDelta(t, -0.833, Elevation(float64(rise.Unix()), lat, lon), 1.0)
	assert.InDelta(t, -0.833, Elevation(float64(set.Unix()), lat, lon), 1.0)
}

func TestElevationAt(t *testing.T) {
	loc, err := types.NewLocation(0, 0)
	require.NoError(t, err)

	when := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	e := ElevationAt(when, loc)
	assert.InDelta(t, Elevation(float64(when.Unix()), 0, 0), float64(e), 1e-9)

	// local time zones do not matter, only the instant
	inTokyo := when.In(time.FixedZone("JST", 9*3600))
	assert.Equal(t, e, ElevationAt(inTokyo, loc))
}
