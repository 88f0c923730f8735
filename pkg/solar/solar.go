// Package solar computes the position of the sun.
//
// The equations are the low precision ones published by NOAA
// (https://gml.noaa.gov/grad/solcalc/calcdetails.html), which are based on
// "Astronomical Algorithms" by Jean Meeus. All angles are in radians
// internally; degrees are only used at the package boundary.
package solar

import (
	"math"
	"time"

	"github.com/charlie0129/shade/pkg/types"
)

const (
	unixEpochJulianDay = 2440587.5
	j2000JulianDay     = 2451545.0
	daysPerCentury     = 36525.0
	secondsPerDay      = 86400.0
)

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

func julianDayFromEpoch(t float64) float64 {
	return t/secondsPerDay + unixEpochJulianDay
}

func julianCenturyFromJulianDay(jd float64) float64 {
	return (jd - j2000JulianDay) / daysPerCentury
}

func julianDayFromJulianCentury(t float64) float64 {
	return t*daysPerCentury + j2000JulianDay
}

// sunGeomMeanLon returns the geometric mean longitude of the sun.
func sunGeomMeanLon(t float64) float64 {
	return rad(math.Mod(280.46646+t*(36000.76983+t*0.0003032), 360))
}

// sunGeomMeanAnomaly returns the geometric mean anomaly of the sun.
func sunGeomMeanAnomaly(t float64) float64 {
	return rad(357.52911 + t*(35999.05029-t*0.0001537))
}

func earthOrbitEccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+t*0.0000001267)
}

func sunEquationOfCenter(t float64) float64 {
	m := sunGeomMeanAnomaly(t)
	c := math.Sin(m)*(1.914602-t*(0.004817+0.000014*t)) +
		math.Sin(2*m)*(0.019993-0.000101*t) +
		math.Sin(3*m)*0.000289
	return rad(c)
}

func sunTrueLon(t float64) float64 {
	return sunGeomMeanLon(t) + sunEquationOfCenter(t)
}

// sunApparentLon is the true longitude corrected for nutation and
// aberration.
func sunApparentLon(t float64) float64 {
	o := sunTrueLon(t)
	return rad(deg(o) - 0.00569 - 0.00478*math.Sin(rad(125.04-1934.136*t)))
}

func meanEclipticObliquity(t float64) float64 {
	sec := 21.448 - t*(46.815+t*(0.00059-t*0.001813))
	return rad(23 + (26+sec/60)/60)
}

func obliquityCorr(t float64) float64 {
	e0 := meanEclipticObliquity(t)
	omega := 125.04 - t*1934.136
	return rad(deg(e0) + 0.00256*math.Cos(rad(omega)))
}

func solarDeclination(t float64) float64 {
	e := obliquityCorr(t)
	lambda := sunApparentLon(t)
	return math.Asin(math.Sin(e) * math.Sin(lambda))
}

// equationOfTime returns the difference between true and mean solar time in
// minutes.
func equationOfTime(t float64) float64 {
	epsilon := obliquityCorr(t)
	l0 := sunGeomMeanLon(t)
	e := earthOrbitEccentricity(t)
	m := sunGeomMeanAnomaly(t)
	y := math.Pow(math.Tan(epsilon/2), 2)

	eqTime := y*math.Sin(2*l0) - 2*e*math.Sin(m) +
		4*e*y*math.Sin(m)*math.Cos(2*l0) -
		0.5*y*y*math.Sin(4*l0) -
		1.25*e*e*math.Sin(2*m)
	return 4 * deg(eqTime)
}

func elevationFromHourAngle(lat, decl, ha float64) float64 {
	return math.Asin(math.Cos(ha)*math.Cos(rad(lat))*math.Cos(decl) + math.Sin(rad(lat))*math.Sin(decl))
}

func elevationFromJulianCentury(t, lat, lon float64) float64 {
	jd := julianDayFromJulianCentury(t)
	// minutes since midnight UTC; Julian days start at noon
	offset := (jd - math.Round(jd) - 0.5) * 1440
	eqTime := equationOfTime(t)
	ha := rad((720-offset-eqTime)/4 - lon)
	decl := solarDeclination(t)
	return elevationFromHourAngle(lat, decl, ha)
}

// Elevation returns the elevation of the sun in degrees at the given number
// of seconds since the unix epoch, seen from lat, lon (degrees).
func Elevation(epochSeconds, lat, lon float64) float64 {
	t := julianCenturyFromJulianDay(julianDayFromEpoch(epochSeconds))
	return deg(elevationFromJulianCentury(t, lat, lon))
}

// ElevationAt is Elevation for a validated location at time t.
func ElevationAt(t time.Time, loc types.Location) types.Elevation {
	epoch := float64(t.UnixNano()) / float64(time.Second)
	e := Elevation(epoch, float64(loc.Lat), float64(loc.Lon))
	// asin keeps the result within ±90 already; rounding error must not
	// make it an invalid Elevation.
	return types.Elevation(math.Max(types.MinElevation, math.Min(types.MaxElevation, e)))
}
