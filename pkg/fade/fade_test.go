package fade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/shade/pkg/types"
)

func withTemperature(t *testing.T, k int) types.ColorSettings {
	t.Helper()
	temp, err := types.NewTemperature(k)
	require.NoError(t, err)
	cs := types.DefaultColorSettings()
	cs.Temperature = temp
	return cs
}

func TestEase(t *testing.T) {
	assert.Equal(t, 0.0, Ease(-1))
	assert.Equal(t, 0.0, Ease(0))
	assert.Equal(t, 1.0, Ease(1))
	assert.Equal(t, 1.0, Ease(2))
	assert.InDelta(t, 0.8496499197129519, Ease(0.5), 1e-12)
	assert.InDelta(t, 1.0, Ease(0.999999), 1e-3)

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := Ease(float64(i) / 100)
		if v < prev {
			t.Fatalf("Ease is not monotonic at %d: %g < %g", i, v, prev)
		}
		if v < 0 || v > 1 {
			t.Fatalf("Ease(%g) = %g out of [0, 1]", float64(i)/100, v)
		}
		prev = v
	}
}

func TestNextSmallChangeJumps(t *testing.T) {
	e := Engine{}
	current := withTemperature(t, 6500)
	target := withTemperature(t, 6480)

	tests := []struct {
		name   string
		status Status
	}{
		{"completed", Completed},
		{"ongoing", Ongoing(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, status := e.Next(tt.status, current, target)
			assert.True(t, got.Equal(target))
			assert.Equal(t, Completed, status)
		})
	}
}

func TestNextDisabled(t *testing.T) {
	e := Engine{Disabled: true}
	day := withTemperature(t, 6500)
	night := withTemperature(t, 4500)

	for _, status := range []Status{Completed, Ongoing(0), Ongoing(39)} {
		got, next := e.Next(status, day, night)
		assert.True(t, got.Equal(night))
		assert.Equal(t, Completed, next)
	}
}

func TestNextFullFade(t *testing.T) {
	e := Engine{Steps: DefaultSteps}
	current := withTemperature(t, 6500)
	target := withTemperature(t, 4500)

	got, status := e.Next(Completed, current, target)
	require.Equal(t, Ongoing(0), status)
	// step 0 has no effect on the color
	require.True(t, got.Equal(current))

	temps := []int{got.Temperature.Kelvin()}
	for status.IsOngoing() {
		if len(temps) > DefaultSteps+2 {
			t.Fatalf("fade did not complete after %d calls", len(temps))
		}
		got, status = e.Next(status, got, target)
		k := got.Temperature.Kelvin()
		if prev := temps[len(temps)-1]; k > prev {
			t.Fatalf("temperature went back up from %d to %d", prev, k)
		}
		temps = append(temps, k)
	}

	assert.True(t, got.Equal(target))
	assert.Equal(t, Completed, status)
	// each step eases from the previous output, so the remaining distance
	// drops under the jump threshold well before DefaultSteps
	assert.Len(t, temps, 16)
	assert.Equal(t, []int{6500, 6490, 6467}, temps[:3])
	assert.Equal(t, []int{4523, 4500}, temps[len(temps)-2:])
}

func TestNextOutOfSteps(t *testing.T) {
	e := Engine{Steps: 4}
	current := withTemperature(t, 6500)
	target := withTemperature(t, 4500)

	got, status := e.Next(Ongoing(3), current, target)
	assert.Equal(t, Ongoing(4), status)
	// last step eases all the way
	assert.True(t, got.Equal(target))

	got, status = e.Next(Ongoing(4), current, target)
	assert.Equal(t, Completed, status)
	assert.True(t, got.Equal(target))
}

func TestZeroStepsUsesDefault(t *testing.T) {
	e := Engine{}
	a := withTemperature(t, 6500)
	b := withTemperature(t, 4500)

	assert.True(t, e.Step(a, b, DefaultSteps/2).Equal(Engine{Steps: DefaultSteps}.Step(a, b, DefaultSteps/2)))
	assert.True(t, e.Step(a, b, DefaultSteps).Equal(b))
}
