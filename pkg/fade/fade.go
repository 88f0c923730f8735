// Package fade smooths abrupt color changes into a short eased sequence of
// intermediate settings.
package fade

import (
	"fmt"
	"math"

	"github.com/charlie0129/shade/pkg/types"
)

// DefaultSteps is the number of steps of a full fade.
const DefaultSteps = 40

// Coefficients of the easing curve.
const (
	K1 = 1.0042954579734844
	K2 = 6.404173895841566
	K3 = 7.290824133098134
)

type StatusKind string

const (
	StatusCompleted StatusKind = "Completed"
	StatusOngoing   StatusKind = "Ongoing"
)

// Status is Completed, or Ongoing at a given step. The zero value is
// Completed.
type Status struct {
	Kind StatusKind `json:"kind"`
	Step int        `json:"step,omitempty"`
}

var Completed = Status{Kind: StatusCompleted}

func Ongoing(step int) Status {
	return Status{Kind: StatusOngoing, Step: step}
}

func (s Status) IsOngoing() bool {
	return s.Kind == StatusOngoing
}

func (s Status) String() string {
	if s.IsOngoing() {
		return fmt.Sprintf("Ongoing (step %d)", s.Step)
	}
	return "Completed"
}

// Ease maps t in [0, 1] onto a curve that starts and ends flat.
func Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	v := K1 * math.Exp(-K2*math.Exp(-K3*t))
	return math.Max(0, math.Min(1, v))
}

// Engine decides the next color on the way from the current color to a
// target.
type Engine struct {
	// Steps is the length of a fade. Zero means DefaultSteps.
	Steps    int
	Disabled bool
}

func (e Engine) steps() int {
	if e.Steps <= 0 {
		return DefaultSteps
	}
	return e.Steps
}

// Step interpolates from start toward end by the eased fraction step/Steps.
func (e Engine) Step(start, end types.ColorSettings, step int) types.ColorSettings {
	alpha := Ease(float64(step) / float64(e.steps()))
	return start.Interpolate(end, types.Alpha(alpha))
}

// Next advances the fade by one tick. current is the color emitted by the
// previous tick.
//
// Small changes and disabled fades jump straight to target. A large change
// starts a fade at step 0, or advances a running one until it runs out of
// steps.
func (e Engine) Next(status Status, current, target types.ColorSettings) (types.ColorSettings, Status) {
	if e.Disabled || !current.IsVeryDifferent(target) {
		return target, Completed
	}

	if !status.IsOngoing() {
		return e.Step(current, target, 0), Ongoing(0)
	}

	if status.Step < e.steps() {
		step := status.Step + 1
		return e.Step(current, target, step), Ongoing(step)
	}

	return target, Completed
}
