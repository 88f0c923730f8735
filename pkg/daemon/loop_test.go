package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/charlie0129/shade/pkg/events"
	"github.com/charlie0129/shade/pkg/types"
)

// fakeAdjuster records every call. Hooks run after the call is recorded.
type fakeAdjuster struct {
	sets     []types.ColorSettings
	restores int

	onSet func(cs types.ColorSettings) error
}

func (f *fakeAdjuster) Set(_ bool, cs types.ColorSettings) error {
	f.sets = append(f.sets, cs)
	if f.onSet != nil {
		return f.onSet(cs)
	}
	return nil
}

func (f *fakeAdjuster) Restore() error {
	f.restores++
	return nil
}

func (f *fakeAdjuster) last() types.ColorSettings {
	return f.sets[len(f.sets)-1]
}

type fakeProvider struct {
	loc types.Location
	err error
}

func (p fakeProvider) Get() (types.Location, error) { return p.loc, p.err }

func timeScheme(t *testing.T) types.TransitionScheme {
	t.Helper()
	r, err := types.ParseTimeRanges("06:00-07:00-18:00-19:00")
	if err != nil {
		t.Fatal(err)
	}
	return types.TimeScheme(r)
}

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 1, hour, 0, 0, 0, time.Local)
	}
}

func testOptions(t *testing.T, hour int) Options {
	opts := DefaultOptions()
	opts.Scheme = timeScheme(t)
	opts.Now = fixedClock(hour)
	opts.SleepDuration = time.Hour
	opts.SleepDurationShort = time.Millisecond
	return opts
}

func assertNoRepeatedSets(t *testing.T, sets []types.ColorSettings) {
	t.Helper()
	for i := 1; i < len(sets); i++ {
		if sets[i].Equal(sets[i-1]) {
			t.Fatalf("set called twice in a row with %s", sets[i])
		}
	}
}

func TestLoopFadesToNightThenResets(t *testing.T) {
	signals := make(chan struct{}, 2)
	adj := &fakeAdjuster{}
	reachedNight := false
	adj.onSet = func(cs types.ColorSettings) error {
		if !reachedNight && cs.Temperature.Kelvin() == types.DefaultTemperatureNight {
			reachedNight = true
			signals <- struct{}{}
		}
		return nil
	}

	hub := events.NewEventHub()
	opts := testOptions(t, 2)
	opts.Hub = hub

	if err := NewLoop(opts, nil, adj, signals).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !reachedNight {
		t.Fatal("never reached the night temperature")
	}
	if got := adj.last().Temperature.Kelvin(); got != types.DefaultTemperature {
		t.Fatalf("last temperature = %d, want %d", got, types.DefaultTemperature)
	}
	if adj.restores != 1 {
		t.Fatalf("restore called %d times, want 1", adj.restores)
	}
	// both directions fade
	if len(adj.sets) < 6 {
		t.Fatalf("only %d sets, expected intermediate fade steps", len(adj.sets))
	}
	assertNoRepeatedSets(t, adj.sets)

	ev, ok := hub.Latest(events.DaemonTick)
	if !ok {
		t.Fatal("no tick published")
	}
	tick, err := events.DecodeAs[events.TickEvent](ev)
	if err != nil {
		t.Fatal(err)
	}
	if !tick.Interrupted || tick.Period != types.Night || tick.Fade.IsOngoing() {
		t.Fatalf("unexpected last tick %+v", tick)
	}
}

func TestLoopSecondSignalExitsMidFade(t *testing.T) {
	signals := make(chan struct{}, 2)
	adj := &fakeAdjuster{}
	sent := 0
	adj.onSet = func(cs types.ColorSettings) error {
		k := cs.Temperature.Kelvin()
		switch {
		case sent == 0 && k == types.DefaultTemperatureNight:
			sent++
			signals <- struct{}{}
		case sent == 1 && k > types.DefaultTemperatureNight:
			// first step back toward neutral
			sent++
			signals <- struct{}{}
		}
		return nil
	}

	opts := testOptions(t, 2)
	opts.SleepDurationShort = 50 * time.Millisecond

	if err := NewLoop(opts, nil, adj, signals).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sent != 2 {
		t.Fatalf("sent %d signals, want 2", sent)
	}
	k := adj.last().Temperature.Kelvin()
	if k <= types.DefaultTemperatureNight || k >= types.DefaultTemperature {
		t.Fatalf("last temperature = %d, want a value mid fade", k)
	}
	if adj.restores != 1 {
		t.Fatalf("restore called %d times, want 1", adj.restores)
	}
}

func TestLoopSuppressesRedundantSets(t *testing.T) {
	signals := make(chan struct{}, 1)
	adj := &fakeAdjuster{}

	ticks := 0
	opts := testOptions(t, 12)
	opts.SleepDuration = time.Millisecond
	opts.Now = func() time.Time {
		ticks++
		if ticks == 5 {
			signals <- struct{}{}
		}
		return fixedClock(12)()
	}

	if err := NewLoop(opts, nil, adj, signals).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ticks < 5 {
		t.Fatalf("only %d ticks", ticks)
	}
	// daytime equals neutral, so only the very first tick writes
	if len(adj.sets) != 1 {
		t.Fatalf("set called %d times, want 1", len(adj.sets))
	}
	if adj.restores != 1 {
		t.Fatalf("restore called %d times, want 1", adj.restores)
	}
}

func TestLoopDisabledFade(t *testing.T) {
	signals := make(chan struct{}, 1)
	adj := &fakeAdjuster{}
	adj.onSet = func(cs types.ColorSettings) error {
		if cs.Temperature.Kelvin() == types.DefaultTemperatureNight {
			signals <- struct{}{}
		}
		return nil
	}

	opts := testOptions(t, 2)
	opts.DisableFade = true

	if err := NewLoop(opts, nil, adj, signals).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []int{types.DefaultTemperatureNight, types.DefaultTemperature}
	if len(adj.sets) != len(want) {
		t.Fatalf("set called %d times, want %d", len(adj.sets), len(want))
	}
	for i, k := range want {
		if got := adj.sets[i].Temperature.Kelvin(); got != k {
			t.Fatalf("set %d temperature = %d, want %d", i, got, k)
		}
	}
}

func TestLoopErrors(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		scheme   types.TransitionScheme
		provider fakeProvider
		onSet    func(types.ColorSettings) error
		closed   bool
		wantErr  error
		wantSets int
	}{
		{
			name:     "provider error",
			scheme:   types.DefaultTransitionScheme(),
			provider: fakeProvider{err: errBoom},
			wantErr:  errBoom,
			wantSets: 0,
		},
		{
			name:     "adjuster error",
			scheme:   timeScheme(t),
			onSet:    func(types.ColorSettings) error { return errBoom },
			wantErr:  errBoom,
			wantSets: 1,
		},
		{
			name:     "closed signal channel",
			scheme:   timeScheme(t),
			closed:   true,
			wantErr:  ErrSignalChannelClosed,
			wantSets: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := make(chan struct{})
			if tt.closed {
				close(signals)
			}
			adj := &fakeAdjuster{onSet: tt.onSet}

			opts := testOptions(t, 12)
			opts.Scheme = tt.scheme

			err := NewLoop(opts, tt.provider, adj, signals).Run()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run error = %v, want %v", err, tt.wantErr)
			}
			if len(adj.sets) != tt.wantSets {
				t.Fatalf("set called %d times, want %d", len(adj.sets), tt.wantSets)
			}
			if adj.restores != 0 {
				t.Fatalf("restore called on error path")
			}
		})
	}
}
