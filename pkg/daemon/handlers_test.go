package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"

	"github.com/charlie0129/shade/pkg/config"
	"github.com/charlie0129/shade/pkg/events"
	"github.com/charlie0129/shade/pkg/types"
	"github.com/charlie0129/shade/pkg/utils/ptr"
	"github.com/charlie0129/shade/pkg/version"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	f, err := config.NewFileFs(afero.NewMemMapFs(), "/config.json")
	if err != nil {
		t.Fatal(err)
	}
	conf = f
	hub = events.NewEventHub()
	t.Cleanup(func() { conf, hub = nil, nil })
	return setupRoutes()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetStatus(t *testing.T) {
	h := setupTestServer(t)

	if w := get(t, h, "/status"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status before first tick = %d", w.Code)
	}

	hub.Publish(events.DaemonTick, events.TickEvent{Period: types.Transition(30), Current: types.DefaultNight(), Ts: 42})

	w := get(t, h, "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var tick events.TickEvent
	if err := json.Unmarshal(w.Body.Bytes(), &tick); err != nil {
		t.Fatalf("bad body %s: %v", w.Body, err)
	}
	if tick.Ts != 42 || tick.Period != types.Transition(30) {
		t.Fatalf("unexpected tick %+v", tick)
	}
}

func TestGetConfigAndVersion(t *testing.T) {
	h := setupTestServer(t)

	w := get(t, h, "/config")
	if w.Code != http.StatusOK {
		t.Fatalf("config = %d", w.Code)
	}
	var raw config.RawFileConfig
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if raw.Temperature == nil || *raw.Temperature != "6500-4500" {
		t.Fatalf("config temperature = %v", raw.Temperature)
	}

	w = get(t, h, "/version")
	var v string
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil || v != version.Version {
		t.Fatalf("version = %s, %v", w.Body, err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	f, err := config.NewFileFromConfig(&config.RawFileConfig{}, afero.NewMemMapFs(), "/c.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Merge(&config.RawFileConfig{DisableFade: ptr.To(true)}); err != nil {
		t.Fatal(err)
	}

	opts := OptionsFromConfig(f)
	if !opts.DisableFade || opts.FadeSteps != 40 || opts.SleepDuration != DefaultSleepDuration {
		t.Fatalf("unexpected options %+v", opts)
	}
	if !opts.Colors.Night.Equal(types.DefaultNight()) {
		t.Fatalf("night = %s", opts.Colors.Night)
	}
}
