package events

import (
	"encoding/json"

	"github.com/charlie0129/shade/pkg/fade"
	"github.com/charlie0129/shade/pkg/period"
	"github.com/charlie0129/shade/pkg/types"
)

// Event name constants
const (
	DaemonTick = "daemon.tick"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// TickEvent is the typed payload for daemon.tick, a snapshot of the loop
// state after one tick.
type TickEvent struct {
	Period      types.Period        `json:"period"`
	Info        period.Info         `json:"info"`
	Fade        fade.Status         `json:"fade"`
	Interrupted bool                `json:"interrupted"`
	Target      types.ColorSettings `json:"target"`
	Current     types.ColorSettings `json:"current"`
	Ts          int64               `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.TickEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Period, payload.Current)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
