package golurk

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/nathanieltooley/gokemon-sim/golurk"

type instruments struct {
	battlesStarted   metric.Int64Counter
	battlesEnded     metric.Int64Counter
	turns            metric.Int64Counter
	choicesRejected  metric.Int64Counter
	eventsDispatched metric.Int64Counter
}

var (
	engineInstruments     *instruments
	engineInstrumentsOnce sync.Once
)

// loadInstruments creates the engine counters on the global meter provider. Until a provider is
// installed the counters are no-ops.
func loadInstruments() *instruments {
	engineInstrumentsOnce.Do(func() {
		meter := otel.Meter(meterName)
		engineInstruments = &instruments{
			battlesStarted: Must(meter.Int64Counter("golurk.battles.started",
				metric.WithDescription("Battles that reached the start of play"))),
			battlesEnded: Must(meter.Int64Counter("golurk.battles.ended",
				metric.WithDescription("Battles that ended, by result"))),
			turns: Must(meter.Int64Counter("golurk.turns",
				metric.WithDescription("Turns completed"))),
			choicesRejected: Must(meter.Int64Counter("golurk.choices.rejected",
				metric.WithDescription("Player choices rejected as invalid"))),
			eventsDispatched: Must(meter.Int64Counter("golurk.events.dispatched",
				metric.WithDescription("Event dispatches, by event id"))),
		}
	})
	return engineInstruments
}

// battleMetrics records counters for one battle, tagged with its format.
type battleMetrics struct {
	inst   *instruments
	format attribute.KeyValue
}

func newBattleMetrics(format ID) *battleMetrics {
	return &battleMetrics{inst: loadInstruments(), format: attribute.String("format", string(format))}
}

func (m *battleMetrics) battleStarted() {
	if m == nil {
		return
	}
	m.inst.battlesStarted.Add(context.Background(), 1, metric.WithAttributes(m.format))
}

func (m *battleMetrics) battleEnded(result string) {
	if m == nil {
		return
	}
	m.inst.battlesEnded.Add(context.Background(), 1, metric.WithAttributes(m.format, attribute.String("result", result)))
}

func (m *battleMetrics) turnEnded() {
	if m == nil {
		return
	}
	m.inst.turns.Add(context.Background(), 1, metric.WithAttributes(m.format))
}

func (m *battleMetrics) choiceRejected() {
	if m == nil {
		return
	}
	m.inst.choicesRejected.Add(context.Background(), 1, metric.WithAttributes(m.format))
}

func (m *battleMetrics) eventDispatched(id EventID) {
	if m == nil {
		return
	}
	m.inst.eventsDispatched.Add(context.Background(), 1, metric.WithAttributes(attribute.String("event", string(id))))
}
