package dispatcher

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/kinetic-alphabet/pictograph/internal/dispatcher"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments are taken from the global meter, so they are no-ops until the
// host installs an SDK.
type instruments struct {
	queueSize metric.Int64ObservableGauge
	processed metric.Int64Counter
	dropped   metric.Int64Counter
}

func newInstruments(queueLengths func() map[string]int) (instruments, error) {
	m := meter()
	var ins instruments
	var err error

	if ins.queueSize, err = m.Int64ObservableGauge("dispatcher.queue.size",
		metric.WithDescription("Events waiting in a command queue")); err != nil {
		return ins, fmt.Errorf("creating queue size gauge: %w", err)
	}
	if _, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for cmd, n := range queueLengths() {
			o.ObserveInt64(ins.queueSize, int64(n), metric.WithAttributes(commandAttr(cmd)))
		}
		return nil
	}, ins.queueSize); err != nil {
		return ins, fmt.Errorf("registering queue callback: %w", err)
	}

	if ins.processed, err = m.Int64Counter("dispatcher.events.processed",
		metric.WithDescription("Queued events handled")); err != nil {
		return ins, fmt.Errorf("creating processed counter: %w", err)
	}
	if ins.dropped, err = m.Int64Counter("dispatcher.events.dropped",
		metric.WithDescription("Events rejected by a full queue")); err != nil {
		return ins, fmt.Errorf("creating dropped counter: %w", err)
	}
	return ins, nil
}

func commandAttr(cmd string) attribute.KeyValue {
	return attribute.String("command", cmd)
}
