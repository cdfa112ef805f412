// Package metrics exposes editor event counts as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/shaharia-lab/designpatterns/internal/eventbus"
)

// EventCounter is a listener that counts notifications per event kind.
type EventCounter struct {
	events *prometheus.CounterVec
}

// NewEventCounter creates an EventCounter and registers its collector on reg.
func NewEventCounter(reg prometheus.Registerer) (*EventCounter, error) {
	c := &EventCounter{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "designpatterns",
			Subsystem: "editor",
			Name:      "events_total",
			Help:      "Number of editor events delivered, by kind.",
		}, []string{"kind"}),
	}
	if err := reg.Register(c.events); err != nil {
		return nil, fmt.Errorf("registering event counter: %w", err)
	}
	return c, nil
}

// Update increments the counter for kind.
func (c *EventCounter) Update(kind eventbus.EventKind, _ eventbus.File) {
	c.events.WithLabelValues(kind.String()).Inc()
}

// Count returns the number of events seen for kind.
func (c *EventCounter) Count(kind eventbus.EventKind) float64 {
	var m dto.Metric
	if err := c.events.WithLabelValues(kind.String()).Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
