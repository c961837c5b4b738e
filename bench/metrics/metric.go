// Package metrics counts what a script run emits, for export in the
// Prometheus text format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "querygen"

// Script holds the counters of one generation run. Each run owns its
// registry so that concurrent or repeated runs never share tallies. A nil
// *Script is valid and records nothing.
type Script struct {
	Registry *prometheus.Registry

	commands   *prometheus.CounterVec
	predicates *prometheus.CounterVec
	bursts     *prometheus.CounterVec
}

func NewScript() *Script {
	m := &Script{
		Registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands written to the script, by entity and command verb.",
		}, []string{"entity", "command"}),
		predicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delete_predicates_total",
			Help:      "Delete predicates written, by entity, field and operator.",
		}, []string{"entity", "field", "op"}),
		bursts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delete_bursts_total",
			Help:      "Delete bursts injected, by entity.",
		}, []string{"entity"}),
	}
	m.Registry.MustRegister(m.commands, m.predicates, m.bursts)
	return m
}

func (m *Script) Command(entity, command string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(entity, command).Inc()
}

func (m *Script) Predicate(entity, field, op string) {
	if m == nil {
		return
	}
	m.predicates.WithLabelValues(entity, field, op).Inc()
}

func (m *Script) Burst(entity string) {
	if m == nil {
		return
	}
	m.bursts.WithLabelValues(entity).Inc()
}

// Commands returns the collector for command counts.
func (m *Script) Commands() *prometheus.CounterVec { return m.commands }

// Predicates returns the collector for delete predicate counts.
func (m *Script) Predicates() *prometheus.CounterVec { return m.predicates }

// Bursts returns the collector for burst counts.
func (m *Script) Bursts() *prometheus.CounterVec { return m.bursts }

// WriteTextfile writes all counters to path in the node exporter textfile
// format.
func (m *Script) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("error writing metrics to %s: %w", path, err)
	}
	return nil
}
