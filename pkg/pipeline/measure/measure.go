package measure

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type DefaultMeasure struct {
	mu    sync.RWMutex
	steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &DefaultMetric{
		allTransports: make(map[string]*transportInfo),
		concurrent:    max(concurrent, 1),
	}
	m.steps[name] = mt

	return mt
}

// GetMetric returns nil for unknown steps.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.steps[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		all[name] = mt
	}

	return all
}

// Report describes every step of msr, one line per step sorted by step name.
func Report(msr Measure) []string {
	all := msr.AllMetrics()

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}

	sort.Strings(names)

	lines := make([]string, 0, len(names))

	for _, name := range names {
		mt := all[name]

		var sb strings.Builder

		fmt.Fprintf(&sb, "%s: %d elements, avg %s", name, mt.Total(), mt.AVGDuration())

		transports := mt.AVGTransportDuration()
		inputs := make([]string, 0, len(transports))

		for input := range transports {
			inputs = append(inputs, input)
		}

		sort.Strings(inputs)

		for _, input := range inputs {
			fmt.Fprintf(&sb, ", from %s %s", input, transports[input])
		}

		if end := mt.GetTotalDuration(); end > 0 {
			fmt.Fprintf(&sb, ", end: %s", end)
		}

		lines = append(lines, sb.String())
	}

	return lines
}

var _ Measure = (*DefaultMeasure)(nil)
