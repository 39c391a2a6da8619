package measure

import (
	"sync"
	"time"
)

type transportInfo struct {
	elapsed time.Duration
	total   int64
}

type DefaultMetric struct {
	mu            sync.Mutex
	allTransports map[string]*transportInfo
	endDuration   time.Duration
	stepElapsed   time.Duration
	total         int64
	concurrent    int
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stepElapsed += elapsed
}

func (mt *DefaultMetric) Total() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.endDuration = endDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.endDuration
}

func (mt *DefaultMetric) AddTransportDuration(inputStepName string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.allTransports[inputStepName] == nil {
		mt.allTransports[inputStepName] = &transportInfo{}
	}

	ch := mt.allTransports[inputStepName]
	ch.elapsed += elapsed
	ch.total++
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

// AVGTransportDuration returns the average time spent waiting on each input step, divided by
// the number of workers of the step.
func (mt *DefaultMetric) AVGTransportDuration() map[string]time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	avg := make(map[string]time.Duration, len(mt.allTransports))

	for name, ch := range mt.allTransports {
		if ch.total == 0 {
			continue
		}

		avg[name] = round(time.Duration(float64(ch.elapsed) / float64(ch.total) / float64(mt.concurrent)))
	}

	return avg
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
