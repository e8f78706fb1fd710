package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScenarioSolve forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordScenarioSolve(ev ScenarioSolve) error {
	for _, s := range m.Sinks {
		if err := s.RecordScenarioSolve(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordEmissionPath forwards emission trajectories to sinks that support
// them.
func (m *MultiSink) RecordEmissionPath(points []EmissionPoint) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(EmissionRecorder); ok {
			if err := rec.RecordEmissionPath(points); err != nil {
				return err
			}
		}
	}
	return nil
}
