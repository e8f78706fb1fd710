package metrics

// Package metrics defines interfaces and implementations for collecting
// solve metrics. Sinks like PromSink and InfluxSink record scenario solve
// outcomes and emission trajectories and can be combined with NewMultiSink.
// The factory helpers return a MultiSink automatically when multiple sinks
// are configured.
