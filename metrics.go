package motion

import "github.com/uber-go/tally/v4"

// Metric names reported through WithMetrics.
const (
	MetricFrames    = "frames"
	MetricStarted   = "started"
	MetricCompleted = "completed"
	MetricFailed    = "failed"
	MetricStopped   = "stopped"
	MetricState     = "state"
)

type controllerMetrics struct {
	frames    tally.Counter
	started   tally.Counter
	completed tally.Counter
	failed    tally.Counter
	stopped   tally.Counter
	state     tally.Gauge
}

func newControllerMetrics(scope tally.Scope) controllerMetrics {
	if scope == nil {
		scope = tally.NoopScope
	}
	return controllerMetrics{
		frames:    scope.Counter(MetricFrames),
		started:   scope.Counter(MetricStarted),
		completed: scope.Counter(MetricCompleted),
		failed:    scope.Counter(MetricFailed),
		stopped:   scope.Counter(MetricStopped),
		state:     scope.Gauge(MetricState),
	}
}
