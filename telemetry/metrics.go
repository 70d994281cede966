package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const (
	activationsCounterName = "notifier.activations"
	reschedulesCounterName = "notifier.reschedules"
)

// RouterMetrics are the counters a Router updates as it completes
// searches and as its notifiers reschedule listeners. Purely
// observational: nothing in the core reads these back.
type RouterMetrics struct {
	// ActivationsCount grows, after each completed search, by the number
	// of notifiers that search matched.
	ActivationsCount metric.Int64Counter
	// ReschedulesCount counts every task listener actually rescheduled.
	ReschedulesCount metric.Int64Counter
}

// NewRouterMetrics builds the RouterMetrics instruments against meter.
func NewRouterMetrics(meter metric.Meter) (*RouterMetrics, error) {
	metrics := new(RouterMetrics)
	var err error

	if metrics.ActivationsCount, err = meter.Int64Counter(
		activationsCounterName,
		metric.WithDescription("The total number of notifier signal activations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create activations counter instrument: %w", err)
	}

	if metrics.ReschedulesCount, err = meter.Int64Counter(
		reschedulesCounterName,
		metric.WithDescription("The total number of listener task reschedules"),
	); err != nil {
		return nil, fmt.Errorf("failed to create reschedules counter instrument: %w", err)
	}

	return metrics, nil
}
