package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewRouterMetrics(t *testing.T) {
	metrics, err := NewRouterMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	assert.NotNil(t, metrics)
	assert.NotNil(t, metrics.ActivationsCount)
	assert.NotNil(t, metrics.ReschedulesCount)
}
