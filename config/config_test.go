package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clickrouter/notifier/log"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultSignalWordWidth, cfg.SignalWordWidth)
	assert.Equal(t, DefaultSearchTimeout, cfg.SearchTimeout)
	assert.Equal(t, log.DefaultLogger, cfg.Logger)
	assert.Equal(t, DefaultSignalWordWidth-2, cfg.MaxBasicSignals())
}

func TestOptions(t *testing.T) {
	logger := log.DiscardLogger
	cfg := New(
		WithSignalWordWidth(64),
		WithSearchTimeout(10*time.Millisecond),
		WithLogger(logger),
	)
	assert.Equal(t, 64, cfg.SignalWordWidth)
	assert.Equal(t, 62, cfg.MaxBasicSignals())
	assert.Equal(t, 10*time.Millisecond, cfg.SearchTimeout)
	assert.Equal(t, logger, cfg.Logger)
}
