// Package config holds per-router tunables for the notifier core.
package config

import (
	"time"

	"github.com/clickrouter/notifier/log"
)

// Default tunables applied by New when no Option overrides them.
const (
	// DefaultSignalWordWidth is the bit width of a router's SignalWord.
	// Two bits are reserved for the idle/busy/overderived singletons, so
	// MaxBasicSignals is DefaultSignalWordWidth-2.
	DefaultSignalWordWidth = 32
	// DefaultSearchTimeout bounds how long a graph search may run before
	// it gives up and reports ErrSearchAborted.
	DefaultSearchTimeout = 50 * time.Millisecond
)

// Config holds the tunables for a single Router.
type Config struct {
	// SignalWordWidth sets the router's basic-signal budget through
	// MaxBasicSignals. Once that many basic signals have been handed out,
	// further requests fail with ErrSignalExhausted.
	SignalWordWidth int
	// SearchTimeout bounds a single upstream/downstream graph walk.
	SearchTimeout time.Duration
	// Logger is the logger used by the router and its graph searches.
	// Notifiers take their own logger when constructed.
	Logger log.Logger
}

// Option configures a Config during New.
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(c *Config) { f(c) }

// WithSignalWordWidth overrides the default SignalWord bit width.
func WithSignalWordWidth(bits int) Option {
	return optionFunc(func(c *Config) { c.SignalWordWidth = bits })
}

// WithSearchTimeout overrides the default graph-search timeout.
func WithSearchTimeout(d time.Duration) Option {
	return optionFunc(func(c *Config) { c.SearchTimeout = d })
}

// WithLogger overrides the default logger.
func WithLogger(logger log.Logger) Option {
	return optionFunc(func(c *Config) { c.Logger = logger })
}

// New creates a Config, applying defaults and then the given options.
func New(opts ...Option) *Config {
	cfg := &Config{
		SignalWordWidth: DefaultSignalWordWidth,
		SearchTimeout:   DefaultSearchTimeout,
		Logger:          log.DefaultLogger,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}

// MaxBasicSignals returns the number of basic-signal bits the router can
// hand out: the word width minus the two reserved bits (TRUE_BIT and
// OVERDERIVED_BIT).
func (c *Config) MaxBasicSignals() int {
	return c.SignalWordWidth - 2
}
