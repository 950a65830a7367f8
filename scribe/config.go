package scribe

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/scribe/history"
)

// Mode selects how the wrapped entity is built.
type Mode string

const (
	// ModeDelegation creates a new entity whose prototype is the original.
	ModeDelegation Mode = "delegation"

	// ModeMutative installs the wrappers on the original object itself.
	ModeMutative Mode = "mutative"
)

// ParseMode parses a mode name. The empty string selects ModeDelegation.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDelegation:
		return ModeDelegation, nil
	case ModeMutative:
		return ModeMutative, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrConfiguration, s)
	}
}

// LogFunc receives each completed call. methodHistory and objectHistory are
// snapshots taken after the call completed; later calls do not change them.
// objectName is empty when no name was configured.
type LogFunc func(objectName string, call *history.MethodCall, methodHistory []*history.FunctionCall, objectHistory []*history.MethodCall)

// Tee returns a LogFunc that invokes every non-nil fn in order, or nil when
// there is none.
func Tee(fns ...LogFunc) LogFunc {
	var live []LogFunc
	for _, fn := range fns {
		if fn != nil {
			live = append(live, fn)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(objectName string, call *history.MethodCall, methodHistory []*history.FunctionCall, objectHistory []*history.MethodCall) {
		for _, fn := range live {
			fn(objectName, call, methodHistory, objectHistory)
		}
	}
}

// Config holds the configuration for wrapping one object.
type Config struct {
	// ObjectName is passed verbatim as the first argument of Log.
	ObjectName string

	// Mode selects delegation or mutative wrapping.
	// Defaults to ModeDelegation.
	Mode Mode

	// Log is invoked after every completed call. Optional.
	Log LogFunc

	// Clock measures call durations.
	// Defaults to SystemClock.
	Clock Clock

	// Logger is an optional logger for diagnostics.
	Logger Logger
}

// Validate checks that the configured mode is known.
// Returns ErrConfiguration otherwise.
func (c *Config) Validate() error {
	switch c.Mode {
	case "", ModeDelegation, ModeMutative:
		return nil
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrConfiguration, c.Mode)
	}
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDelegation
	}
	if c.Clock == nil {
		c.Clock = SystemClock
	}
}

// Option is a functional option for configuring a wrap.
type Option func(*Config)

// WithObjectName sets the name passed to the log callback.
func WithObjectName(name string) Option {
	return func(c *Config) {
		c.ObjectName = name
	}
}

// WithMode sets the wrapping mode.
func WithMode(m Mode) Option {
	return func(c *Config) {
		c.Mode = m
	}
}

// WithLog sets the log callback. Use Tee to combine several.
func WithLog(fn LogFunc) Option {
	return func(c *Config) {
		c.Log = fn
	}
}

// WithClock sets the clock used for call durations.
func WithClock(clock Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// NewConfig applies opts to a zero Config, validates it and fills defaults.
func NewConfig(opts ...Option) (Config, error) {
	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}
