package barline

import (
	"fmt"
	"time"
)

// Configuration failure categories. The CLI maps each category to a
// distinct process exit code, so scripts driving barline can tell a typo
// in a module name from a bad signal binding. Use [errors.Is] to test.
var (
	// ErrBadDescriptor marks a structurally invalid module descriptor:
	// missing fields, unknown kind keyword, or a module that could never
	// refresh.
	ErrBadDescriptor = fmt.Errorf("malformed module descriptor")

	// ErrNegativeInterval marks a refresh interval below zero.
	ErrNegativeInterval = fmt.Errorf("negative refresh interval")

	// ErrBadSignal marks a real-time signal index outside [0,30] or
	// bound by more than one module.
	ErrBadSignal = fmt.Errorf("invalid real-time signal binding")

	// ErrUnknownModule marks an internal module name that is not one of
	// the built-ins.
	ErrUnknownModule = fmt.Errorf("unknown internal module")
)

// Kind distinguishes built-in modules from external commands.
type Kind string

const (
	// KindInternal selects one of the built-in data sources by name.
	KindInternal Kind = "internal"

	// KindExternal runs the module name as a shell command and displays
	// its output.
	KindExternal Kind = "external"
)

// builtinNames is the closed set of internal module names. There is no
// runtime plugin discovery; adding a module means adding a compute
// constructor and an entry here.
var builtinNames = map[string]bool{
	"date":    true,
	"battery": true,
	"cpu":     true,
	"ram":     true,
	"disk":    true,
}

// noSignal marks a module with no real-time signal binding.
const noSignal = -1

// Module describes one bar field: what produces it and when it refreshes.
//
// Module is immutable after creation via [NewModule]. A refresh interval
// of zero means the module refreshes only when its real-time signal
// fires; a positive interval with a signal binding refreshes on
// whichever comes first.
type Module struct {
	name     string
	kind     Kind
	interval time.Duration
	signal   int
}

// Name returns the module's identifier: a built-in name for internal
// modules, the command line for external ones.
func (m Module) Name() string {
	return m.name
}

// Kind returns whether the module is built-in or an external command.
func (m Module) Kind() Kind {
	return m.kind
}

// Interval returns the timer period, or zero for signal-only modules.
func (m Module) Interval() time.Duration {
	return m.interval
}

// Signal returns the module's real-time signal index in [0,30], or -1
// when the module has no signal binding.
func (m Module) Signal() int {
	return m.signal
}

// ModuleOption configures a [Module] during construction.
type ModuleOption func(*moduleConfig) error

// moduleConfig holds mutable state during Module construction.
type moduleConfig struct {
	kind     Kind
	interval time.Duration
	signal   int
}

// External marks the module as an external command. The module name is
// executed through the shell and its standard output becomes the field
// text, truncated to 500 bytes.
func External() ModuleOption {
	return func(cfg *moduleConfig) error {
		cfg.kind = KindExternal
		return nil
	}
}

// WithRefreshInterval sets the timer period. Zero is valid and means
// "refresh only on signal"; a negative duration is a configuration
// error.
func WithRefreshInterval(d time.Duration) ModuleOption {
	return func(cfg *moduleConfig) error {
		if d < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeInterval, d)
		}
		cfg.interval = d
		return nil
	}
}

// WithSignal binds the module to a real-time signal index in [0,30].
// Delivering SIGRTMIN+index to the running process refreshes the module
// immediately, ahead of any pending timer.
func WithSignal(index int) ModuleOption {
	return func(cfg *moduleConfig) error {
		if index < 0 || index > 30 {
			return fmt.Errorf("%w: index %d out of range [0,30]", ErrBadSignal, index)
		}
		cfg.signal = index
		return nil
	}
}

// NewModule creates a [Module] with the given name and options.
//
// Internal modules (the default kind) must name one of the built-ins:
// date, battery, cpu, ram, disk. External modules, marked with
// [External], use the name as the command to run.
//
// A module must have at least one way to refresh: a positive interval,
// a signal binding, or both.
//
// Example:
//
//	m, err := barline.NewModule("battery",
//	    barline.WithRefreshInterval(5 * time.Second),
//	    barline.WithSignal(2),
//	)
func NewModule(name string, opts ...ModuleOption) (Module, error) {
	if name == "" {
		return Module{}, fmt.Errorf("%w: module name cannot be empty", ErrBadDescriptor)
	}

	cfg := &moduleConfig{
		kind:   KindInternal,
		signal: noSignal,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Module{}, err
		}
	}

	if cfg.kind == KindInternal && !builtinNames[name] {
		return Module{}, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	if cfg.interval == 0 && cfg.signal == noSignal {
		return Module{}, fmt.Errorf("%w: module %q has neither an interval nor a signal and would never refresh", ErrBadDescriptor, name)
	}

	return Module{
		name:     name,
		kind:     cfg.kind,
		interval: cfg.interval,
		signal:   cfg.signal,
	}, nil
}
