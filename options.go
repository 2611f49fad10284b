package barline

import (
	"errors"
	"log/slog"
)

// barConfig holds mutable state during Bar construction.
type barConfig struct {
	top         []Module
	bottom      []Module
	topDelim    string
	bottomDelim string
	groupDelim  string
	dateFormat  string
	batteryDir  string
	thermalDir  string
	filesystems []string
	renderer    Renderer
	logger      *slog.Logger
}

// Option configures a [Bar] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*barConfig) error

// WithTopModules appends to the ordered module list for the top bar
// group. At least one top module is required for [New] to succeed. The
// order given here is the display order; each module's output slot index
// is its position in this list.
func WithTopModules(modules ...Module) Option {
	return func(cfg *barConfig) error {
		cfg.top = append(cfg.top, modules...)
		return nil
	}
}

// WithBottomModules appends to the ordered module list for the bottom
// bar group, used with dwm's extrabar patch. When no bottom modules are
// configured the bar renders the top group alone, with no group
// delimiter or padding.
func WithBottomModules(modules ...Module) Option {
	return func(cfg *barConfig) error {
		cfg.bottom = append(cfg.bottom, modules...)
		return nil
	}
}

// WithTopDelimiter sets the string placed between top-group fields.
// Defaults to a single space.
func WithTopDelimiter(delim string) Option {
	return func(cfg *barConfig) error {
		cfg.topDelim = delim
		return nil
	}
}

// WithBottomDelimiter sets the string placed between bottom-group
// fields. Defaults to " | ".
func WithBottomDelimiter(delim string) Option {
	return func(cfg *barConfig) error {
		cfg.bottomDelim = delim
		return nil
	}
}

// WithGroupDelimiter sets the string separating the top group from the
// bottom group in the composed line; dwm's extrabar patch splits the
// status text on it. Defaults to ";".
func WithGroupDelimiter(delim string) Option {
	return func(cfg *barConfig) error {
		cfg.groupDelim = delim
		return nil
	}
}

// WithDateFormat sets the reference-time layout used by the date module.
// Defaults to "Mon Jan _2 15:04 MST".
func WithDateFormat(layout string) Option {
	return func(cfg *barConfig) error {
		if layout == "" {
			return errors.New("date format cannot be empty")
		}
		cfg.dateFormat = layout
		return nil
	}
}

// WithBatteryPath sets the sysfs power-supply directory read by the
// battery module. Defaults to /sys/class/power_supply/BAT0.
func WithBatteryPath(dir string) Option {
	return func(cfg *barConfig) error {
		if dir == "" {
			return errors.New("battery path cannot be empty")
		}
		cfg.batteryDir = dir
		return nil
	}
}

// WithThermalZone sets the sysfs thermal zone directory read by the cpu
// module for the temperature field. Defaults to
// /sys/class/thermal/thermal_zone0.
func WithThermalZone(dir string) Option {
	return func(cfg *barConfig) error {
		if dir == "" {
			return errors.New("thermal zone cannot be empty")
		}
		cfg.thermalDir = dir
		return nil
	}
}

// WithFilesystems sets the mount paths monitored by the disk module.
// Defaults to the root filesystem.
func WithFilesystems(paths ...string) Option {
	return func(cfg *barConfig) error {
		if len(paths) == 0 {
			return errors.New("at least one filesystem path is required")
		}
		cfg.filesystems = append(cfg.filesystems, paths...)
		return nil
	}
}

// WithRenderer sets the display surface the composed line is pushed to.
// Defaults to the X root window via xsetroot.
func WithRenderer(r Renderer) Option {
	return func(cfg *barConfig) error {
		if r == nil {
			return errors.New("renderer cannot be nil")
		}
		cfg.renderer = r
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Bar instance. If not
// specified, [slog.Default] is used.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *barConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
