// Package config provides YAML configuration parsing for barline.
//
// This package enables running barline as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	renderer: xroot
//	date_format: "Mon Jan _2 15:04 MST"
//	battery: BAT0
//	thermal_zone: thermal_zone0
//	filesystems: [/, /home]
//
//	top_delimiter: " "
//	bottom_delimiter: " | "
//	group_delimiter: ";"
//
//	top:
//	  - name: ~/.scripts/checkmail
//	    kind: external
//	    interval: 0
//	    signal: 8
//
//	bottom:
//	  - name: date
//	    kind: internal
//	    interval: 60
//	    signal: 1
//
// Module descriptors are strict four-field records: name, kind,
// interval, signal. A missing field is a malformed descriptor and fatal
// at startup; each validation failure category maps to its own process
// exit code in the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/barline/barline"
)

// Config is the root configuration structure for barline. It maps
// directly to the YAML configuration file. Use [Load] or [Parse] to
// create one.
type Config struct {
	// Renderer selects the display surface: "xroot" (default) sets the
	// X root window name via xsetroot, "stdout" writes one line per
	// update for bars that read stdin.
	Renderer string `yaml:"renderer"`

	// PidFile is where the run command records its process ID so that
	// `barline refresh` can find the daemon. Empty selects a per-user
	// default under the runtime directory.
	PidFile string `yaml:"pid_file"`

	// DateFormat is the reference-time layout for the date module.
	DateFormat string `yaml:"date_format"`

	// Battery is the power-supply name under /sys/class/power_supply
	// read by the battery module. Defaults to BAT0.
	Battery string `yaml:"battery"`

	// ThermalZone is the zone name under /sys/class/thermal whose
	// temperature the cpu module appends. Defaults to thermal_zone0.
	ThermalZone string `yaml:"thermal_zone"`

	// Filesystems lists the mount paths monitored by the disk module.
	Filesystems []string `yaml:"filesystems"`

	// TopDelimiter separates fields on the top bar. Empty selects the
	// default single space.
	TopDelimiter string `yaml:"top_delimiter"`

	// BottomDelimiter separates fields on the bottom bar. Empty selects
	// the default " | ".
	BottomDelimiter string `yaml:"bottom_delimiter"`

	// GroupDelimiter splits the top and bottom halves of the composed
	// line, as consumed by dwm's extrabar patch. Empty selects ";".
	GroupDelimiter string `yaml:"group_delimiter"`

	// Top is the ordered module list for the top bar. At least one
	// module is required.
	Top []ModuleConfig `yaml:"top"`

	// Bottom is the ordered module list for the optional bottom bar.
	Bottom []ModuleConfig `yaml:"bottom"`
}

// ModuleConfig is one module descriptor. All four fields are required;
// Interval and Signal are pointers so that an omitted field can be told
// apart from an explicit zero.
type ModuleConfig struct {
	// Name is a built-in module name for kind "internal", or the
	// command line to run for kind "external".
	Name string `yaml:"name"`

	// Kind is "internal" or "external".
	Kind string `yaml:"kind"`

	// Interval is the refresh period in seconds. Zero means the module
	// refreshes only when its signal fires.
	Interval *int `yaml:"interval"`

	// Signal is the real-time signal index in [0,30] that triggers an
	// immediate refresh (delivered to the process as SIGRTMIN+Signal).
	Signal *int `yaml:"signal"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data and validates it.
//
// Validation failures wrap the barline error categories
// ([barline.ErrBadDescriptor], [barline.ErrNegativeInterval],
// [barline.ErrBadSignal], [barline.ErrUnknownModule]) so the CLI can map
// each to a distinct exit code with [errors.Is].
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Battery == "" {
		cfg.Battery = "BAT0"
	}
	if cfg.ThermalZone == "" {
		cfg.ThermalZone = "thermal_zone0"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the structural and semantic constraints the engine
// depends on. Everything here is fatal: a misconfigured bar must not
// partially start.
func (c *Config) validate() error {
	switch c.Renderer {
	case "", "xroot", "stdout":
	default:
		return fmt.Errorf("renderer must be \"xroot\" or \"stdout\", got %q", c.Renderer)
	}

	if len(c.Top) == 0 {
		return fmt.Errorf("%w: at least one top module is required", barline.ErrBadDescriptor)
	}

	bound := make(map[int]string)
	for _, group := range []struct {
		name    string
		modules []ModuleConfig
	}{
		{"top", c.Top},
		{"bottom", c.Bottom},
	} {
		for i, mc := range group.modules {
			where := fmt.Sprintf("%s[%d]", group.name, i)
			if err := validateModule(where, mc, bound); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateModule checks one descriptor and records its signal binding in
// bound so duplicates across both groups are rejected.
func validateModule(where string, mc ModuleConfig, bound map[int]string) error {
	if mc.Name == "" {
		return fmt.Errorf("%w: %s: name is required", barline.ErrBadDescriptor, where)
	}
	if mc.Kind != string(barline.KindInternal) && mc.Kind != string(barline.KindExternal) {
		return fmt.Errorf("%w: %s (%s): kind must be \"internal\" or \"external\", got %q",
			barline.ErrBadDescriptor, where, mc.Name, mc.Kind)
	}
	if mc.Interval == nil {
		return fmt.Errorf("%w: %s (%s): interval is required", barline.ErrBadDescriptor, where, mc.Name)
	}
	if mc.Signal == nil {
		return fmt.Errorf("%w: %s (%s): signal is required", barline.ErrBadDescriptor, where, mc.Name)
	}

	if *mc.Interval < 0 {
		return fmt.Errorf("%w: %s (%s): got %d", barline.ErrNegativeInterval, where, mc.Name, *mc.Interval)
	}

	if *mc.Signal < 0 || *mc.Signal > 30 {
		return fmt.Errorf("%w: %s (%s): index %d out of range [0,30]",
			barline.ErrBadSignal, where, mc.Name, *mc.Signal)
	}
	if other, taken := bound[*mc.Signal]; taken {
		return fmt.Errorf("%w: %s (%s): index %d already bound by %q",
			barline.ErrBadSignal, where, mc.Name, *mc.Signal, other)
	}
	bound[*mc.Signal] = mc.Name

	if mc.Kind == string(barline.KindInternal) {
		switch mc.Name {
		case "date", "battery", "cpu", "ram", "disk":
		default:
			return fmt.Errorf("%w: %s: %q", barline.ErrUnknownModule, where, mc.Name)
		}
	}
	return nil
}
