package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/barline/barline"
	"github.com/barline/barline/internal/render"
)

// Sysfs roots the builder resolves battery and thermal-zone names
// against. Tests and unusual setups can bypass them by using the SDK
// options directly.
const (
	powerSupplyRoot = "/sys/class/power_supply"
	thermalRoot     = "/sys/class/thermal"
)

// BuildOptions converts parsed configuration into the option set for
// [barline.New]. The returned options carry the module lists for both
// groups, all delimiter and data-source settings, and the renderer.
func BuildOptions(cfg *Config) ([]barline.Option, error) {
	top, err := buildModules(cfg.Top)
	if err != nil {
		return nil, err
	}
	bottom, err := buildModules(cfg.Bottom)
	if err != nil {
		return nil, err
	}

	opts := []barline.Option{
		barline.WithTopModules(top...),
		barline.WithDateFormat(orDefault(cfg.DateFormat, "Mon Jan _2 15:04 MST")),
		barline.WithBatteryPath(filepath.Join(powerSupplyRoot, cfg.Battery)),
		barline.WithThermalZone(filepath.Join(thermalRoot, cfg.ThermalZone)),
	}
	if len(bottom) > 0 {
		opts = append(opts, barline.WithBottomModules(bottom...))
	}
	if cfg.TopDelimiter != "" {
		opts = append(opts, barline.WithTopDelimiter(cfg.TopDelimiter))
	}
	if cfg.BottomDelimiter != "" {
		opts = append(opts, barline.WithBottomDelimiter(cfg.BottomDelimiter))
	}
	if cfg.GroupDelimiter != "" {
		opts = append(opts, barline.WithGroupDelimiter(cfg.GroupDelimiter))
	}
	if len(cfg.Filesystems) > 0 {
		opts = append(opts, barline.WithFilesystems(cfg.Filesystems...))
	}
	if cfg.Renderer == "stdout" {
		opts = append(opts, barline.WithRenderer(render.NewWriter(os.Stdout)))
	}
	return opts, nil
}

// buildModules converts one group's descriptors to SDK modules. Parse
// already validated the descriptors; NewModule revalidates as the SDK
// entry point, so any error surfacing here keeps its category.
func buildModules(mcs []ModuleConfig) ([]barline.Module, error) {
	modules := make([]barline.Module, 0, len(mcs))
	for _, mc := range mcs {
		mopts := []barline.ModuleOption{
			barline.WithRefreshInterval(time.Duration(*mc.Interval) * time.Second),
			barline.WithSignal(*mc.Signal),
		}
		if mc.Kind == string(barline.KindExternal) {
			mopts = append(mopts, barline.External())
		}
		m, err := barline.NewModule(mc.Name, mopts...)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// orDefault returns s, or def when s is empty.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
