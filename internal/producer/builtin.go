package producer

import (
	"fmt"
	"strings"
	"time"

	"github.com/barline/barline/internal/sysinfo"
)

// Date returns a compute function rendering the current local time with
// the given reference-time layout. It never fails.
func Date(layout string) ComputeFunc {
	return func() (string, bool) {
		return time.Now().Format(layout), true
	}
}

// batteryGlyph picks the battery icon for a capacity percentage. The
// ramps are nerd-font battery glyphs; charging uses the bolt variants.
func batteryGlyph(status string, capacity int) string {
	if status == "Charging" {
		switch {
		case capacity < 5:
			return ""
		case capacity < 20:
			return ""
		case capacity < 30:
			return ""
		case capacity < 40:
			return ""
		case capacity < 60:
			return ""
		case capacity < 80:
			return ""
		case capacity < 90:
			return ""
		default:
			return ""
		}
	}
	switch {
	case capacity < 5:
		return ""
	case capacity < 10:
		return ""
	case capacity < 20:
		return ""
	case capacity < 30:
		return ""
	case capacity < 40:
		return ""
	case capacity < 50:
		return ""
	case capacity < 60:
		return ""
	case capacity < 70:
		return ""
	case capacity < 80:
		return ""
	case capacity < 90:
		return ""
	case capacity < 100:
		return ""
	default:
		if status == "Discharging" {
			return ""
		}
		return ""
	}
}

// Battery returns a compute function reading the power supply under dir.
// A machine without that supply (or with the files briefly unreadable,
// as happens during suspend) fails the cycle silently.
func Battery(dir string) ComputeFunc {
	return func() (string, bool) {
		bat, err := sysinfo.ReadBattery(dir)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("%d%% %s", bat.Capacity, batteryGlyph(bat.Status, bat.Capacity)), true
	}
}

// CPU returns a compute function showing CPU load percent and, when the
// thermal zone under thermalDir is readable, the package temperature.
//
// Load is the busy share of the window since the previous refresh. The
// previous counters are carry-over state owned exclusively by this
// closure; the first refresh reports the average since boot.
func CPU(thermalDir string) ComputeFunc {
	var prev sysinfo.CPUCounters
	return func() (string, bool) {
		cur, err := sysinfo.ReadCPUCounters()
		if err != nil {
			return "", false
		}
		load := sysinfo.LoadPercent(prev, cur)
		prev = cur

		out := fmt.Sprintf(" %d%%", load)
		if temp, err := sysinfo.ReadTemperature(thermalDir); err == nil {
			out += fmt.Sprintf(" %d°C", temp)
		}
		return out, true
	}
}

// RAM returns a compute function showing available memory.
func RAM() ComputeFunc {
	return func() (string, bool) {
		avail, err := sysinfo.MemAvailable()
		if err != nil {
			return "", false
		}
		return " " + sysinfo.FormatBytes(avail), true
	}
}

// Disk returns a compute function showing free space for each monitored
// mount path. Paths that cannot be read this cycle are skipped; if every
// path fails the previous output is retained.
func Disk(paths []string) ComputeFunc {
	return func() (string, bool) {
		fields := make([]string, 0, len(paths))
		for _, path := range paths {
			free, err := sysinfo.DiskFree(path)
			if err != nil {
				continue
			}
			fields = append(fields, fmt.Sprintf("%s: %s", path, sysinfo.FormatBytes(free)))
		}
		if len(fields) == 0 {
			return "", false
		}
		return " " + strings.Join(fields, " "), true
	}
}
