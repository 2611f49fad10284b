// Package sysinfo reads the raw system data behind the built-in modules.
//
// Battery and thermal readings come straight from sysfs; CPU counters,
// memory, and disk usage go through gopsutil. Every function takes the
// path it reads from (or relies on gopsutil's own discovery), so tests
// can point readers at temporary directories.
//
// All errors here are transient-by-contract: callers treat a failed read
// as "no new data this cycle" and keep the previous output.
package sysinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Battery holds one reading of a power supply's state.
type Battery struct {
	// Status is the kernel's charge state string, e.g. "Charging",
	// "Discharging", "Full".
	Status string

	// Capacity is the charge percentage, 0-100.
	Capacity int
}

// ReadBattery reads the status and capacity files under dir, which is a
// sysfs power-supply directory such as /sys/class/power_supply/BAT0.
func ReadBattery(dir string) (Battery, error) {
	status, err := readLine(filepath.Join(dir, "status"))
	if err != nil {
		return Battery{}, err
	}
	capStr, err := readLine(filepath.Join(dir, "capacity"))
	if err != nil {
		return Battery{}, err
	}
	capacity, err := strconv.Atoi(capStr)
	if err != nil {
		return Battery{}, fmt.Errorf("parse battery capacity %q: %w", capStr, err)
	}
	return Battery{Status: status, Capacity: capacity}, nil
}

// ReadTemperature reads a thermal zone's temperature file under dir
// (e.g. /sys/class/thermal/thermal_zone0) and returns degrees Celsius.
// The kernel reports millidegrees.
func ReadTemperature(dir string) (int, error) {
	raw, err := readLine(filepath.Join(dir, "temp"))
	if err != nil {
		return 0, err
	}
	milli, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse temperature %q: %w", raw, err)
	}
	return milli / 1000, nil
}

// CPUCounters holds cumulative CPU time counters. Load is computed from
// the delta between two readings, never from a single one.
type CPUCounters struct {
	// Busy is the cumulative non-idle CPU time in seconds.
	Busy float64

	// Total is the cumulative CPU time in seconds, idle included.
	Total float64
}

// ReadCPUCounters returns the aggregate CPU counters since boot.
func ReadCPUCounters() (CPUCounters, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return CPUCounters{}, err
	}
	if len(times) == 0 {
		return CPUCounters{}, fmt.Errorf("no aggregate cpu counters reported")
	}
	t := times[0]
	idle := t.Idle + t.Iowait
	busy := t.User + t.System + t.Nice + t.Irq + t.Softirq + t.Steal
	return CPUCounters{Busy: busy, Total: busy + idle}, nil
}

// LoadPercent computes CPU load over the window between two counter
// readings, clamped to [0,100]. A zero or negative window reads as 0.
func LoadPercent(prev, cur CPUCounters) int {
	dTotal := cur.Total - prev.Total
	if dTotal <= 0 {
		return 0
	}
	pct := int((cur.Busy - prev.Busy) / dTotal * 100.0)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// MemAvailable returns the bytes of memory available for new workloads.
func MemAvailable() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// DiskFree returns the free bytes on the filesystem mounted at path.
func DiskFree(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// FormatBytes renders a byte count with a single-letter binary-unit
// suffix, one decimal place below 10 units ("3.4G", "756M", "12G").
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	value := float64(n) / float64(div)
	suffix := string("KMGTPE"[exp])
	if value < 10 {
		return fmt.Sprintf("%.1f%s", value, suffix)
	}
	return fmt.Sprintf("%.0f%s", value, suffix)
}

// readLine reads a file and returns its first line with surrounding
// whitespace trimmed.
func readLine(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line), nil
}
