package producer

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// writeBattery lays out a fake power supply directory.
func writeBattery(t *testing.T, status string, capacity int) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "status"), []byte(status+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "capacity"), []byte(strconv.Itoa(capacity)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDate(t *testing.T) {
	compute := Date("2006")
	got, ok := compute()
	if !ok {
		t.Fatal("Date compute failed")
	}
	want := time.Now().Format("2006")
	if got != want {
		t.Errorf("Date() = %q, want %q", got, want)
	}
}

func TestBattery(t *testing.T) {
	dir := writeBattery(t, "Discharging", 75)
	got, ok := Battery(dir)()
	if !ok {
		t.Fatal("Battery compute failed")
	}
	if !strings.HasPrefix(got, "75% ") {
		t.Errorf("Battery() = %q, want %q prefix", got, "75% ")
	}
	if strings.TrimPrefix(got, "75% ") == "" {
		t.Errorf("Battery() = %q, missing glyph", got)
	}
}

func TestBattery_MissingSupplyFailsCycle(t *testing.T) {
	got, ok := Battery(filepath.Join(t.TempDir(), "BAT9"))()
	if ok {
		t.Errorf("Battery() on a missing supply = (%q, true), want failed cycle", got)
	}
}

func TestBatteryGlyph(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		capacity int
	}{
		{"discharging empty", "Discharging", 2},
		{"discharging half", "Discharging", 55},
		{"discharging full", "Discharging", 100},
		{"charging low", "Charging", 15},
		{"charging full", "Charging", 100},
		{"full at mains", "Full", 100},
	}
	seen := make(map[string]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyph := batteryGlyph(tt.status, tt.capacity)
			if glyph == "" {
				t.Fatalf("batteryGlyph(%q, %d) = empty", tt.status, tt.capacity)
			}
			seen[tt.name] = glyph
		})
	}
	// the charge level must be distinguishable at a glance
	if seen["discharging empty"] == seen["discharging full"] {
		t.Error("empty and full discharging glyphs are identical")
	}
	if seen["charging low"] == seen["discharging half"] {
		t.Error("charging and discharging glyphs are identical")
	}
}

func TestCPU(t *testing.T) {
	compute := CPU(filepath.Join(t.TempDir(), "no_thermal_zone"))
	got, ok := compute()
	if !ok {
		t.Skip("CPU counters unavailable in this environment")
	}
	if !strings.HasSuffix(got, "%") {
		t.Errorf("CPU() = %q, want %% suffix", got)
	}
	// no readable thermal zone means no temperature field
	if strings.Contains(got, "°C") {
		t.Errorf("CPU() = %q, contains temperature without a thermal zone", got)
	}
}

func TestCPU_IncludesTemperature(t *testing.T) {
	zone := t.TempDir()
	if err := os.WriteFile(filepath.Join(zone, "temp"), []byte("47500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok := CPU(zone)()
	if !ok {
		t.Skip("CPU counters unavailable in this environment")
	}
	if !strings.Contains(got, "47°C") {
		t.Errorf("CPU() = %q, want it to contain %q", got, "47°C")
	}
}

func TestRAM(t *testing.T) {
	got, ok := RAM()()
	if !ok {
		t.Skip("memory stats unavailable in this environment")
	}
	if got == "" {
		t.Error("RAM() = empty string")
	}
}

func TestDisk(t *testing.T) {
	path := t.TempDir()
	got, ok := Disk([]string{path})()
	if !ok {
		t.Fatalf("Disk(%q) failed", path)
	}
	if !strings.Contains(got, path+":") {
		t.Errorf("Disk() = %q, want it to contain %q", got, path+":")
	}
}

func TestDisk_AllPathsFailingFailsCycle(t *testing.T) {
	got, ok := Disk([]string{"/definitely/not/mounted/anywhere"})()
	if ok {
		t.Errorf("Disk() on missing paths = (%q, true), want failed cycle", got)
	}
}

func TestDisk_SkipsUnreadablePaths(t *testing.T) {
	path := t.TempDir()
	got, ok := Disk([]string{"/definitely/not/mounted/anywhere", path})()
	if !ok {
		t.Fatal("Disk failed with one readable path")
	}
	if strings.Contains(got, "/definitely/not/mounted") {
		t.Errorf("Disk() = %q, includes the unreadable path", got)
	}
	if !strings.Contains(got, path+":") {
		t.Errorf("Disk() = %q, missing the readable path", got)
	}
}
