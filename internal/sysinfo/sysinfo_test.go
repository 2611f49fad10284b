package sysinfo

import (
	"os"
	"path/filepath"
	"testing"
)

// writeBattery creates a fake sysfs power-supply directory.
func writeBattery(t *testing.T, status, capacity string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "status"), []byte(status+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "capacity"), []byte(capacity+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestReadBattery(t *testing.T) {
	dir := writeBattery(t, "Discharging", "42")

	bat, err := ReadBattery(dir)
	if err != nil {
		t.Fatalf("ReadBattery() error = %v", err)
	}
	if bat.Status != "Discharging" {
		t.Errorf("Status = %q, want %q", bat.Status, "Discharging")
	}
	if bat.Capacity != 42 {
		t.Errorf("Capacity = %d, want 42", bat.Capacity)
	}
}

func TestReadBattery_MissingFiles(t *testing.T) {
	if _, err := ReadBattery(t.TempDir()); err == nil {
		t.Error("ReadBattery() on empty dir, want error")
	}
}

func TestReadBattery_BadCapacity(t *testing.T) {
	dir := writeBattery(t, "Charging", "not-a-number")
	if _, err := ReadBattery(dir); err == nil {
		t.Error("ReadBattery() with garbage capacity, want error")
	}
}

func TestReadTemperature(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "temp"), []byte("47500\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTemperature(dir)
	if err != nil {
		t.Fatalf("ReadTemperature() error = %v", err)
	}
	if got != 47 {
		t.Errorf("ReadTemperature() = %d, want 47 (millidegrees truncated)", got)
	}
}

func TestReadTemperature_Missing(t *testing.T) {
	if _, err := ReadTemperature(t.TempDir()); err == nil {
		t.Error("ReadTemperature() on empty dir, want error")
	}
}

func TestLoadPercent(t *testing.T) {
	tests := []struct {
		name string
		prev CPUCounters
		cur  CPUCounters
		want int
	}{
		{
			name: "half busy",
			prev: CPUCounters{Busy: 100, Total: 200},
			cur:  CPUCounters{Busy: 150, Total: 300},
			want: 50,
		},
		{
			name: "idle window",
			prev: CPUCounters{Busy: 100, Total: 200},
			cur:  CPUCounters{Busy: 100, Total: 300},
			want: 0,
		},
		{
			name: "fully busy",
			prev: CPUCounters{Busy: 100, Total: 200},
			cur:  CPUCounters{Busy: 200, Total: 300},
			want: 100,
		},
		{
			name: "zero window reads as zero",
			prev: CPUCounters{Busy: 100, Total: 200},
			cur:  CPUCounters{Busy: 100, Total: 200},
			want: 0,
		},
		{
			name: "counter wrap clamps low",
			prev: CPUCounters{Busy: 100, Total: 200},
			cur:  CPUCounters{Busy: 50, Total: 300},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoadPercent(tt.prev, tt.cur); got != tt.want {
				t.Errorf("LoadPercent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512B"},
		{2048, "2.0K"},
		{15 * 1024, "15K"},
		{3650722201, "3.4G"}, // ~3.4 GiB
		{1 << 40, "1.0T"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
