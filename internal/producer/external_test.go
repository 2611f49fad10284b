package producer

import (
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"plain output", "echo hello", "hello"},
		{"trailing newlines stripped", "printf 'hi\\n\\n\\n'", "hi"},
		{"shell expansion", "echo $((2 + 3))", "5"},
		{"empty output", "true", ""},
		{"failing command blanks the field", "exit 3", ""},
		{"missing binary blanks the field", "/no/such/binary", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Command(tt.command, testLogger())()
			if !ok {
				t.Fatalf("Command(%q) reported a failed cycle", tt.command)
			}
			if got != tt.want {
				t.Errorf("Command(%q) = %q, want %q", tt.command, got, tt.want)
			}
		})
	}
}

func TestCommand_TruncatesRunawayOutput(t *testing.T) {
	// 600 bytes of x, well past the cap
	got, ok := Command("head -c 600 /dev/zero | tr '\\0' 'x'", testLogger())()
	if !ok {
		t.Fatal("Command reported a failed cycle")
	}
	if len(got) != MaxCommandOutput {
		t.Errorf("output length = %d, want %d", len(got), MaxCommandOutput)
	}
	if strings.Trim(got, "x") != "" {
		t.Errorf("output contains unexpected bytes: %q", got)
	}
}
