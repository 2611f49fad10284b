package producer

import (
	"log/slog"
	"os/exec"
	"strings"
)

// MaxCommandOutput caps the text captured from an external command. A
// status line is a few hundred characters at most; anything past the cap
// is a misbehaving script, not data.
const MaxCommandOutput = 500

// Command returns a compute function that runs command through the shell
// and publishes its standard output verbatim, truncated to
// [MaxCommandOutput] bytes. Trailing newlines are stripped; no other
// formatting is applied.
//
// The shell handles tilde and variable expansion in configured script
// paths. A launch failure or non-zero exit publishes an empty field —
// a broken script blanks its slot rather than freezing stale output or
// killing the loop.
func Command(command string, logger *slog.Logger) ComputeFunc {
	return func() (string, bool) {
		out, err := exec.Command("/bin/sh", "-c", command).Output()
		if err != nil {
			logger.Debug("external command failed", "command", command, "error", err)
			return "", true
		}
		if len(out) > MaxCommandOutput {
			out = out[:MaxCommandOutput]
		}
		return strings.TrimRight(string(out), "\n"), true
	}
}
