package jj

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// run executes one jj invocation and returns its stdout. stderr is folded
// into the error on failure so callers see jj's own explanation.
func (l *Log) run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, l.bin, args...)
	cmd.Dir = l.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", "", fmt.Errorf("jj %s failed: %w, stderr: %s",
			args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), stderr.String(), nil
}

// parseCreatedID extracts the change ID from the output of a jj command
// that created a new change, e.g. "Created new commit kxyzwvut 1a2b3c4d".
func parseCreatedID(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		for i := 0; i+3 < len(fields); i++ {
			if fields[i] == "Created" && fields[i+1] == "new" && fields[i+2] == "commit" {
				return fields[i+3], nil
			}
		}
	}
	return "", fmt.Errorf("jj: could not find created change id in output: %q",
		strings.TrimSpace(output))
}
