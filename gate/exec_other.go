//go:build !unix

package gate

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Exec runs command with inherited stdio and environment, then exits with
// the child's exit code. Process-image replacement is unavailable here, so
// spawn-and-wait with exit-code propagation stands in for it; the child gets
// its own PID but observable behavior matches the unix path.
func Exec(command []string) error {
	if len(command) == 0 {
		return errors.New("no command provided")
	}
	path, err := exec.LookPath(command[0])
	if err != nil {
		return fmt.Errorf("failed to find command %q: %w", command[0], err)
	}

	cmd := exec.Command(path, command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %q: %w", path, err)
	}
	os.Exit(0)
	return nil
}
