//go:build unix

package gate

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Exec replaces the current process image with command, passing through the
// environment and inherited file descriptors. It does not return on success;
// the child keeps the entrypoint's PID so signals and exit status flow to it
// directly.
func Exec(command []string) error {
	if len(command) == 0 {
		return errors.New("no command provided")
	}
	path, err := exec.LookPath(command[0])
	if err != nil {
		return fmt.Errorf("failed to find command %q: %w", command[0], err)
	}
	if err := syscall.Exec(path, command, os.Environ()); err != nil {
		return fmt.Errorf("failed to exec %q: %w", path, err)
	}
	return nil
}
