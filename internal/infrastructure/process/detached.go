package process

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/dicomops/dcmon-cli/internal/core/launch"
)

// DetachedExecutor spawns child processes that outlive the launcher. The
// child gets a fresh session (or detached process group on Windows), no
// inherited stdio, and its handle is released immediately: fire-and-forget
// by contract, there is no join point and no liveness check.
type DetachedExecutor struct {
	env []string
}

// NewDetachedExecutor creates an executor inheriting the current environment
func NewDetachedExecutor() *DetachedExecutor {
	return &DetachedExecutor{env: os.Environ()}
}

// NewDetachedExecutorWithEnv creates an executor with an explicit environment
func NewDetachedExecutorWithEnv(env []string) *DetachedExecutor {
	if env == nil {
		env = os.Environ()
	}
	return &DetachedExecutor{env: env}
}

// SpawnDetached issues the spawn request and returns the child PID. A nil
// error guarantees only that the OS accepted the start request; whatever the
// child does afterwards is its own business.
func (e *DetachedExecutor) SpawnDetached(cmd launch.Command) (int, error) {
	execCmd := exec.Command(cmd.Executable(), cmd.Args()...)
	execCmd.Dir = cmd.WorkingDir()
	execCmd.Env = append([]string(nil), e.env...)

	// No stdio: the child must not hold the launcher's terminal open.
	execCmd.Stdin = nil
	execCmd.Stdout = nil
	execCmd.Stderr = nil

	execCmd.SysProcAttr = detachSysProcAttr()

	if err := execCmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", cmd.Executable(), err)
	}

	pid := execCmd.Process.Pid

	// Drop the handle; nothing ever waits on this child.
	if err := execCmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("spawned pid %d but failed to release handle: %w", pid, err)
	}

	return pid, nil
}
