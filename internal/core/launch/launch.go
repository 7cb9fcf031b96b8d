package launch

import (
	"fmt"
	"os"
	"path/filepath"
)

// Context carries the resolved execution context for a launch: the
// directory the binary lives in and, in script mode, the interpreter of the
// project-local Python environment. It replaces the ambient shell state
// (chdir + venv activation) of the original batch deployment with explicit
// values threaded into the spawn call.
type Context struct {
	installDir  string
	interpreter string
}

// NewContext creates a launch context rooted at installDir
func NewContext(installDir string) (Context, error) {
	if installDir == "" {
		return Context{}, fmt.Errorf("install directory cannot be empty")
	}
	if !filepath.IsAbs(installDir) {
		abs, err := filepath.Abs(installDir)
		if err != nil {
			return Context{}, fmt.Errorf("failed to resolve install directory %q: %w", installDir, err)
		}
		installDir = abs
	}
	return Context{installDir: installDir}, nil
}

// ResolveOwnDirectory determines the absolute directory containing the
// running executable. There is no fallback: if the OS cannot report the
// binary's path the launcher cannot root itself and must abort.
func ResolveOwnDirectory() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot determine own executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("cannot resolve executable path %q: %w", exe, err)
	}
	return filepath.Dir(resolved), nil
}

// InstallDir returns the directory the launcher resolved itself into
func (c Context) InstallDir() string {
	return c.installDir
}

// Interpreter returns the resolved environment interpreter, empty in self mode
func (c Context) Interpreter() string {
	return c.interpreter
}

// WithInterpreter returns a copy of the context bound to an interpreter
func (c Context) WithInterpreter(interpreter string) Context {
	c.interpreter = interpreter
	return c
}

// Command is the value object describing the child process to spawn. The
// argument list is fixed at construction; the executor never reorders or
// rewrites it.
type Command struct {
	executable string
	args       []string
	workingDir string
}

// NewCommand creates a Command with validation
func NewCommand(executable string, args []string, workingDir string) (Command, error) {
	if executable == "" {
		return Command{}, fmt.Errorf("executable cannot be empty")
	}
	if workingDir == "" {
		return Command{}, fmt.Errorf("working directory cannot be empty")
	}
	return Command{
		executable: executable,
		args:       append([]string(nil), args...),
		workingDir: workingDir,
	}, nil
}

// MonitorCommand builds the child invocation for the bundled monitor:
// the launcher re-executes its own binary with the watch subcommand.
func MonitorCommand(ctx Context, selfExecutable, settingsPath, logDir string) (Command, error) {
	if selfExecutable == "" {
		return Command{}, fmt.Errorf("own executable path cannot be empty")
	}
	return NewCommand(
		selfExecutable,
		monitorArgs("watch", settingsPath, logDir),
		ctx.InstallDir(),
	)
}

// ScriptCommand builds the child invocation for an external Python monitor
// script run under the context's virtual environment interpreter.
func ScriptCommand(ctx Context, scriptPath, settingsPath, logDir string) (Command, error) {
	if ctx.Interpreter() == "" {
		return Command{}, fmt.Errorf("no interpreter resolved for script launch")
	}
	if scriptPath == "" {
		return Command{}, fmt.Errorf("script path cannot be empty")
	}
	return NewCommand(
		ctx.Interpreter(),
		monitorArgs(scriptPath, settingsPath, logDir),
		ctx.InstallDir(),
	)
}

// monitorArgs fixes the monitor's argument contract: --settings before
// --logdir, always both, nothing else.
func monitorArgs(first, settingsPath, logDir string) []string {
	return []string{first, "--settings", settingsPath, "--logdir", logDir}
}

// Executable returns the command executable
func (c Command) Executable() string {
	return c.executable
}

// Args returns a copy of the command arguments
func (c Command) Args() []string {
	return append([]string(nil), c.args...)
}

// WorkingDir returns the working directory for the child process
func (c Command) WorkingDir() string {
	return c.workingDir
}

// String implements the Stringer interface
func (c Command) String() string {
	out := c.executable
	for _, a := range c.args {
		out += " " + a
	}
	return out
}
