package di

import (
	"github.com/dicomops/dcmon-cli/internal/infrastructure/process"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/pyenv"
	"github.com/dicomops/dcmon-cli/internal/interfaces/cli"
)

// Container holds the launcher-side application dependencies. The watch
// daemon wires its own graph per invocation because its components depend
// on runtime flags (log directory, settings path).
type Container struct {
	CLI *cli.CLIContainer
}

// NewContainer creates and configures the dependency injection container
func NewContainer() *Container {
	return &Container{
		CLI: &cli.CLIContainer{
			Executor:    process.NewDetachedExecutor(),
			EnvResolver: pyenv.NewResolver(),
		},
	}
}
