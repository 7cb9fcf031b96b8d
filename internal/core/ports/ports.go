package ports

import (
	"context"

	"github.com/dicomops/dcmon-cli/internal/core/dicom"
	"github.com/dicomops/dcmon-cli/internal/core/launch"
)

// Executor starts a child process fully detached from the caller: the child
// keeps running after the caller exits and no handle to it is retained.
// A nil error means only that the spawn request was issued successfully.
type Executor interface {
	SpawnDetached(cmd launch.Command) (pid int, err error)
}

// EnvironmentResolver locates the project-local execution environment for a
// directory and returns the interpreter to run scripts with. Implementations
// must fail rather than fall back to a global interpreter.
type EnvironmentResolver interface {
	ResolveInterpreter(installDir string) (string, error)
}

// TagReader extracts the StudyDescription tag from a DICOM file on disk.
type TagReader interface {
	StudyDescription(path string) (dicom.StudyDescription, error)
}

// Uploader posts a DICOM file to a route endpoint.
type Uploader interface {
	Upload(ctx context.Context, filePath, endpoint string) error
}

// Watcher emits paths of DICOM files that have appeared under the watched
// directories and passed the stability gate. The channel closes when the
// context is cancelled or the watcher is closed.
type Watcher interface {
	Start(ctx context.Context) (<-chan string, error)
	Close() error
}
