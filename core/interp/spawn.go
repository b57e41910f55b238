package interp

import (
	"os"
	"os/exec"
)

// ProcAttr describes how to start one child process. Go has no fork, so the
// descriptor rebinding a forked child would perform between fork and exec is
// declared here instead and applied atomically by the Spawner.
type ProcAttr struct {
	// Dir is the child's working directory; empty means inherit.
	Dir string
	// Env is the child's environment; nil means inherit.
	Env []string
	// Files are the child's standard input, output and error streams.
	Files [3]*os.File
}

// Handle is an owned reference to a started process. The owner must reap it
// by calling Wait exactly once; the handle must not be used afterwards.
type Handle interface {
	// Wait blocks until this specific process terminates. The child's exit
	// status is not reported; only the termination event matters.
	Wait() error
}

// Spawner launches external programs. The engine talks to processes only
// through this interface so tests can substitute in-process fakes.
type Spawner interface {
	Spawn(name string, argv []string, attr *ProcAttr) (Handle, error)
}

// NewOSSpawner returns a Spawner backed by real operating system processes.
func NewOSSpawner() Spawner {
	return osSpawner{}
}

type osSpawner struct{}

func (osSpawner) Spawn(name string, argv []string, attr *ProcAttr) (Handle, error) {
	// PATH resolution happens in the interpreter; there is no child to
	// discover the failure in.
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, err
	}

	proc, err := os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   attr.Dir,
		Env:   attr.Env,
		Files: []*os.File{attr.Files[0], attr.Files[1], attr.Files[2]},
	})
	if err != nil {
		return nil, err
	}
	return &osHandle{proc: proc}, nil
}

type osHandle struct {
	proc *os.Process
}

func (h *osHandle) Wait() error {
	_, err := h.proc.Wait()
	return err
}
