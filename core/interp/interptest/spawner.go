// Package interptest provides an in-process Spawner for exercising the
// execution engine without creating real operating system processes.
package interptest

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"josephlewis.net/minsh/core/interp"
)

// ProcessFunc stands in for a program binary. It runs in its own goroutine
// with private duplicates of the standard streams the engine assigned, and
// returns an exit status.
type ProcessFunc func(stdin io.Reader, stdout, stderr io.Writer) int

// SpawnRecord captures one Spawn call.
type SpawnRecord struct {
	Name string
	Argv []string
	Dir  string
}

// Spawner resolves program names against a fixed table of ProcessFuncs.
// Unknown names fail with exec.ErrNotFound, like an empty PATH.
type Spawner struct {
	mu       sync.Mutex
	programs map[string]ProcessFunc
	spawned  []SpawnRecord
	handles  []*Handle
}

// NewSpawner returns a Spawner that knows the given programs.
func NewSpawner(programs map[string]ProcessFunc) *Spawner {
	return &Spawner{programs: programs}
}

// Spawned returns a copy of every recorded launch, in creation order.
func (s *Spawner) Spawned() []SpawnRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SpawnRecord(nil), s.spawned...)
}

// AllReaped reports whether every handle this spawner produced was waited on.
func (s *Spawner) AllReaped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.handles {
		if !h.waited {
			return false
		}
	}
	return true
}

// Spawn implements interp.Spawner. The three descriptors are duplicated the
// way fork duplicates a child's table, so the engine closing its own copies
// never cuts the running program off.
func (s *Spawner) Spawn(name string, argv []string, attr *interp.ProcAttr) (interp.Handle, error) {
	fn, ok := s.programs[name]
	if !ok {
		return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	var files [3]*os.File
	for i, f := range attr.Files {
		fd, err := syscall.Dup(int(f.Fd()))
		if err != nil {
			for _, d := range files[:i] {
				d.Close()
			}
			return nil, fmt.Errorf("dup: %w", err)
		}
		files[i] = os.NewFile(uintptr(fd), f.Name())
	}

	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer func() {
			for _, f := range files {
				f.Close()
			}
		}()
		h.status = fn(files[0], files[1], files[2])
	}()

	s.mu.Lock()
	s.spawned = append(s.spawned, SpawnRecord{Name: name, Argv: argv, Dir: attr.Dir})
	s.handles = append(s.handles, h)
	s.mu.Unlock()

	return h, nil
}

var _ interp.Spawner = (*Spawner)(nil)

// Handle is the fake process handle returned by Spawner.
type Handle struct {
	done   chan struct{}
	status int
	waited bool
}

// Wait blocks until the ProcessFunc returns.
func (h *Handle) Wait() error {
	<-h.done
	h.waited = true
	return nil
}
