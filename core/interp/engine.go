// Package interp executes parsed command trees by orchestrating child
// processes: it wires pipes between pipeline stages, rebinds standard streams
// for redirections, runs builtins inline and reaps every process it creates.
package interp

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
)

// Engine executes command trees. Its three streams are what child processes
// inherit by default; diagnostics for recoverable failures go to Stderr.
type Engine struct {
	// Spawner launches external programs.
	Spawner Spawner
	// Env is the environment handed to children; nil means inherit the
	// interpreter's own.
	Env []string

	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// NewEngine returns an Engine bound to the interpreter's standard streams.
func NewEngine(spawner Spawner) *Engine {
	return &Engine{
		Spawner: spawner,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// launchError marks a failure confined to a single pipeline stage: the
// program could not be found or a redirection target could not be opened.
// A fork-based shell discovers these inside the child, which reports and
// exits without disturbing its siblings; here the stage simply never starts.
type launchError struct {
	err error
}

func (l *launchError) Error() string { return l.err.Error() }

func (l *launchError) Unwrap() error { return l.err }

// Execute runs one command tree and reports whether the interpreter loop
// should stop. A non-nil error means the interpreter is in an unrecoverable
// state and must shut down; everything recoverable has already been reported
// on Stderr.
func (e *Engine) Execute(cmd *Command) (stop bool, err error) {
	if cmd == nil {
		return false, nil
	}
	if cmd.Simple != nil {
		return e.runSimple(cmd.Simple), nil
	}
	return false, e.runComplex(cmd)
}

// runSimple executes a stand-alone leaf. Builtins run inline in the
// interpreter's process; everything else runs in a child that is reaped
// before the next prompt. The returned flag is true only for the exit
// builtin.
func (e *Engine) runSimple(cmd *SimpleCommand) (stop bool) {
	switch cmd.Builtin {
	case BuiltinExit:
		// Propagated up as a stop signal so the caller can finish its own
		// bookkeeping instead of being torn down mid-loop.
		return true

	case BuiltinCd:
		if err := e.cd(cmd.Args); err != nil {
			if errors.Is(err, errPathExpected) {
				fmt.Fprintln(e.Stderr, "Path expected after cd")
			} else {
				fmt.Fprintf(e.Stderr, "%v\n", err)
			}
		}
		return false
	}

	// Registered builtins only apply to plain invocations; a redirected one
	// falls through to the external program of the same name.
	if cmd.In == "" && cmd.Out == "" && cmd.Err == "" {
		if fn, ok := AllBuiltins[cmd.Args[0]]; ok {
			fn(e, cmd.Args)
			return false
		}
	}

	h, err := e.startLeaf(cmd, stdio{e.Stdin, e.Stdout, e.Stderr})
	if err != nil {
		// The command never ran; report it and keep the loop alive.
		fmt.Fprintf(e.Stderr, "%v\n", err)
		return false
	}
	if err := h.Wait(); err != nil {
		fmt.Fprintf(e.Stderr, "wait: %v\n", err)
	}
	return false
}

// runComplex launches the whole pipe topology and then reaps every child it
// started, in creation order. Builtins are never intercepted below this
// point, so an exit nested in a pipe stage cannot stop the interpreter.
func (e *Engine) runComplex(cmd *Command) error {
	handles, err := e.startTree(cmd, stdio{e.Stdin, e.Stdout, e.Stderr})

	// Reap even after a fatal error so nothing already started is orphaned.
	for _, h := range handles {
		if werr := h.Wait(); werr != nil && err == nil {
			err = fmt.Errorf("wait: %w", werr)
		}
	}
	return err
}

// startTree recursively launches the processes for a subtree and returns
// their handles. files describes the streams this subtree inherits; pipe
// nodes splice their own descriptors into the middle.
func (e *Engine) startTree(cmd *Command, files stdio) ([]Handle, error) {
	if cmd.Simple != nil {
		h, err := e.startLeaf(cmd.Simple, files)
		var lerr *launchError
		if errors.As(err, &lerr) {
			// The stage died before it could run, exactly like a forked
			// child that fails its setup. Its siblings proceed; a consumer
			// reading from this stage sees immediate end-of-stream.
			fmt.Fprintf(e.Stderr, "%v\n", err)
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []Handle{h}, nil
	}

	switch cmd.Op {
	case OpPipe:
		return e.startPipe(cmd, files)
	default:
		return nil, fmt.Errorf("unsupported operator %q", string(cmd.Op))
	}
}

// startPipe connects cmd.Left's standard output to cmd.Right's standard
// input through a fresh pipe. Both of the interpreter's own pipe ends are
// closed before the caller waits: a spare write end held here would stall
// the consumer forever on an end-of-stream that never arrives.
func (e *Engine) startPipe(cmd *Command, files stdio) ([]Handle, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}

	var handles []Handle

	left, err := e.startTree(cmd.Left, stdio{files[0], w, files[2]})
	handles = append(handles, left...)
	if err != nil {
		w.Close()
		r.Close()
		return handles, err
	}
	// The producer now holds its own copy of the write end.
	if err := w.Close(); err != nil {
		r.Close()
		return handles, fmt.Errorf("close: %w", err)
	}

	right, err := e.startTree(cmd.Right, stdio{r, files[1], files[2]})
	handles = append(handles, right...)
	if err != nil {
		r.Close()
		return handles, err
	}
	if err := r.Close(); err != nil {
		return handles, fmt.Errorf("close: %w", err)
	}

	return handles, nil
}

// startLeaf opens the leaf's redirections and spawns its program. Builtins
// are not intercepted here; inside a pipeline they resolve like any other
// program name. Failures that a forked child would discover during its setup
// are returned as *launchError.
func (e *Engine) startLeaf(cmd *SimpleCommand, files stdio) (Handle, error) {
	files, opened, err := applyRedirects(cmd, files)
	if err != nil {
		return nil, &launchError{err: err}
	}
	// After a successful spawn the child owns duplicates; the interpreter's
	// copies must not leak into later stages.
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	h, err := e.Spawner.Spawn(cmd.Args[0], cmd.Args, &ProcAttr{
		Env:   e.Env,
		Files: files,
	})
	switch {
	case errors.Is(err, exec.ErrNotFound),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return nil, &launchError{err: err}
	case err != nil:
		return nil, fmt.Errorf("%s: %w", cmd.Args[0], err)
	}
	return h, nil
}
