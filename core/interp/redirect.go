package interp

import "os"

// outputFlags is the redirect policy for > and 2>: create the file if it is
// missing, truncate any previous contents.
const outputFlags = os.O_CREATE | os.O_RDWR | os.O_TRUNC

// outputMode grants read/write to owner and group, read-only to others.
const outputMode = 0664

// stdio holds the three standard streams handed to a child process, in the
// usual order: stdin, stdout, stderr.
type stdio [3]*os.File

// applyRedirects opens the leaf's redirection targets and rebinds the
// corresponding slots of files. The returned opened list holds the
// interpreter's copies of the new descriptors; the caller must close them
// once the child has its own. On error every file opened so far has already
// been closed.
//
// The three redirections are independent; each rebinds a distinct stream, so
// their order does not affect the final bindings.
func applyRedirects(cmd *SimpleCommand, files stdio) (stdio, []*os.File, error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	if cmd.In != "" {
		f, err := os.Open(cmd.In)
		if err != nil {
			closeAll()
			return files, nil, err
		}
		opened = append(opened, f)
		files[0] = f
	}

	if cmd.Out != "" {
		f, err := os.OpenFile(cmd.Out, outputFlags, outputMode)
		if err != nil {
			closeAll()
			return files, nil, err
		}
		opened = append(opened, f)
		files[1] = f
	}

	if cmd.Err != "" {
		f, err := os.OpenFile(cmd.Err, outputFlags, outputMode)
		if err != nil {
			closeAll()
			return files, nil, err
		}
		opened = append(opened, f)
		files[2] = f
	}

	return files, opened, nil
}
