package interp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds the supplementary builtins dispatched by name. The cd and
// exit builtins are not listed here; they are intercepted by classification
// tag because they alter the interpreter itself.
var AllBuiltins = make(map[string]BuiltinFunc)

// BuiltinFunc runs a builtin in the interpreter's own process and returns its
// exit status.
type BuiltinFunc func(e *Engine, args []string) int

// errPathExpected reports a cd invocation with no target path.
var errPathExpected = errors.New("path expected after cd")

// cd changes the interpreter's process-wide working directory. Relative
// targets are resolved against the current directory before the change, so a
// failure leaves the directory untouched. Running children are unaffected;
// new children inherit the result.
func (e *Engine) cd(args []string) error {
	if len(args) < 2 {
		return errPathExpected
	}

	target := args[1]
	if !filepath.IsAbs(target) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd + string(filepath.Separator) + target
	}
	return os.Chdir(target)
}

// Pwd prints the interpreter's working directory.
func Pwd(e *Engine, args []string) int {
	opts := getopt.New()
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		if err != nil {
			fmt.Fprintln(e.Stderr, err)
		}
		fmt.Fprintln(e.Stderr, "usage: pwd")
		fmt.Fprintln(e.Stderr, "Print the current working directory.")
		return 1
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(e.Stderr, "pwd: %v\n", err)
		return 1
	}
	fmt.Fprintln(e.Stdout, wd)
	return 0
}

// Help lists the commands the interpreter executes itself.
func Help(e *Engine, args []string) int {
	w := e.Stdout
	fmt.Fprintln(w, "These commands are executed by the interpreter itself;")
	fmt.Fprintln(w, "everything else runs as an external program.")
	fmt.Fprintln(w)

	builtins := []string{"cd", "exit"}
	for k := range AllBuiltins {
		builtins = append(builtins, k)
	}
	sort.Strings(builtins)

	fmt.Fprintln(w, strings.Join(builtins, "\n"))
	return 0
}

func init() {
	AllBuiltins["pwd"] = Pwd
	AllBuiltins["help"] = Help
}
