package interp

import (
	"fmt"
	"strings"
)

// Builtin classifies a simple command that must run in the interpreter's own
// process instead of a child.
type Builtin int

const (
	BuiltinNone Builtin = iota
	BuiltinExit
	BuiltinCd
)

func (b Builtin) String() string {
	switch b {
	case BuiltinExit:
		return "exit"
	case BuiltinCd:
		return "cd"
	default:
		return "none"
	}
}

// Operator joins the two subtrees of a complex command. The executor
// dispatches on this value, so additional binary operators (";", "&&") can be
// added without restructuring the tree.
type Operator string

// OpPipe connects the left subtree's standard output to the right subtree's
// standard input.
const OpPipe Operator = "|"

// SimpleCommand is a single program invocation: the argument vector plus
// optional redirection targets. An empty path means "inherit the stream".
type SimpleCommand struct {
	// Args holds the program name followed by its arguments. Never empty.
	Args []string

	// In, Out and Err name files to rebind stdin, stdout and stderr to.
	In  string
	Out string
	Err string

	// Builtin is the interception tag assigned by the parser.
	Builtin Builtin
}

// Command is one node of a command tree. Exactly one shape is populated:
// either Simple is non-nil (a leaf), or Op joins the non-nil Left and Right
// subtrees.
type Command struct {
	Simple *SimpleCommand

	Op    Operator
	Left  *Command
	Right *Command
}

// String renders the tree one node per line, children indented, primarily
// for debugging and golden tests.
func (c *Command) String() string {
	var b strings.Builder
	c.dump(&b, 0)
	return b.String()
}

func (c *Command) dump(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if c == nil {
		fmt.Fprintf(b, "%s<nil>\n", indent)
		return
	}

	if c.Simple != nil {
		fmt.Fprintf(b, "%sexec %q", indent, c.Simple.Args)
		if c.Simple.In != "" {
			fmt.Fprintf(b, " <%s", c.Simple.In)
		}
		if c.Simple.Out != "" {
			fmt.Fprintf(b, " >%s", c.Simple.Out)
		}
		if c.Simple.Err != "" {
			fmt.Fprintf(b, " 2>%s", c.Simple.Err)
		}
		if c.Simple.Builtin != BuiltinNone {
			fmt.Fprintf(b, " builtin=%s", c.Simple.Builtin)
		}
		fmt.Fprintln(b)
		return
	}

	fmt.Fprintf(b, "%sop %q\n", indent, string(c.Op))
	c.Left.dump(b, depth+1)
	c.Right.dump(b, depth+1)
}
