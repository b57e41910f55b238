// Package parser builds command trees from tokenized input lines.
//
// Tokenization itself happens upstream (the shell uses shlex); this package
// only recognizes structure: the pipe operator between stages and the
// redirection operators inside a stage. Operators must appear as stand-alone
// tokens.
package parser

import (
	"errors"
	"fmt"

	"josephlewis.net/minsh/core/interp"
)

const (
	opPipe = "|"
	opIn   = "<"
	opOut  = ">"
	opErr  = "2>"
)

var errEmptyCommand = errors.New("empty command")

// Parse turns a token list into a command tree. The split happens at the
// leftmost pipe, producing a right-leaning tree: the left child of every pipe
// node is a single stage, the right child is the rest of the pipeline.
func Parse(tokens []string) (*interp.Command, error) {
	if len(tokens) == 0 {
		return nil, errEmptyCommand
	}

	for i, tok := range tokens {
		if tok != opPipe {
			continue
		}
		if i == 0 || i == len(tokens)-1 {
			return nil, fmt.Errorf("syntax error near %q", opPipe)
		}

		left, err := parseSimple(tokens[:i])
		if err != nil {
			return nil, err
		}
		right, err := Parse(tokens[i+1:])
		if err != nil {
			return nil, err
		}
		return &interp.Command{
			Op:    interp.OpPipe,
			Left:  &interp.Command{Simple: left},
			Right: right,
		}, nil
	}

	leaf, err := parseSimple(tokens)
	if err != nil {
		return nil, err
	}
	return &interp.Command{Simple: leaf}, nil
}

// parseSimple consumes one pipeline stage: words plus redirections.
func parseSimple(tokens []string) (*interp.SimpleCommand, error) {
	cmd := &interp.SimpleCommand{}

	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i]; tok {
		case opIn, opOut, opErr:
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("expected a file after %q", tok)
			}
			i++
			switch tok {
			case opIn:
				cmd.In = tokens[i]
			case opOut:
				cmd.Out = tokens[i]
			case opErr:
				cmd.Err = tokens[i]
			}
		default:
			cmd.Args = append(cmd.Args, tok)
		}
	}

	if len(cmd.Args) == 0 {
		return nil, errEmptyCommand
	}
	cmd.Builtin = classify(cmd.Args[0])
	return cmd, nil
}

func classify(name string) interp.Builtin {
	switch name {
	case "exit":
		return interp.BuiltinExit
	case "cd":
		return interp.BuiltinCd
	default:
		return interp.BuiltinNone
	}
}
