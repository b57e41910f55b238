// Package core drives the interpreter's read-parse-execute loop around the
// execution engine.
package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/anmitsu/go-shlex"
	"github.com/fatih/color"
	"josephlewis.net/minsh/core/config"
	"josephlewis.net/minsh/core/interp"
	"josephlewis.net/minsh/core/logger"
	"josephlewis.net/minsh/core/parser"
)

var promptColor = color.New(color.FgBlue, color.Bold)

// Shell reads input lines, parses them into command trees and hands them to
// the execution engine until an exit builtin or end of input.
type Shell struct {
	Engine   *interp.Engine
	Readline *readline.Instance

	config *config.Configuration
	events *logger.Recorder
}

// NewShell builds an interactive shell on the interpreter's standard
// streams. events may be nil to disable event logging.
func NewShell(configuration *config.Configuration, events *logger.Recorder) (*Shell, error) {
	cfg := &readline.Config{
		HistoryFile: configuration.HistoryFilePath(),
		Stdin:       readline.NewCancelableStdin(os.Stdin),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &Shell{
		Engine:   interp.NewEngine(interp.NewOSSpawner()),
		Readline: rl,
		config:   configuration,
		events:   events,
	}, nil
}

// Prompt renders the configured prompt template against the current state.
func (s *Shell) Prompt() string {
	prompt := s.config.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "?"
	}
	if c := s.promptColor(); c != nil {
		wd = c.Sprint(wd)
	}

	prompt = strings.ReplaceAll(prompt, `\w`, wd)
	prompt = strings.ReplaceAll(prompt, `\$`, "$")
	return prompt
}

// promptColor returns the color for the working-directory segment, or nil
// when colorization is off.
func (s *Shell) promptColor() *color.Color {
	switch s.config.Color {
	case config.ColorAlways:
		c := color.New(color.FgBlue, color.Bold)
		c.EnableColor()
		return c
	case config.ColorNever:
		return nil
	default:
		// Auto: the color package disables itself off-terminal.
		return promptColor
	}
}

// Run reads and executes lines until exit, end of input, or an unrecoverable
// engine failure.
func (s *Shell) Run() error {
	for {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue // Drop the half-typed line.

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue
		}

		stop, err := s.Eval(line)
		if err != nil || stop {
			return err
		}
	}
}

// Eval parses and executes a single input line. Parse and recoverable
// execution failures are reported to the user and do not stop the loop; a
// non-nil error means the interpreter must shut down.
func (s *Shell) Eval(line string) (stop bool, err error) {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		fmt.Fprintf(s.Engine.Stderr, "minsh: syntax error: %v\n", err)
		return false, nil
	}
	if len(tokens) == 0 {
		return false, nil
	}

	cmd, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		fmt.Fprintf(s.Engine.Stderr, "minsh: %v\n", parseErr)
		s.events.CommandFailed(tokens, parseErr)
		return false, nil
	}

	s.events.Command(tokens)
	stop, err = s.Engine.Execute(cmd)
	if err != nil {
		s.events.CommandFailed(tokens, err)
	}
	return stop, err
}

// Close releases the line reader.
func (s *Shell) Close() error {
	return s.Readline.Close()
}
