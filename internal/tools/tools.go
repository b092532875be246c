// Package tools is the compiled-in lookup table of the toolbox binary.
//
// Each utility is a cobra command. Its entry function runs the command with
// the arguments that follow argument zero and maps the outcome to an exit
// code; its describe function returns a fresh command for completion
// generation.
package tools

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/toolbox/internal/registry"
)

// exitCode is returned from RunE to end a utility with a specific status
// without printing an error.
type exitCode int

func (c exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(c))
}

// Table returns the registry of built-in utilities.
func Table() *registry.Map {
	return registry.MustNew(map[string]registry.Utility{
		"basename": utility(newBasenameCommand),
		"dirname":  utility(newDirnameCommand),
		"echo":     utility(newEchoCommand),
		"false":    utility(newFalseCommand),
		"true":     utility(newTrueCommand),
	})
}

func utility(describe func() *cobra.Command) registry.Utility {
	return registry.Utility{
		Main: func(args []string) int {
			return execute(describe(), args)
		},
		Describe: describe,
	}
}

// execute runs cmd with args[1:] and returns the exit status.
func execute(cmd *cobra.Command, args []string) int {
	rest := []string{}
	if len(args) > 1 {
		rest = args[1:]
	}

	cmd.SetArgs(rest)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.Name(), err)
	fmt.Fprintf(cmd.ErrOrStderr(), "Try '%s --help' for more information.\n", cmd.Name())
	return 1
}
