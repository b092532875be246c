// Package completion emits shell completion scripts for the utilities of a
// multi-call binary and for the binary itself.
//
// Schemas are cobra command trees obtained from the registry; script
// generation is delegated to cobra's generators. For the container name an
// aggregate schema with one subcommand per registered utility is synthesized.
package completion

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/toolbox/internal/registry"
)

// Shell is a supported completion script format.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	PowerShell Shell = "powershell"
)

var shells = []Shell{Bash, Fish, PowerShell, Zsh}

// Shells returns the names of the supported shells.
func Shells() []string {
	names := make([]string, len(shells))
	for i, s := range shells {
		names[i] = string(s)
	}
	return names
}

// ParseShell validates name against the supported shells.
func ParseShell(name string) (Shell, error) {
	for _, s := range shells {
		if string(s) == name {
			return s, nil
		}
	}
	return "", &UnknownShellError{Name: name}
}

// UnknownShellError reports an unsupported shell name.
type UnknownShellError struct {
	Name string
}

func (e *UnknownShellError) Error() string {
	return fmt.Sprintf("invalid shell %q (possible values: %s)", e.Name, strings.Join(Shells(), ", "))
}

// UnknownTargetError reports a completion target that is neither the
// container nor a registered utility.
type UnknownTargetError struct {
	Name string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("invalid utility %q: not the container and not a registered utility", e.Name)
}

// Emitter generates completion scripts.
type Emitter struct {
	// Registry supplies the utilities and their schemas.
	Registry registry.Registry

	// Container is the name of the multi-call binary itself.
	Container string

	// Prefix is prepended to the binary name embedded in generated scripts.
	Prefix string
}

// Targets returns every valid completion target: the container followed by
// the registered utilities.
func (e *Emitter) Targets() []string {
	return append([]string{e.Container}, e.Registry.Keys()...)
}

// Command returns the "completion <utility> <shell>" command. Arguments are
// validated before anything is generated.
func (e *Emitter) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <utility> <shell>",
		Short: "Prints completions to stdout",
		Long: fmt.Sprintf(`Prints the completion script of a utility for the given shell.

Use %q as the utility to complete the multi-call binary itself.
Supported shells: %s`, e.Container, strings.Join(Shells(), ", ")),
		Args:              e.validateArgs,
		ValidArgsFunction: e.completeArgs,
		// Usage would land on stdout; the caller prints a hint on stderr.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, err := ParseShell(args[1])
			if err != nil {
				return err
			}
			return e.Emit(cmd.OutOrStdout(), args[0], shell)
		},
	}
}

func (e *Emitter) validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	if !slices.Contains(e.Targets(), args[0]) {
		return &UnknownTargetError{Name: args[0]}
	}
	_, err := ParseShell(args[1])
	return err
}

func (e *Emitter) completeArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return e.Targets(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return Shells(), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// Schema returns the CLI schema to generate completions for. The root
// command of the returned tree carries the prefixed binary name.
func (e *Emitter) Schema(target string) (*cobra.Command, error) {
	if target == e.Container {
		return e.containerSchema(), nil
	}

	u, ok := e.Registry.Get(target)
	if !ok {
		return nil, &UnknownTargetError{Name: target}
	}
	cmd := u.Describe()
	rename(cmd, e.Prefix+target)
	return cmd, nil
}

// containerSchema synthesizes a root command with one subcommand per
// registered utility, plus the completion command itself.
func (e *Emitter) containerSchema() *cobra.Command {
	root := &cobra.Command{
		Use:          e.Prefix + e.Container + " [function [arguments...]]",
		Short:        "Multi-call binary",
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	keys := e.Registry.Keys()
	for _, name := range keys {
		u, _ := e.Registry.Get(name)
		sub := u.Describe()
		rename(sub, name)
		root.AddCommand(sub)
	}
	if !slices.Contains(keys, "completion") {
		root.AddCommand(e.Command())
	}
	return root
}

// Emit writes the completion script for target in the given shell's format.
// Nothing is written unless generation succeeds.
func (e *Emitter) Emit(w io.Writer, target string, shell Shell) error {
	cmd, err := e.Schema(target)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := generate(cmd, shell, &buf); err != nil {
		return fmt.Errorf("generate %s completions for %s: %w", shell, target, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write completions: %w", err)
	}
	return nil
}

func generate(cmd *cobra.Command, shell Shell, w io.Writer) error {
	switch shell {
	case Bash:
		return cmd.GenBashCompletionV2(w, true)
	case Zsh:
		return cmd.GenZshCompletion(w)
	case Fish:
		return cmd.GenFishCompletion(w, true)
	case PowerShell:
		return cmd.GenPowerShellCompletionWithDesc(w)
	default:
		return &UnknownShellError{Name: string(shell)}
	}
}

// rename replaces the command name, the first word of Use, keeping the
// argument synopsis that follows it.
func rename(cmd *cobra.Command, name string) {
	if i := strings.IndexByte(cmd.Use, ' '); i >= 0 {
		cmd.Use = name + cmd.Use[i:]
		return
	}
	cmd.Use = name
}
