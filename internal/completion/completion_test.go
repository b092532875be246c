package completion

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/toolbox/internal/registry"
)

func newEmitter(t *testing.T, prefix string) *Emitter {
	t.Helper()
	describe := func(use string) registry.DescribeFunc {
		return func() *cobra.Command {
			cmd := &cobra.Command{Use: use, Short: "test utility", Run: func(*cobra.Command, []string) {}}
			cmd.Flags().BoolP("all", "a", false, "show everything")
			return cmd
		}
	}
	reg, err := registry.New(map[string]registry.Utility{
		"ls": {Main: func([]string) int { return 0 }, Describe: describe("ls [FILE]...")},
		"cp": {Main: func([]string) int { return 0 }, Describe: describe("cp SOURCE DEST")},
	})
	require.NoError(t, err)
	return &Emitter{Registry: reg, Container: "toolbox", Prefix: prefix}
}

func TestParseShell(t *testing.T) {
	for _, name := range []string{"bash", "zsh", "fish", "powershell"} {
		s, err := ParseShell(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(s))
	}

	_, err := ParseShell("tcsh")
	var se *UnknownShellError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "tcsh", se.Name)
	assert.Contains(t, err.Error(), "bash, fish, powershell, zsh")
}

func TestTargets(t *testing.T) {
	e := newEmitter(t, "")
	assert.Equal(t, []string{"toolbox", "cp", "ls"}, e.Targets())
}

func TestEmitUtility(t *testing.T) {
	for _, shell := range []Shell{Bash, Zsh, Fish, PowerShell} {
		t.Run(string(shell), func(t *testing.T) {
			var out bytes.Buffer
			e := newEmitter(t, "")

			require.NoError(t, e.Emit(&out, "ls", shell))
			assert.NotEmpty(t, out.String())
			assert.Contains(t, out.String(), "ls")
		})
	}
}

func TestEmitUsesPrefix(t *testing.T) {
	for _, shell := range []Shell{Bash, Zsh, Fish, PowerShell} {
		t.Run(string(shell), func(t *testing.T) {
			var out bytes.Buffer
			e := newEmitter(t, "uu-")

			require.NoError(t, e.Emit(&out, "ls", shell))
			assert.Contains(t, out.String(), "uu-ls")
		})
	}
}

func TestEmitContainer(t *testing.T) {
	var out bytes.Buffer
	e := newEmitter(t, "uu-")

	require.NoError(t, e.Emit(&out, "toolbox", Zsh))
	assert.Contains(t, out.String(), "#compdef uu-toolbox")
}

func TestEmitUnknownTarget(t *testing.T) {
	var out bytes.Buffer
	e := newEmitter(t, "")

	err := e.Emit(&out, "mv", Bash)

	var te *UnknownTargetError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "mv", te.Name)
	assert.Empty(t, out.String())
}

func TestEmitUnknownShell(t *testing.T) {
	var out bytes.Buffer
	e := newEmitter(t, "")

	err := e.Emit(&out, "ls", Shell("elvish"))
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestSchemaContainer(t *testing.T) {
	e := newEmitter(t, "uu-")

	root, err := e.Schema("toolbox")
	require.NoError(t, err)
	assert.Equal(t, "uu-toolbox", root.Name())

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"cp", "ls", "completion"}, names)
}

func TestSchemaUtilityKeepsSynopsis(t *testing.T) {
	e := newEmitter(t, "uu-")

	cmd, err := e.Schema("cp")
	require.NoError(t, err)
	assert.Equal(t, "uu-cp SOURCE DEST", cmd.Use)
	assert.Equal(t, "uu-cp", cmd.Name())
}

func TestCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing shell", args: []string{"ls"}, wantErr: "accepts 2 arg(s)"},
		{name: "no args", args: []string{}, wantErr: "accepts 2 arg(s)"},
		{name: "unknown utility", args: []string{"mv", "bash"}, wantErr: `invalid utility "mv"`},
		{name: "unknown shell", args: []string{"ls", "tcsh"}, wantErr: `invalid shell "tcsh"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			cmd := newEmitter(t, "").Command()
			cmd.SetOut(&out)
			cmd.SetErr(&errOut)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, out.String())
		})
	}
}

func TestCommandEmits(t *testing.T) {
	var out bytes.Buffer
	cmd := newEmitter(t, "").Command()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"toolbox", "fish"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "complete -c toolbox")
}

func TestCompleteArgs(t *testing.T) {
	e := newEmitter(t, "")

	got, dir := e.completeArgs(nil, nil, "")
	assert.Equal(t, []string{"toolbox", "cp", "ls"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, dir)

	got, _ = e.completeArgs(nil, []string{"ls"}, "")
	assert.Equal(t, Shells(), got)

	got, _ = e.completeArgs(nil, []string{"ls", "bash"}, "")
	assert.Empty(t, got)
}
