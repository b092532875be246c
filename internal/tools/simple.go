package tools

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTrueCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "true",
		Short:              "Do nothing, successfully",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
}

func newFalseCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "false",
		Short:              "Do nothing, unsuccessfully",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitCode(1)
		},
	}
}

func newEchoCommand() *cobra.Command {
	var noNewline, escapes, noEscapes bool

	cmd := &cobra.Command{
		Use:   "echo [STRING]...",
		Short: "Display a line of text",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			newline := !noNewline

			if escapes && !noEscapes {
				var stop bool
				text, stop = interpretEscapes(text)
				if stop {
					newline = false
				}
			}

			if newline {
				text += "\n"
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVarP(&noNewline, "no-newline", "n", false, "do not output the trailing newline")
	cmd.Flags().BoolVarP(&escapes, "escapes", "e", false, "enable interpretation of backslash escapes")
	cmd.Flags().BoolVarP(&noEscapes, "no-escapes", "E", false, "disable interpretation of backslash escapes (default)")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// interpretEscapes expands backslash escapes. stop is true when \c was seen,
// in which case everything after it is dropped.
func interpretEscapes(s string) (out string, stop bool) {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}

		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'c':
			return b.String(), true
		case 'e':
			b.WriteByte(0x1b)
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String(), false
}
