package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newBasenameCommand() *cobra.Command {
	var multiple, zero bool
	var suffix string

	cmd := &cobra.Command{
		Use:   "basename NAME [SUFFIX]",
		Short: "Strip directory and suffix from file names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if suffix != "" {
				multiple = true
			}
			if !multiple {
				if len(args) > 2 {
					return fmt.Errorf("extra operand %q", args[2])
				}
				names = args[:1]
				if len(args) == 2 {
					suffix = args[1]
				}
			}

			end := "\n"
			if zero {
				end = "\x00"
			}
			for _, name := range names {
				if _, err := fmt.Fprint(cmd.OutOrStdout(), basename(name, suffix)+end); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&multiple, "multiple", "a", false, "support multiple arguments and treat each as a NAME")
	cmd.Flags().StringVarP(&suffix, "suffix", "s", "", "remove a trailing SUFFIX; implies -a")
	cmd.Flags().BoolVarP(&zero, "zero", "z", false, "end each output line with NUL, not newline")

	return cmd
}

// basename returns the last element of name without trailing slashes. The
// suffix is removed unless it is the whole remaining name.
func basename(name, suffix string) string {
	trimmed := strings.TrimRight(name, "/")
	if trimmed == "" {
		if name == "" {
			return ""
		}
		return "/"
	}

	base := filepath.Base(trimmed)
	if suffix != "" && base != suffix {
		base = strings.TrimSuffix(base, suffix)
	}
	return base
}

func newDirnameCommand() *cobra.Command {
	var zero bool

	cmd := &cobra.Command{
		Use:   "dirname NAME...",
		Short: "Strip last component from file name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			end := "\n"
			if zero {
				end = "\x00"
			}
			for _, name := range args {
				if _, err := fmt.Fprint(cmd.OutOrStdout(), dirname(name)+end); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&zero, "zero", "z", false, "end each output line with NUL, not newline")

	return cmd
}

// dirname returns name with its last non-slash component removed.
func dirname(name string) string {
	trimmed := strings.TrimRight(name, "/")
	if trimmed == "" {
		if name == "" {
			return "."
		}
		return "/"
	}
	return filepath.Dir(trimmed)
}
