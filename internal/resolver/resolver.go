// Package resolver decides which registered utility a multi-call binary
// should run, and with which argument vector, from the process path and the
// remaining arguments.
//
// Resolution is tried in a fixed order: the binary's stem as an exact
// utility name, then a utility name that is a separator-bounded suffix of the
// stem, and finally the first explicit argument as the utility name.
package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/harrison/toolbox/internal/registry"
)

// CompletionName is the reserved utility name that requests completion
// script output instead of a utility invocation.
const CompletionName = "completion"

// Dynamic completion requests that cobra-generated scripts send back to the
// binary they complete for.
const (
	shellRequest       = "__complete"
	shellRequestNoDesc = "__completeNoDesc"
)

// Kind identifies the variant of a Selection.
type Kind int

const (
	// KindInvoke runs Selection.Utility with Selection.Args.
	KindInvoke Kind = iota
	// KindUsage prints the dispatcher usage.
	KindUsage
	// KindCompletion emits a completion script; Selection.Args holds the
	// unconsumed arguments following "completion".
	KindCompletion
	// KindShellRequest answers a dynamic completion request for the
	// dispatcher itself; Selection.Args starts with the request token.
	KindShellRequest
)

// String returns a short name for the kind, used in log lines.
func (k Kind) String() string {
	switch k {
	case KindInvoke:
		return "invoke"
	case KindUsage:
		return "usage"
	case KindCompletion:
		return "completion"
	case KindShellRequest:
		return "shell-request"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Selection is the outcome of one resolution pass.
type Selection struct {
	Kind Kind

	// Utility is the selected utility name (KindInvoke only).
	Utility string

	// Args is the argument vector forwarded to the utility for KindInvoke,
	// or the untouched remaining arguments for the other kinds.
	Args []string

	// Name is the stem of the binary path. It is the name the dispatcher
	// uses for itself in usage output.
	Name string

	// SelectorIsSecondArg is set when the utility name was taken from the
	// first explicit argument rather than from argument zero.
	SelectorIsSecondArg bool
}

// ErrEmptyStem is returned when the binary path has no usable file name.
var ErrEmptyStem = errors.New("cannot determine binary name")

// NotFoundError reports a utility name that is not in the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: function/utility not found", e.Name)
}

// executable is swapped in tests.
var executable = os.Executable

// Resolve determines what the process should do given its own path and the
// arguments that followed it. An empty binaryPath falls back to the path of
// the running executable.
//
// Resolve has no side effects; printing and exiting belong to the caller.
func Resolve(binaryPath string, rest []string, reg registry.Registry) (Selection, error) {
	if binaryPath == "" {
		exe, err := executable()
		if err != nil {
			return Selection{}, fmt.Errorf("locate executable: %w", err)
		}
		binaryPath = exe
	}

	stem := Stem(binaryPath)
	if stem == "" {
		return Selection{}, fmt.Errorf("%w from %q", ErrEmptyStem, binaryPath)
	}

	if _, ok := reg.Get(stem); ok {
		return Selection{
			Kind:    KindInvoke,
			Utility: stem,
			Args:    prepend(binaryPath, rest),
			Name:    stem,
		}, nil
	}

	if util, ok := MatchSuffix(stem, reg.Keys()); ok {
		return Selection{
			Kind:    KindInvoke,
			Utility: util,
			Args:    prepend(util, rest),
			Name:    stem,
		}, nil
	}

	// Generic container: the utility name is the next argument.
	sel := Selection{Name: stem, SelectorIsSecondArg: true}
	if len(rest) == 0 {
		sel.Kind = KindUsage
		return sel, nil
	}
	token, rest := rest[0], rest[1:]

	if token == CompletionName {
		sel.Kind = KindCompletion
		sel.Args = clone(rest)
		return sel, nil
	}

	if _, ok := reg.Get(token); ok {
		sel.Kind = KindInvoke
		sel.Utility = token
		sel.Args = prepend(token, rest)
		return sel, nil
	}

	switch token {
	case shellRequest, shellRequestNoDesc:
		sel.Kind = KindShellRequest
		sel.Args = prepend(token, rest)
		return sel, nil

	case "--help", "-h":
		if len(rest) == 0 {
			sel.Kind = KindUsage
			return sel, nil
		}
		sub, rest := rest[0], rest[1:]
		if _, ok := reg.Get(sub); !ok {
			return Selection{}, &NotFoundError{Name: sub}
		}
		sel.Kind = KindInvoke
		sel.Utility = sub
		sel.Args = append([]string{sub, "--help"}, rest...)
		return sel, nil
	}

	return Selection{}, &NotFoundError{Name: token}
}

// Stem returns the final component of path with its extension removed.
// A name consisting only of a leading-dot extension is kept whole, and a
// path without a file name yields "".
func Stem(path string) string {
	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator):
		return ""
	}

	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// MatchSuffix returns the first name in names, in the order given, that is a
// suffix of stem preceded either by nothing or by a rune that is neither a
// letter nor a number. Callers pass names in lexicographic order so that
// ambiguous stems resolve the same way on every run.
func MatchSuffix(stem string, names []string) (string, bool) {
	for _, name := range names {
		if name == "" || !strings.HasSuffix(stem, name) {
			continue
		}
		prefix := stem[:len(stem)-len(name)]
		if prefix == "" {
			return name, true
		}
		r, _ := utf8.DecodeLastRuneInString(prefix)
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return name, true
		}
	}
	return "", false
}

func prepend(first string, rest []string) []string {
	args := make([]string, 0, len(rest)+1)
	args = append(args, first)
	return append(args, rest...)
}

func clone(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	return out
}
