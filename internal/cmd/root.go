package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/toolbox/internal/completion"
	"github.com/harrison/toolbox/internal/config"
	"github.com/harrison/toolbox/internal/display"
	"github.com/harrison/toolbox/internal/logger"
	"github.com/harrison/toolbox/internal/registry"
	"github.com/harrison/toolbox/internal/resolver"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ContainerName is the name of the multi-call binary itself. It is the
// completion target that stands for the whole toolbox.
const ContainerName = "toolbox"

// App dispatches one process invocation to a registered utility.
type App struct {
	Registry registry.Registry
	Config   *config.Config
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *logger.ConsoleLogger

	// TermWidth is the terminal width used to wrap the usage listing.
	// Zero means detect it from os.Stdout.
	TermWidth int
}

// Main runs the dispatcher for the process arguments and returns the exit
// code. args[0] is the invocation path.
func Main(args []string, reg registry.Registry) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ContainerName, err)
		return 1
	}

	app := &App{
		Registry: reg,
		Config:   cfg,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger.NewConsoleLogger(os.Stderr, cfg.LogLevel),
	}
	return app.Run(args)
}

// Run resolves args and performs the selected action. Output written by the
// dispatcher is flushed before Run returns and before control passes to a
// utility.
func (a *App) Run(args []string) int {
	out := bufio.NewWriter(a.Stdout)
	defer out.Flush()

	var binaryPath string
	var rest []string
	if len(args) > 0 {
		binaryPath, rest = args[0], args[1:]
	}

	a.Logger.LogTrace(fmt.Sprintf("invoked as %q with %q", binaryPath, rest))

	sel, err := resolver.Resolve(binaryPath, rest, a.Registry)
	if err != nil {
		var notFound *resolver.NotFoundError
		if errors.As(err, &notFound) {
			a.Logger.LogDebug(fmt.Sprintf("unknown utility %q", notFound.Name))
			fmt.Fprintln(out, notFound.Error())
			return 1
		}
		a.Logger.LogError(err.Error())
		fmt.Fprintf(a.Stderr, "%s: %v\n", ContainerName, err)
		return 1
	}
	a.logSelection(sel)

	switch sel.Kind {
	case resolver.KindUsage:
		return a.usage(out, sel.Name)
	case resolver.KindCompletion:
		return a.completion(out, sel.Args)
	case resolver.KindShellRequest:
		return a.shellRequest(out, sel.Args)
	case resolver.KindInvoke:
		return a.invoke(out, sel)
	default:
		fmt.Fprintf(a.Stderr, "%s: unhandled selection %s\n", ContainerName, sel.Kind)
		return 1
	}
}

// logSelection records the resolution outcome. A suffix match that rewrites
// argument zero is reported at info; one that other registered names also
// match is reported at warn, since only the first of them can ever run.
func (a *App) logSelection(sel resolver.Selection) {
	a.Logger.LogDebug(describeSelection(sel))

	if sel.Kind != resolver.KindInvoke || sel.SelectorIsSecondArg || sel.Name == sel.Utility {
		return
	}
	a.Logger.LogInfo(fmt.Sprintf("%s: running %s as %q", sel.Name, sel.Utility, sel.Args[0]))

	var shadowed []string
	for _, key := range a.Registry.Keys() {
		if key == sel.Utility {
			continue
		}
		if _, ok := resolver.MatchSuffix(sel.Name, []string{key}); ok {
			shadowed = append(shadowed, key)
		}
	}
	if len(shadowed) > 0 {
		a.Logger.LogWarn(fmt.Sprintf("%s: suffix also matches %s; %s was chosen",
			sel.Name, strings.Join(shadowed, ", "), sel.Utility))
	}
}

// describeSelection formats a selection as
// "<name>: <kind> [utility] [args] (selector: argv[0|1])".
func describeSelection(sel resolver.Selection) string {
	selector := "argv[0]"
	if sel.SelectorIsSecondArg {
		selector = "argv[1]"
	}

	target := sel.Kind.String()
	if sel.Utility != "" {
		target += " " + sel.Utility
	}
	return fmt.Sprintf("%s: %s %q (selector: %s)", sel.Name, target, sel.Args, selector)
}

func (a *App) usage(out *bufio.Writer, name string) int {
	width := a.TermWidth
	if width == 0 {
		width = display.TerminalWidth(os.Stdout)
	}

	if err := display.PrintUsage(out, name, Version, a.Registry.Keys(), width); err != nil {
		fmt.Fprintf(a.Stderr, "%s: %v\n", ContainerName, err)
		return 1
	}
	return a.flush(out, 0)
}

func (a *App) invoke(out *bufio.Writer, sel resolver.Selection) int {
	u, ok := a.Registry.Get(sel.Utility)
	if !ok {
		fmt.Fprintln(out, (&resolver.NotFoundError{Name: sel.Utility}).Error())
		return 1
	}

	if code := a.flush(out, 0); code != 0 {
		return code
	}
	code := u.Main(sel.Args)
	a.Logger.LogDebug(fmt.Sprintf("%s exited with status %d", sel.Utility, code))
	return code
}

func (a *App) completion(out *bufio.Writer, args []string) int {
	cmd := a.emitter().Command()
	cmd.SetOut(out)
	cmd.SetErr(a.Stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(a.Stderr, "Try '%s %s --help' for more information.\n", ContainerName, resolver.CompletionName)
		return 1
	}
	return a.flush(out, 0)
}

// shellRequest answers a dynamic completion request issued by the
// container's generated completion script.
func (a *App) shellRequest(out *bufio.Writer, args []string) int {
	root, err := a.emitter().Schema(ContainerName)
	if err != nil {
		fmt.Fprintf(a.Stderr, "%s: %v\n", ContainerName, err)
		return 1
	}
	root.SetOut(out)
	root.SetErr(a.Stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return 1
	}
	return a.flush(out, 0)
}

func (a *App) emitter() *completion.Emitter {
	prefix := ""
	if a.Config != nil {
		prefix = a.Config.ProgPrefix
	}
	return &completion.Emitter{
		Registry:  a.Registry,
		Container: ContainerName,
		Prefix:    prefix,
	}
}

// flush writes buffered output and returns code, or 1 if the flush failed.
func (a *App) flush(out *bufio.Writer, code int) int {
	if err := out.Flush(); err != nil {
		a.Logger.LogError(fmt.Sprintf("flush stdout: %v", err))
		return 1
	}
	return code
}
