// Package display provides terminal output helpers for the multi-call
// binary.
//
// # Usage Listing
//
// PrintUsage writes the dispatcher banner, the invocation template and the
// sorted list of registered utilities, word-wrapped to the terminal:
//
//	width := display.TerminalWidth(os.Stdout)
//	display.PrintUsage(os.Stdout, "toolbox", version, reg.Keys(), width)
//
// The list is wrapped to at most 100 columns minus an 8 column margin and
// indented by 4 columns. When the output is not a terminal an 80 column
// width is assumed.
//
// All functions accept io.Writer interfaces for testability.
package display
